package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// SalesReportRepository totales de ventas por tipo de documento en [from, to).
type SalesReportRepository interface {
	Summarize(ctx context.Context, from, to time.Time) ([]entity.SalesTotals, error)
}
