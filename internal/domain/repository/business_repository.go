package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// BusinessRepository datos del negocio (documento único).
type BusinessRepository interface {
	// Get devuelve nil, nil si aún no se configuró.
	Get(ctx context.Context) (*entity.BusinessInfo, error)
	Save(ctx context.Context, info *entity.BusinessInfo) error
}

// BusinessSnapshotReader lectura dentro de una transacción, para copiar los datos en la venta.
type BusinessSnapshotReader interface {
	Get() (*entity.BusinessInfo, error)
}
