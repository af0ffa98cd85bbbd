package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// HistoryRepository registro de actividad (transaccional).
type HistoryRepository interface {
	Append(entry *entity.HistoryEntry) error
}

// HistoryReader consulta del historial.
type HistoryReader interface {
	// ListByUser más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.HistoryEntry, error)
}
