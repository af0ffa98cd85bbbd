package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// StockMovementRepository ledger de movimientos de stock (solo inserción, transaccional).
type StockMovementRepository interface {
	Append(movement *entity.StockMovement) error
}

// StockMovementReader consulta del ledger.
type StockMovementReader interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
