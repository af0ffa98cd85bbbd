package catalog

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// MovementsUseCase consulta del ledger de stock.
type MovementsUseCase struct {
	catalog repository.ProductCatalog
	reader  repository.StockMovementReader
}

func NewMovementsUseCase(catalog repository.ProductCatalog, reader repository.StockMovementReader) *MovementsUseCase {
	return &MovementsUseCase{catalog: catalog, reader: reader}
}

// ListByProduct movimientos del producto en orden cronológico. domain.ErrNotFound si el producto no existe.
func (uc *MovementsUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	if _, err := uc.catalog.GetByID(ctx, productID); err != nil {
		return nil, billing.StoreErr(err)
	}
	movs, err := uc.reader.ListByProduct(ctx, productID)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ReferenceID: m.ReferenceID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockAfter:  m.StockAfter,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
