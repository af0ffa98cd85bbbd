package docrepo

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*MovementRepository)(nil)
	_ repository.StockMovementReader     = (*MovementReader)(nil)
)

type movementDoc struct {
	ID         string    `json:"id"`
	Referencia string    `json:"referencia"`
	IDProducto string    `json:"idProducto"`
	Tipo       string    `json:"tipo"`
	Cantidad   int64     `json:"cantidad"`
	StockFinal int64     `json:"stockFinal"`
	CreatedAt  time.Time `json:"createdAt"`
	CreadoPor  string    `json:"creadoPor"`
}

func (d movementDoc) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:          d.ID,
		ReferenceID: d.Referencia,
		ProductID:   d.IDProducto,
		Type:        d.Tipo,
		Quantity:    d.Cantidad,
		StockAfter:  d.StockFinal,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreadoPor,
	}
}

// MovementRepository ledger de movimientos dentro de una transacción.
type MovementRepository struct {
	tx docstore.Tx
}

// NewMovementRepository crea el repositorio atado a tx.
func NewMovementRepository(tx docstore.Tx) *MovementRepository {
	return &MovementRepository{tx: tx}
}

func (r *MovementRepository) Append(m *entity.StockMovement) error {
	return r.tx.Set(docstore.Doc(CollectionMovements, m.ID), movementDoc{
		ID:         m.ID,
		Referencia: m.ReferenceID,
		IDProducto: m.ProductID,
		Tipo:       m.Type,
		Cantidad:   m.Quantity,
		StockFinal: m.StockAfter,
		CreatedAt:  m.CreatedAt,
		CreadoPor:  m.CreatedBy,
	})
}

// MovementReader consulta del ledger.
type MovementReader struct {
	store docstore.Store
}

// NewMovementReader crea el lector de movimientos.
func NewMovementReader(store docstore.Store) *MovementReader {
	return &MovementReader{store: store}
}

// ListByProduct movimientos del producto en orden cronológico.
func (r *MovementReader) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	snaps, err := r.store.List(ctx, CollectionMovements)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[movementDoc](snaps)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0)
	for _, d := range docs {
		if d.IDProducto == productID {
			out = append(out, d.toEntity())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
