package docrepo

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.CounterRepository = (*CounterRepository)(nil)
	_ repository.CounterStore      = (*CounterStore)(nil)
)

type counterDoc struct {
	Ultimo int64 `json:"ultimo"`
}

func counterRef(docType entity.DocumentType) docstore.Ref {
	return docstore.Doc(CollectionCounters, string(docType))
}

// CounterRepository asignación de consecutivos dentro de la transacción.
type CounterRepository struct {
	tx docstore.Tx
}

// NewCounterRepository crea el repositorio atado a tx.
func NewCounterRepository(tx docstore.Tx) *CounterRepository {
	return &CounterRepository{tx: tx}
}

// AllocateNext lee contadores/<tipo>.ultimo (ausente = 0) y escribe el siguiente valor.
func (r *CounterRepository) AllocateNext(docType entity.DocumentType) (int64, error) {
	ref := counterRef(docType)
	var c counterDoc
	if _, err := r.tx.Get(ref, &c); err != nil {
		return 0, err
	}
	next := c.Ultimo + 1
	if err := r.tx.Set(ref, counterDoc{Ultimo: next}, docstore.MergeAll()); err != nil {
		return 0, err
	}
	return next, nil
}

// CounterStore consulta de contadores fuera de transacción.
type CounterStore struct {
	store docstore.Store
}

// NewCounterStore crea la consulta de contadores.
func NewCounterStore(store docstore.Store) *CounterStore {
	return &CounterStore{store: store}
}

// PeekNext último emitido + 1, sin reservar.
func (s *CounterStore) PeekNext(ctx context.Context, docType entity.DocumentType) (int64, error) {
	var c counterDoc
	if _, err := s.store.Get(ctx, counterRef(docType), &c); err != nil {
		return 0, err
	}
	return entity.Counter{DocumentType: docType, LastIssued: c.Ultimo}.Next(), nil
}
