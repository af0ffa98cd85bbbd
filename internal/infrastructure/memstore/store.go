// Package memstore implementa docstore.Store en memoria con control de concurrencia optimista:
// cada documento tiene versión, las transacciones bufferizan escrituras y al confirmar se valida
// que ningún documento leído haya cambiado. Se usa en pruebas y con STORE_DRIVER=memory.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

var _ docstore.Store = (*Store)(nil)

type record struct {
	data    []byte
	version uint64
}

// Store almacenamiento en memoria. Seguro para uso concurrente.
type Store struct {
	mu    sync.RWMutex
	docs  map[docstore.Ref]record
	clock uint64
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{docs: make(map[docstore.Ref]record)}
}

// RunTransaction ejecuta fn una sola vez; los reintentos son responsabilidad del llamador.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: s, reads: make(map[docstore.Ref]uint64), writes: make(map[docstore.Ref]*pending)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

func (s *Store) commit(ctx context.Context, tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// El contexto se revisa con el candado tomado: después de este punto la confirmación es atómica.
	if err := ctx.Err(); err != nil {
		return err
	}
	for ref, seen := range tx.reads {
		if s.docs[ref].version != seen {
			return docstore.ErrConflict
		}
	}
	for _, ref := range tx.order {
		w := tx.writes[ref]
		if w.deleted {
			delete(s.docs, ref)
			continue
		}
		s.clock++
		s.docs[ref] = record{data: w.data, version: s.clock}
	}
	return nil
}

// Get lectura fuera de transacción.
func (s *Store) Get(ctx context.Context, ref docstore.Ref, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rec, ok := s.load(ref)
	if !ok {
		return false, nil
	}
	return true, docstore.Decode(rec.data, dst)
}

// List devuelve los documentos de la colección ordenados por ID.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]docstore.Snapshot, 0)
	for ref, rec := range s.docs {
		if ref.Collection == collection {
			out = append(out, docstore.Snapshot{Ref: ref, Data: rec.data})
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Ref.ID < out[j].Ref.ID })
	return out, nil
}

// Close no hace nada; existe para cumplir docstore.Store.
func (s *Store) Close() error { return nil }

func (s *Store) load(ref docstore.Ref) (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.docs[ref]
	return rec, ok
}
