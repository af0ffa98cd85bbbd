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
	_ repository.HistoryRepository = (*HistoryRepository)(nil)
	_ repository.HistoryReader     = (*HistoryReader)(nil)
)

type historyDoc struct {
	ID          string    `json:"id"`
	UsuarioID   string    `json:"usuarioId"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Fecha       time.Time `json:"fecha"`
}

// HistoryRepository historial dentro de una transacción.
type HistoryRepository struct {
	tx docstore.Tx
}

// NewHistoryRepository crea el repositorio atado a tx.
func NewHistoryRepository(tx docstore.Tx) *HistoryRepository {
	return &HistoryRepository{tx: tx}
}

func (r *HistoryRepository) Append(e *entity.HistoryEntry) error {
	return r.tx.Set(docstore.Doc(CollectionHistory, e.ID), historyDoc{
		ID:          e.ID,
		UsuarioID:   e.UserID,
		Accion:      e.Action,
		Descripcion: e.Detail,
		Fecha:       e.CreatedAt,
	})
}

// HistoryReader consulta del historial.
type HistoryReader struct {
	store docstore.Store
}

// NewHistoryReader crea el lector del historial.
func NewHistoryReader(store docstore.Store) *HistoryReader {
	return &HistoryReader{store: store}
}

func (r *HistoryReader) ListByUser(ctx context.Context, userID string) ([]*entity.HistoryEntry, error) {
	snaps, err := r.store.List(ctx, CollectionHistory)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[historyDoc](snaps)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.HistoryEntry, 0)
	for _, d := range docs {
		if d.UsuarioID != userID {
			continue
		}
		out = append(out, &entity.HistoryEntry{
			ID:        d.ID,
			UserID:    d.UsuarioID,
			Action:    d.Accion,
			Detail:    d.Descripcion,
			CreatedAt: d.Fecha,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
