// Package postgres implementa docstore.Store sobre PostgreSQL (tabla documents, JSONB)
// y el reporte de ventas con agregación en SQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

var _ docstore.Store = (*Store)(nil)

// Querier abstracción común de *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store adaptador PostgreSQL. Las transacciones corren con aislamiento SERIALIZABLE:
// PostgreSQL detecta lecturas invalidadas y aborta con 40001, que se traduce a docstore.ErrConflict.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore crea el adaptador sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// RunTransaction ejecuta fn en una transacción SERIALIZABLE. Si fn falla o el contexto se cancela,
// la transacción se revierte.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapError(err))
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, &pgTx{ctx: ctx, q: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", mapError(err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, ref docstore.Ref, dst any) (bool, error) {
	return getDoc(ctx, s.pool, ref, dst)
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]docstore.Snapshot, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, mapError(err)
		}
		out = append(out, docstore.Snapshot{Ref: docstore.Doc(collection, id), Data: data})
	}
	return out, mapError(rows.Err())
}

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func getDoc(ctx context.Context, q Querier, ref docstore.Ref, dst any) (bool, error) {
	var data []byte
	err := q.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		ref.Collection, ref.ID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, docstore.Decode(data, dst)
}

// pgTx implementa docstore.Tx sobre una pgx.Tx.
type pgTx struct {
	ctx context.Context
	q   Querier
}

func (t *pgTx) Get(ref docstore.Ref, dst any) (bool, error) {
	return getDoc(t.ctx, t.q, ref, dst)
}

func (t *pgTx) Set(ref docstore.Ref, v any, opts ...docstore.SetOption) error {
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	merge := "EXCLUDED.data"
	if docstore.ApplySetOptions(opts).Merge {
		merge = "documents.data || EXCLUDED.data"
	}
	_, err = t.q.Exec(t.ctx, `
		INSERT INTO documents (collection, id, data, version, updated_at)
		VALUES ($1, $2, $3::jsonb, 1, now())
		ON CONFLICT (collection, id) DO UPDATE
		SET data = `+merge+`, version = documents.version + 1, updated_at = now()`,
		ref.Collection, ref.ID, string(data),
	)
	return mapError(err)
}

func (t *pgTx) Update(ref docstore.Ref, patch map[string]any) error {
	data, err := docstore.Encode(patch)
	if err != nil {
		return err
	}
	tag, err := t.q.Exec(t.ctx, `
		UPDATE documents
		SET data = data || $3::jsonb, version = version + 1, updated_at = now()
		WHERE collection = $1 AND id = $2`,
		ref.Collection, ref.ID, string(data),
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (t *pgTx) Delete(ref docstore.Ref) error {
	_, err := t.q.Exec(t.ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, ref.Collection, ref.ID)
	return mapError(err)
}
