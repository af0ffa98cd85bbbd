package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL tabla única de documentos: (colección, id) → JSONB con versión.
// El índice parcial sobre ventas acelera el reporte por rango de fechas.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	collection  TEXT        NOT NULL,
	id          TEXT        NOT NULL,
	data        JSONB       NOT NULL,
	version     BIGINT      NOT NULL DEFAULT 1,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_ventas_created_at_idx
	ON documents (((data->>'createdAt')))
	WHERE collection = 'ventas';
`

// EnsureSchema crea la tabla de documentos si no existe. Idempotente.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: crear esquema: %w", mapError(err))
	}
	return nil
}
