package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

func TestMapError(t *testing.T) {
	other := errors.New("otro")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialización", &pgconn.PgError{Code: "40001"}, docstore.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, docstore.ErrConflict},
		{"clave duplicada", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), docstore.ErrConflict},
		{"conexión", &pgconn.PgError{Code: "08006"}, docstore.ErrUnavailable},
		{"contexto cancelado", context.Canceled, context.Canceled},
		{"otro", other, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tc.err), tc.want)
		})
	}
	assert.NoError(t, mapError(nil))
}

func TestMapError_SyntaxNoEsConflicto(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "42601"})
	assert.False(t, errors.Is(err, docstore.ErrConflict))
	assert.False(t, errors.Is(err, docstore.ErrUnavailable))
}
