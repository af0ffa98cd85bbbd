package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

// Códigos SQLSTATE relevantes.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

// mapError traduce errores de pgx a los errores del puerto docstore:
// fallas de serialización o deadlock -> ErrConflict; conexión caída o rechazada -> ErrUnavailable.
// Cancelaciones de contexto y otros errores se devuelven tal cual.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeSerializationFailure, pgErr.Code == codeDeadlockDetected:
			return fmt.Errorf("%w: %w", docstore.ErrConflict, err)
		case isUniqueViolation(err):
			// Bajo SERIALIZABLE dos inserciones concurrentes de la misma clave también son un conflicto.
			return fmt.Errorf("%w: %w", docstore.ErrConflict, err)
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			// Clase 08: excepciones de conexión.
			return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
		}
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	return err
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
