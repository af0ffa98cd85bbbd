package billing

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// RetryPolicy reintentos ante conflictos de transacción.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy 5 intentos con backoff exponencial de 25ms a 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 25 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	maxRetries := p.MaxAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxRetries)), ctx)
}

// RunWithRetry ejecuta fn en una transacción y la repite desde cero mientras el almacenamiento
// reporte conflicto, hasta MaxAttempts. Cualquier otro error corta los reintentos.
// Conflictos agotados -> *domain.TransactionConflictError; almacenamiento caído -> *domain.StoreUnavailableError.
func RunWithRetry(
	ctx context.Context,
	runner BillingTxRunner,
	policy RetryPolicy,
	log zerolog.Logger,
	op string,
	fn func(ctx context.Context, repos repository.TxRepos) error,
) error {
	attempts := 0
	operation := func() error {
		attempts++
		err := runner.RunBilling(ctx, fn)
		if err == nil || errors.Is(err, docstore.ErrConflict) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("op", op).Int("attempt", attempts).Dur("wait", wait).Msg("conflicto de transacción, reintentando")
	}

	err := backoff.RetryNotify(operation, policy.backOff(ctx), notify)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrConflict):
		log.Warn().Str("op", op).Int("attempts", attempts).Msg("conflictos de transacción agotaron los reintentos")
		return &domain.TransactionConflictError{Attempts: attempts}
	case errors.Is(err, docstore.ErrUnavailable):
		return &domain.StoreUnavailableError{Err: err}
	}
	return err
}

// StoreErr envuelve fallas de infraestructura en lecturas fuera de transacción.
func StoreErr(err error) error {
	if errors.Is(err, docstore.ErrUnavailable) {
		return &domain.StoreUnavailableError{Err: err}
	}
	return err
}
