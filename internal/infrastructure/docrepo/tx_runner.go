package docrepo

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción del almacenamiento de documentos.
type TxRunner struct {
	store docstore.Store
}

// NewTxRunner construye el runner con el almacenamiento.
func NewTxRunner(store docstore.Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunBilling ejecuta fn una vez con repos atados a una nueva transacción y la confirma.
// Un conflicto al confirmar se devuelve como docstore.ErrConflict; no reintenta.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		return fn(ctx, repository.TxRepos{
			Counters:  NewCounterRepository(tx),
			Products:  NewProductRepository(tx),
			Invoices:  NewInvoiceRepository(tx),
			Movements: NewMovementRepository(tx),
			History:   NewHistoryRepository(tx),
			Business:  NewBusinessSnapshot(tx),
		})
	})
}
