package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción con los repos de facturación e inventario.
// Una sola ejecución: si la confirmación choca con otra transacción devuelve docstore.ErrConflict
// y no aplica nada. Los reintentos los hace RunWithRetry.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una venta.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
