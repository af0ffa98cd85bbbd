package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// DeleteInvoiceUseCase elimina una venta devolviendo al stock las cantidades de sus líneas.
// El contador de numeración no retrocede: el número eliminado no se reutiliza.
type DeleteInvoiceUseCase struct {
	txRunner BillingTxRunner
	settings Settings
	log      zerolog.Logger
}

// NewDeleteInvoiceUseCase construye el caso de uso.
func NewDeleteInvoiceUseCase(txRunner BillingTxRunner, settings Settings, log zerolog.Logger) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{txRunner: txRunner, settings: settings, log: log}
}

// Delete restaura stock (omitiendo productos que ya no existen), registra movimientos IN
// y elimina la venta, en una sola transacción.
func (uc *DeleteInvoiceUseCase) Delete(ctx context.Context, userID, invoiceID string) error {
	if invoiceID == "" {
		return domain.ErrInvalidInput
	}
	var (
		number  string
		skipped []string
	)
	err := RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "delete_invoice", func(_ context.Context, r repository.TxRepos) error {
		skipped = skipped[:0]
		inv, err := r.Invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}
		number = inv.DocumentNumber
		now := uc.settings.now()

		qty := inv.QuantitiesByProduct()
		ids := make([]string, 0, len(qty))
		for id := range qty {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			p, err := r.Products.GetByID(id)
			if errors.Is(err, domain.ErrNotFound) {
				skipped = append(skipped, id)
				continue
			}
			if err != nil {
				return err
			}
			newStock := p.Stock + qty[id]
			if err := r.Products.UpdateStock(id, newStock, now); err != nil {
				return err
			}
			if err := r.Movements.Append(&entity.StockMovement{
				ID:          uuid.NewString(),
				ReferenceID: invoiceID,
				ProductID:   id,
				Type:        entity.MovementTypeIN,
				Quantity:    qty[id],
				StockAfter:  newStock,
				CreatedAt:   now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}

		if err := r.Invoices.Delete(invoiceID); err != nil {
			return err
		}
		return r.History.Append(&entity.HistoryEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.HistoryInvoiceDeleted,
			Detail:    fmt.Sprintf("%s %s eliminada", inv.DocumentType, inv.DocumentNumber),
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	ev := uc.log.Info().Str("invoice_id", invoiceID).Str("document_number", number).Str("user_id", userID)
	if len(skipped) > 0 {
		ev = ev.Strs("skipped_products", skipped)
	}
	ev.Msg("venta eliminada")
	return nil
}
