package billing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// EditInvoiceUseCase reemplaza las líneas de una venta existente ajustando el stock solo por la
// diferencia entre cantidades nuevas y anteriores. Tipo, número, secuencia y fecha de creación no cambian.
type EditInvoiceUseCase struct {
	txRunner BillingTxRunner
	settings Settings
	log      zerolog.Logger
}

// NewEditInvoiceUseCase construye el caso de uso.
func NewEditInvoiceUseCase(txRunner BillingTxRunner, settings Settings, log zerolog.Logger) *EditInvoiceUseCase {
	return &EditInvoiceUseCase{txRunner: txRunner, settings: settings, log: log}
}

// Edit aplica el nuevo borrador a la venta invoiceID.
// Un producto con diferencia positiva debe tener stock suficiente para esa diferencia.
// Las líneas que conservan producto y tipo de precio mantienen los precios copiados originalmente;
// las nuevas toman los valores vigentes del catálogo.
func (uc *EditInvoiceUseCase) Edit(ctx context.Context, userID, invoiceID string, in dto.UpdateInvoiceRequest) (*entity.Invoice, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := validateItems(in.Items)
	if err != nil {
		return nil, err
	}
	var issueDate time.Time
	if in.IssueDate != "" {
		if issueDate, err = parseIssueDate(in.IssueDate, uc.settings.now()); err != nil {
			return nil, err
		}
	}
	order, newQty, err := quantities(lines)
	if err != nil {
		return nil, err
	}
	var inv *entity.Invoice

	err = RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "edit_invoice", func(_ context.Context, r repository.TxRepos) error {
		old, err := r.Invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}
		oldQty := old.QuantitiesByProduct()
		now := uc.settings.now()

		products := make(map[string]*entity.Product)
		load := func(id string) (*entity.Product, error) {
			if p, ok := products[id]; ok {
				return p, nil
			}
			p, err := r.Products.GetByID(id)
			if err != nil {
				return nil, err
			}
			products[id] = p
			return p, nil
		}

		// 1) Líneas: se reutiliza la copia anterior si coincide producto y tipo de precio
		items := make([]entity.InvoiceLineItem, 0, len(lines))
		for _, l := range lines {
			if prev, ok := findLine(old.Items, l.ProductID, l.PriceTier); ok {
				prev.Quantity = l.Quantity
				prev.LineSubtotal = invoicing.LineSubtotal(prev.UnitPriceUsed, l.Quantity)
				items = append(items, prev)
				continue
			}
			p, err := load(l.ProductID)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError(domain.ReasonInvalidProduct)
			}
			if err != nil {
				return err
			}
			// Un producto oculto solo puede seguir en la venta si ya estaba en ella.
			if !p.Visible && oldQty[l.ProductID] == 0 {
				return domain.NewValidationError(domain.ReasonInvalidProduct)
			}
			items = append(items, snapshotLine(p, l))
		}

		// 2) Diferencias de stock: productos nuevos/actuales primero, luego los que salieron
		ids := append([]string{}, order...)
		for _, it := range old.Items {
			if !slices.Contains(ids, it.ProductID) {
				ids = append(ids, it.ProductID)
			}
		}
		for _, id := range ids {
			delta := newQty[id] - oldQty[id]
			if delta == 0 {
				continue
			}
			p, err := load(id)
			if errors.Is(err, domain.ErrNotFound) {
				if delta < 0 {
					// Devolución a un producto eliminado: no hay stock que restaurar.
					continue
				}
				return domain.NewValidationError(domain.ReasonInvalidProduct)
			}
			if err != nil {
				return err
			}
			if delta > 0 && p.Stock < delta {
				return &domain.InsufficientStockError{ProductName: p.Name}
			}
			newStock := p.Stock - delta
			if err := r.Products.UpdateStock(id, newStock, now); err != nil {
				return err
			}
			p.Stock = newStock
			movType := entity.MovementTypeOUT
			if delta < 0 {
				movType = entity.MovementTypeIN
			}
			if err := r.Movements.Append(&entity.StockMovement{
				ID:          uuid.NewString(),
				ReferenceID: invoiceID,
				ProductID:   id,
				Type:        movType,
				Quantity:    -delta,
				StockAfter:  newStock,
				CreatedAt:   now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}

		// 3) Totales y campos editables
		totals := invoicing.ComputeTotals(old.DocumentType, items, uc.settings.EditTaxRate)
		updated := *old
		if in.Customer != nil {
			updated.Customer = customerFromDTO(*in.Customer)
		}
		if in.FooterMessage != "" {
			updated.FooterMessage = in.FooterMessage
		}
		if !issueDate.IsZero() {
			updated.IssueDate = issueDate
		}
		updated.Items = items
		updated.Subtotal = totals.Subtotal
		updated.Tax = totals.Tax
		updated.Total = totals.Total
		updated.UpdatedAt = now
		if err := r.Invoices.Update(&updated); err != nil {
			return err
		}
		inv = &updated
		return r.History.Append(&entity.HistoryEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.HistoryInvoiceEdited,
			Detail:    fmt.Sprintf("%s %s ahora por %s", old.DocumentType, old.DocumentNumber, totals.Total.StringFixed(2)),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("document_number", inv.DocumentNumber).
		Str("total", inv.Total.StringFixed(2)).
		Str("user_id", userID).
		Msg("venta editada")
	return inv, nil
}

func findLine(items []entity.InvoiceLineItem, productID string, tier entity.PriceTier) (entity.InvoiceLineItem, bool) {
	for _, it := range items {
		if it.ProductID == productID && it.PriceTier == tier {
			return it, true
		}
	}
	return entity.InvoiceLineItem{}, false
}
