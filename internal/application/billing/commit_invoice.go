package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CommitInvoiceUseCase convierte un borrador en una venta numerada y descuenta el stock,
// todo en una sola transacción: o se confirma completo o no queda ningún efecto.
type CommitInvoiceUseCase struct {
	txRunner BillingTxRunner
	catalog  repository.ProductCatalog
	settings Settings
	log      zerolog.Logger
}

// NewCommitInvoiceUseCase construye el caso de uso.
func NewCommitInvoiceUseCase(
	txRunner BillingTxRunner,
	catalog repository.ProductCatalog,
	settings Settings,
	log zerolog.Logger,
) *CommitInvoiceUseCase {
	return &CommitInvoiceUseCase{
		txRunner: txRunner,
		catalog:  catalog,
		settings: settings,
		log:      log,
	}
}

// Commit valida el borrador, reserva el siguiente número del tipo de documento, verifica stock
// de cada producto, descuenta y guarda la venta con sus movimientos e historial.
//
// Errores:
//   - *domain.ValidationError          borrador mal formado o producto no seleccionable.
//   - *domain.InsufficientStockError   la cantidad supera el stock al momento del commit.
//   - *domain.TransactionConflictError reintentos agotados; repetir la operación es seguro.
//   - *domain.StoreUnavailableError    falla del almacenamiento.
func (uc *CommitInvoiceUseCase) Commit(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	docType := entity.DocumentType(in.DocumentType)
	if !docType.Valid() {
		return nil, domain.NewValidationError(domain.ReasonInvalidDocumentType)
	}
	lines, err := validateItems(in.Items)
	if err != nil {
		return nil, err
	}
	issueDate, err := parseIssueDate(in.IssueDate, uc.settings.now())
	if err != nil {
		return nil, err
	}

	// Productos seleccionables (fuera de la tx, solo lectura)
	visible, err := uc.catalog.ListVisible(ctx)
	if err != nil {
		return nil, StoreErr(fmt.Errorf("listar productos visibles: %w", err))
	}
	selectable := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		selectable[p.ID] = struct{}{}
	}
	for _, l := range lines {
		if _, ok := selectable[l.ProductID]; !ok {
			return nil, domain.NewValidationError(domain.ReasonInvalidProduct)
		}
	}

	footer := in.FooterMessage
	if footer == "" {
		footer = uc.settings.FooterMessage
	}
	order, qty, err := quantities(lines)
	if err != nil {
		return nil, err
	}
	invoiceID := uuid.NewString()
	var inv *entity.Invoice

	err = RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "commit_invoice", func(_ context.Context, r repository.TxRepos) error {
		// 1) Consecutivo del tipo de documento
		seq, err := r.Counters.AllocateNext(docType)
		if err != nil {
			return err
		}
		number, err := uc.settings.Prefixes.FormatNumber(docType, seq)
		if err != nil {
			return err
		}

		// 2) Stock vigente de cada producto (cantidades repetidas ya sumadas)
		products := make(map[string]*entity.Product, len(order))
		for _, id := range order {
			p, err := r.Products.GetByID(id)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError(domain.ReasonInvalidProduct)
			}
			if err != nil {
				return err
			}
			if p.Stock < qty[id] {
				return &domain.InsufficientStockError{ProductName: p.Name}
			}
			products[id] = p
		}

		business, err := r.Business.Get()
		if err != nil {
			return err
		}

		// 3) Venta con copia de negocio, cliente y productos
		now := uc.settings.now()
		items := make([]entity.InvoiceLineItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, snapshotLine(products[l.ProductID], l))
		}
		totals := invoicing.ComputeTotals(docType, items, uc.settings.TaxRate)
		inv = &entity.Invoice{
			ID:             invoiceID,
			DocumentType:   docType,
			DocumentNumber: number,
			Sequence:       seq,
			IssueDate:      issueDate,
			Customer:       customerFromDTO(in.Customer),
			CreatedBy:      userID,
			Items:          items,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			FooterMessage:  footer,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if business != nil {
			inv.Business = *business
		}

		// 4) Descuento de stock + movimientos OUT
		for _, id := range order {
			p := products[id]
			newStock := p.Stock - qty[id]
			if err := r.Products.UpdateStock(id, newStock, now); err != nil {
				return err
			}
			if err := r.Movements.Append(&entity.StockMovement{
				ID:          uuid.NewString(),
				ReferenceID: invoiceID,
				ProductID:   id,
				Type:        entity.MovementTypeOUT,
				Quantity:    -qty[id],
				StockAfter:  newStock,
				CreatedAt:   now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}

		if err := r.Invoices.Create(inv); err != nil {
			return err
		}
		return r.History.Append(&entity.HistoryEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.HistoryInvoiceCreated,
			Detail:    fmt.Sprintf("%s %s por %s", docType, number, totals.Total.StringFixed(2)),
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
		Msg("venta confirmada")
	return inv, nil
}
