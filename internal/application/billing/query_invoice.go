package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// InvoiceQueryUseCase consultas de ventas y vista previa de numeración.
type InvoiceQueryUseCase struct {
	invoices repository.InvoiceReader
	counters repository.CounterStore
	prefixes invoicing.Prefixes
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoices repository.InvoiceReader, counters repository.CounterStore, prefixes invoicing.Prefixes) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoices: invoices, counters: counters, prefixes: prefixes}
}

// GetInvoice obtiene una venta por ID.
func (uc *InvoiceQueryUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, StoreErr(err)
	}
	return ToInvoiceResponse(inv), nil
}

// ListInvoices ventas más recientes primero; docType vacío = todas.
func (uc *InvoiceQueryUseCase) ListInvoices(ctx context.Context, docType string) ([]dto.InvoiceResponse, error) {
	t := entity.DocumentType(docType)
	if t != "" && !t.Valid() {
		return nil, domain.NewValidationError(domain.ReasonInvalidDocumentType)
	}
	list, err := uc.invoices.List(ctx, t)
	if err != nil {
		return nil, StoreErr(err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return out, nil
}

// NextNumber número que recibiría la próxima venta del tipo. No reserva nada: dos usuarios
// pueden ver el mismo valor y solo uno lo obtendrá al confirmar.
func (uc *InvoiceQueryUseCase) NextNumber(ctx context.Context, docType string) (*dto.NextNumberResponse, error) {
	t := entity.DocumentType(docType)
	if !t.Valid() {
		return nil, domain.NewValidationError(domain.ReasonInvalidDocumentType)
	}
	seq, err := uc.counters.PeekNext(ctx, t)
	if err != nil {
		return nil, StoreErr(err)
	}
	number, err := uc.prefixes.FormatNumber(t, seq)
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{DocumentType: docType, Sequence: seq, DocumentNumber: number}, nil
}
