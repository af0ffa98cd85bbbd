package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una venta.
type PDFUseCase struct {
	invoices  repository.InvoiceReader
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(invoices repository.InvoiceReader, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator}
}

// Download carga la venta y genera el PDF con los datos copiados al confirmarla.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
func (uc *PDFUseCase) Download(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", StoreErr(fmt.Errorf("pdf: obtener venta: %w", err))
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	prefix := "factura"
	if !inv.DocumentType.Taxable() {
		prefix = "nota_venta"
	}
	filename = fmt.Sprintf("%s_%s.pdf", prefix, strings.TrimSuffix(inv.DocumentNumber, "-"))
	return pdfBytes, filename, nil
}
