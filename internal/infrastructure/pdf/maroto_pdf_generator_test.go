package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func sampleInvoice(docType entity.DocumentType) *entity.Invoice {
	issued := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:             "inv-1",
		DocumentType:   docType,
		DocumentNumber: "F001-000006",
		Sequence:       6,
		IssueDate:      issued,
		Business:       entity.BusinessInfo{Name: "Ferretería Central", TaxID: "0999999999001", City: "Quito"},
		Customer:       entity.CustomerSnapshot{DocumentID: "1712345678", FirstName: "Ana", LastName: "Pérez"},
		Items: []entity.InvoiceLineItem{
			{
				ProductID: "p1", ProductName: "Martillo", Brand: "Stanley", Quantity: 3,
				PriceTier: entity.PriceTierUnit, UnitPriceUsed: decimal.RequireFromString("10.00"),
				LineSubtotal: decimal.RequireFromString("30.00"),
			},
		},
		Subtotal:      decimal.RequireFromString("30.00"),
		Tax:           decimal.RequireFromString("4.50"),
		Total:         decimal.RequireFromString("34.50"),
		FooterMessage: "Gracias por su compra",
		CreatedAt:     issued,
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	gen := NewMarotoPDFGenerator()

	for _, dt := range []entity.DocumentType{entity.DocumentTypeInvoice, entity.DocumentTypeSalesNote} {
		t.Run(string(dt), func(t *testing.T) {
			out, err := gen.GenerateInvoicePDF(context.Background(), sampleInvoice(dt))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateInvoicePDF_EmptySnapshot(t *testing.T) {
	inv := &entity.Invoice{DocumentType: entity.DocumentTypeSalesNote, DocumentNumber: "N001-000001"}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoney(t *testing.T) {
	gen := NewMarotoPDFGenerator(language.AmericanEnglish)

	assert.Equal(t, "$0.00", gen.money(decimal.Zero))
	assert.Equal(t, "$1,234.50", gen.money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$40.25", gen.money(decimal.RequireFromString("40.245")))
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "FACTURA", documentTitle(&entity.Invoice{DocumentType: entity.DocumentTypeInvoice}))
	assert.Equal(t, "NOTA DE VENTA", documentTitle(&entity.Invoice{DocumentType: entity.DocumentTypeSalesNote}))
}
