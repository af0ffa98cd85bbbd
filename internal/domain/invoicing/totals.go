// Package invoicing: reglas puras de numeración y totales de comprobantes de venta.
// Sin dependencias de almacenamiento; las usan los casos de uso dentro de la transacción.
package invoicing

import (
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate IVA aplicado a las facturas (15%).
var DefaultTaxRate = decimal.RequireFromString("0.15")

// Totals montos persistidos de un comprobante.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineSubtotal precio usado × cantidad, con precisión completa.
func LineSubtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ComputeTotals calcula subtotal, IVA y total.
// Los subtotales de línea se suman sin redondear; el redondeo a 2 decimales se aplica
// solo a los valores persistidos. Las notas de venta no llevan IVA.
func ComputeTotals(docType entity.DocumentType, items []entity.InvoiceLineItem, taxRate decimal.Decimal) Totals {
	raw := decimal.Zero
	for _, it := range items {
		raw = raw.Add(it.LineSubtotal)
	}
	tax := decimal.Zero
	if docType.Taxable() {
		tax = raw.Mul(taxRate).Round(2)
	}
	return Totals{
		Subtotal: raw.Round(2),
		Tax:      tax,
		Total:    raw.Add(tax).Round(2),
	}
}

// Prefixes tabla estática tipo de documento → prefijo, configurada externamente.
type Prefixes map[entity.DocumentType]string

// DefaultPrefixes prefijos por defecto (F001- para facturas, NV001- para notas de venta).
func DefaultPrefixes() Prefixes {
	return Prefixes{
		entity.DocumentTypeInvoice:   "F001-",
		entity.DocumentTypeSalesNote: "NV001-",
	}
}

// FormatNumber arma el número de documento: prefijo + consecutivo de 6 dígitos con ceros a la izquierda.
func (p Prefixes) FormatNumber(docType entity.DocumentType, seq int64) (string, error) {
	prefix, ok := p[docType]
	if !ok {
		return "", fmt.Errorf("invoicing: sin prefijo para %q", docType)
	}
	return fmt.Sprintf("%s%06d", prefix, seq), nil
}
