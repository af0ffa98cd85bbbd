package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice comprobante de venta (factura o nota de venta).
// Business, Customer y los datos de producto de cada línea son copias tomadas al momento
// del commit: cambios posteriores del catálogo o del cliente no alteran documentos históricos.
// DocumentNumber, DocumentType y Sequence son inmutables una vez escritos.
type Invoice struct {
	ID             string
	DocumentType   DocumentType
	DocumentNumber string // ej: F001-000006
	Sequence       int64
	IssueDate      time.Time
	Business       BusinessInfo
	Customer       CustomerSnapshot
	CreatedBy      string
	Items          []InvoiceLineItem
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	FooterMessage  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// QuantitiesByProduct suma las cantidades por producto (un producto puede repetirse en varias líneas).
func (inv *Invoice) QuantitiesByProduct() map[string]int64 {
	out := make(map[string]int64, len(inv.Items))
	for _, it := range inv.Items {
		out[it.ProductID] += it.Quantity
	}
	return out
}
