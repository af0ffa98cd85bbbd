package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem línea de una factura con copia de los datos del producto.
// LineSubtotal conserva precisión completa; el redondeo se aplica a los totales.
type InvoiceLineItem struct {
	ProductID      string
	ProductName    string
	Category       string
	Brand          string
	Quantity       int64
	PriceTier      PriceTier
	UnitPriceUsed  decimal.Decimal
	UnitPrice      decimal.Decimal // precio unitario de lista al momento del commit
	WholesalePrice decimal.Decimal // precio por mayor de lista al momento del commit
	LineSubtotal   decimal.Decimal
}
