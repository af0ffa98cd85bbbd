package entity

import "github.com/shopspring/decimal"

// SalesTotals acumulado de ventas de un tipo de documento.
type SalesTotals struct {
	DocumentType DocumentType
	Count        int64
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}
