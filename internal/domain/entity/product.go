package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Stock nunca debe quedar negativo por efecto de una factura;
// solo se modifica dentro de transacciones del almacenamiento.
type Product struct {
	ID             string
	Name           string
	Category       string
	Brand          string
	UnitPrice      decimal.Decimal
	WholesalePrice decimal.Decimal
	Stock          int64
	Visible        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PriceFor devuelve el precio vigente según el tipo de precio elegido.
func (p *Product) PriceFor(tier PriceTier) decimal.Decimal {
	if tier == PriceTierWholesale {
		return p.WholesalePrice
	}
	return p.UnitPrice
}
