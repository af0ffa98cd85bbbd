package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
)

// Settings parámetros compartidos por los casos de uso de facturación.
type Settings struct {
	TaxRate       decimal.Decimal
	EditTaxRate   decimal.Decimal
	Prefixes      invoicing.Prefixes
	FooterMessage string
	Retry         RetryPolicy
	// Now reloj inyectable; nil = time.Now.
	Now func() time.Time
}

// DefaultSettings IVA 15%, prefijos F001-/NV001- y política de reintentos por defecto.
func DefaultSettings() Settings {
	return Settings{
		TaxRate:     invoicing.DefaultTaxRate,
		EditTaxRate: invoicing.DefaultTaxRate,
		Prefixes:    invoicing.DefaultPrefixes(),
		Retry:       DefaultRetryPolicy(),
	}
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
