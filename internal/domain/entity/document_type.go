package entity

// DocumentType tipo de comprobante de venta. El valor es también la clave del contador.
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "Factura"   // lleva IVA
	DocumentTypeSalesNote DocumentType = "NotaVenta" // sin IVA
)

// Valid indica si el tipo es uno de los soportados.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeSalesNote
}

// Taxable indica si el tipo de documento grava IVA.
func (t DocumentType) Taxable() bool {
	return t == DocumentTypeInvoice
}

// PriceTier selección entre precio unitario y precio por mayor para una línea.
type PriceTier string

const (
	PriceTierUnit      PriceTier = "Unitario"
	PriceTierWholesale PriceTier = "Mayorista"
)

// Valid indica si el tipo de precio es soportado.
func (p PriceTier) Valid() bool {
	return p == PriceTierUnit || p == PriceTierWholesale
}
