package entity

// BusinessInfo datos del negocio emisor (documento único negocio/config).
// Se copian a cada factura al momento del commit.
type BusinessInfo struct {
	Name    string
	TaxID   string // RUC
	Address string
	Phone   string
	Email   string
	City    string
	LogoURL string
}
