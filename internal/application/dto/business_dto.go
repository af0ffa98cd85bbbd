package dto

// BusinessRequest body para PUT /api/business.
type BusinessRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	City    string `json:"city,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// BusinessResponse datos del negocio en respuestas.
type BusinessResponse struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	City    string `json:"city,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}
