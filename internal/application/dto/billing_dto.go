package dto

import "github.com/shopspring/decimal"

// CustomerData datos del cliente que se copian a la venta. Las etiquetas csv sirven a la
// importación del directorio de clientes.
type CustomerData struct {
	DocumentID string `json:"document_id" csv:"cedula"`
	FirstName  string `json:"first_name" csv:"nombre"`
	LastName   string `json:"last_name,omitempty" csv:"apellido"`
	Email      string `json:"email,omitempty" csv:"correo"`
	Phone      string `json:"phone,omitempty" csv:"telefono"`
	Address    string `json:"address,omitempty" csv:"direccion"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// DocumentType: "Factura" o "NotaVenta". IssueDate opcional (YYYY-MM-DD); vacío = hoy.
type CreateInvoiceRequest struct {
	DocumentType  string               `json:"document_type"`
	Customer      CustomerData         `json:"customer"`
	FooterMessage string               `json:"footer_message,omitempty"`
	IssueDate     string               `json:"issue_date,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea del borrador. PriceTier: "Unitario" o "Mayorista".
type InvoiceItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	PriceTier string `json:"price_tier"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. El tipo y el número no cambian.
// Customer, FooterMessage e IssueDate omitidos conservan el valor guardado.
type UpdateInvoiceRequest struct {
	Customer      *CustomerData        `json:"customer,omitempty"`
	FooterMessage string               `json:"footer_message,omitempty"`
	IssueDate     string               `json:"issue_date,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
}

// InvoiceResponse venta con sus líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	DocumentType   string                `json:"document_type"`
	DocumentNumber string                `json:"document_number"`
	Sequence       int64                 `json:"sequence"`
	IssueDate      string                `json:"issue_date"`
	Business       BusinessResponse      `json:"business"`
	Customer       CustomerData          `json:"customer"`
	CreatedBy      string                `json:"created_by"`
	Items          []InvoiceLineResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Tax            decimal.Decimal       `json:"tax"`
	Total          decimal.Decimal       `json:"total"`
	FooterMessage  string                `json:"footer_message,omitempty"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

// InvoiceLineResponse línea de la venta en la respuesta.
type InvoiceLineResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Quantity      int64           `json:"quantity"`
	PriceTier     string          `json:"price_tier"`
	UnitPriceUsed decimal.Decimal `json:"unit_price_used"`
	LineSubtotal  decimal.Decimal `json:"line_subtotal"`
}

// NextNumberResponse vista previa del próximo número (GET /api/invoices/next-number).
type NextNumberResponse struct {
	DocumentType   string `json:"document_type"`
	Sequence       int64  `json:"sequence"`
	DocumentNumber string `json:"document_number"`
}
