package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntryResponse entrada del historial de un usuario.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesRowResponse totales de un tipo de documento.
type SalesRowResponse struct {
	DocumentType string          `json:"document_type"`
	Count        int64           `json:"count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// SalesReportResponse respuesta de GET /api/reports/sales.
type SalesReportResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Rows  []SalesRowResponse `json:"rows"`
	Total decimal.Decimal    `json:"total"`
}
