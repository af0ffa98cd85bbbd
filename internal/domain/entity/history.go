package entity

import "time"

// Acciones registradas en el historial de usuario.
const (
	HistoryInvoiceCreated = "factura_creada"
	HistoryInvoiceEdited  = "factura_editada"
	HistoryInvoiceDeleted = "factura_eliminada"
	HistoryStockAdjusted  = "stock_ajustado"
)

// HistoryEntry acción de un usuario sobre el sistema.
type HistoryEntry struct {
	ID        string
	UserID    string
	Action    string
	Detail    string
	CreatedAt time.Time
}
