package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada (anulación o edición que reduce cantidades)
	MovementTypeOUT        = "OUT"        // salida por factura
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual de stock
)

// StockMovement registro de un cambio de stock, escrito en la misma transacción que lo causa.
type StockMovement struct {
	ID          string
	ReferenceID string // ID de la factura o del ajuste
	ProductID   string
	Type        string
	Quantity    int64 // positivo entrada, negativo salida
	StockAfter  int64
	CreatedAt   time.Time
	CreatedBy   string
}
