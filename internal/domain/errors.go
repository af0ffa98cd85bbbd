package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnavailable       = errors.New("almacenamiento no disponible")
)

// Motivos de validación usados por facturación.
const (
	ReasonNoLineItems         = "la factura no tiene ítems"
	ReasonInvalidProduct      = "producto inválido"
	ReasonInvalidQuantity     = "cantidad inválida"
	ReasonInvalidPriceTier    = "tipo de precio inválido"
	ReasonInvalidDocumentType = "tipo de documento inválido"
	ReasonInvalidStock        = "stock inválido"
	ReasonInvalidPrice        = "precio inválido"
	ReasonMissingName         = "nombre requerido"
	ReasonMissingDescription  = "descripción requerida"
	ReasonInvalidPriority     = "prioridad inválida"
	ReasonMissingDocumentID   = "cédula requerida"
	ReasonInvalidIssueDate    = "fecha de emisión inválida"
)

// ValidationError borrador mal formado o incompleto. No se reintenta.
type ValidationError struct {
	Reason string
}

// NewValidationError construye un ValidationError con el motivo dado.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return "validación: " + e.Reason }
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError la cantidad pedida supera el stock al momento del commit.
// ProductName se muestra al usuario para que ajuste la cantidad.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s", e.ProductName)
}
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransactionConflictError el almacenamiento no pudo serializar la transacción
// después de agotar los reintentos. Es seguro repetir la operación completa.
type TransactionConflictError struct {
	Attempts int
}

func (e *TransactionConflictError) Error() string {
	return fmt.Sprintf("conflicto de transacción tras %d intentos, intente de nuevo", e.Attempts)
}
func (e *TransactionConflictError) Unwrap() error { return ErrConflict }

// StoreUnavailableError falla de infraestructura; se devuelve tal cual.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err == nil {
		return ErrUnavailable.Error()
	}
	return ErrUnavailable.Error() + ": " + e.Err.Error()
}

// Unwrap permite errors.Is tanto contra ErrUnavailable como contra la causa.
func (e *StoreUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}
