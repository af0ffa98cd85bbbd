package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice dentro de una transacción.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	// GetByID devuelve domain.ErrNotFound si la venta no existe.
	GetByID(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	Delete(id string) error
}

// InvoiceReader consultas de ventas fuera de transacción.
type InvoiceReader interface {
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve las ventas más recientes primero; docType vacío = todos los tipos.
	List(ctx context.Context, docType entity.DocumentType) ([]*entity.Invoice, error)
}
