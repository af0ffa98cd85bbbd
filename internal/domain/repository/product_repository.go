package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product dentro de una transacción.
// Las implementaciones quedan atadas a la transacción en curso (ver TxRunner).
type ProductRepository interface {
	// GetByID devuelve domain.ErrNotFound si el producto no existe.
	GetByID(id string) (*entity.Product, error)
	Create(product *entity.Product) error
	// Update reemplaza los datos descriptivos; no debe usarse para cambiar stock.
	Update(product *entity.Product) error
	// UpdateStock fija el stock con la marca de tiempo de la operación que lo cambia.
	UpdateStock(id string, stock int64, updatedAt time.Time) error
}

// ProductCatalog lectura del catálogo fuera de transacción.
type ProductCatalog interface {
	// ListVisible productos seleccionables en un borrador de factura.
	ListVisible(ctx context.Context) ([]*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
