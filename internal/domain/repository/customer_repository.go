package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CustomerDirectory directorio de clientes registrados, consultado al facturar para
// completar la copia del cliente.
type CustomerDirectory interface {
	// FindByDocumentID devuelve domain.ErrNotFound si ningún cliente tiene esa cédula.
	FindByDocumentID(ctx context.Context, documentID string) (*entity.CustomerSnapshot, error)
	// Upsert guarda el cliente con la cédula como clave; los campos vacíos no pisan los existentes.
	Upsert(ctx context.Context, customer *entity.CustomerSnapshot) error
}
