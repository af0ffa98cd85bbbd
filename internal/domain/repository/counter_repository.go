package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CounterRepository contadores de numeración por tipo de documento (transaccional).
type CounterRepository interface {
	// AllocateNext lee el último número emitido (0 si no existe), lo incrementa y lo escribe.
	// Solo tiene efecto si la transacción confirma.
	AllocateNext(docType entity.DocumentType) (int64, error)
}

// CounterStore consulta de contadores sin reservar número.
type CounterStore interface {
	// PeekNext número que recibiría el próximo documento confirmado. Solo informativo.
	PeekNext(ctx context.Context, docType entity.DocumentType) (int64, error)
}
