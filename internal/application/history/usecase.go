// Package history consulta el registro de actividad de los usuarios.
package history

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// UseCase lectura del historial.
type UseCase struct {
	reader repository.HistoryReader
}

// NewUseCase construye el caso de uso.
func NewUseCase(reader repository.HistoryReader) *UseCase {
	return &UseCase{reader: reader}
}

// ListByUser acciones del usuario, más recientes primero.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	entries, err := uc.reader.ListByUser(ctx, userID)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
