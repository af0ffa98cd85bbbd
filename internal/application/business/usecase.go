// Package business administra los datos del negocio emisor que se copian en cada venta.
package business

import (
	"context"
	"strings"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// UseCase lectura y guardado de negocio/config.
type UseCase struct {
	repo repository.BusinessRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.BusinessRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devuelve los datos del negocio; vacíos si aún no se configuraron.
func (uc *UseCase) Get(ctx context.Context) (*dto.BusinessResponse, error) {
	info, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	if info == nil {
		return &dto.BusinessResponse{}, nil
	}
	return toResponse(info), nil
}

// Save reemplaza los datos del negocio. Las ventas ya confirmadas no cambian.
func (uc *UseCase) Save(ctx context.Context, in dto.BusinessRequest) (*dto.BusinessResponse, error) {
	info := &entity.BusinessInfo{
		Name:    strings.TrimSpace(in.Name),
		TaxID:   strings.TrimSpace(in.TaxID),
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
		City:    in.City,
		LogoURL: in.LogoURL,
	}
	if info.Name == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingName)
	}
	if err := uc.repo.Save(ctx, info); err != nil {
		return nil, billing.StoreErr(err)
	}
	return toResponse(info), nil
}

func toResponse(b *entity.BusinessInfo) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		Name:    b.Name,
		TaxID:   b.TaxID,
		Address: b.Address,
		Phone:   b.Phone,
		Email:   b.Email,
		City:    b.City,
		LogoURL: b.LogoURL,
	}
}
