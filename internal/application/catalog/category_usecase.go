package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

const defaultCategoryPriority = 1

// CategoryUseCase administración de categorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: time.Now, log: log}
}

func validateCategory(name, description string, priority *int) error {
	if name == "" {
		return domain.NewValidationError(domain.ReasonMissingName)
	}
	if description == "" {
		return domain.NewValidationError(domain.ReasonMissingDescription)
	}
	if priority != nil && *priority < 0 {
		return domain.NewValidationError(domain.ReasonInvalidPriority)
	}
	return nil
}

// Create registra una categoría nueva.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if err := validateCategory(name, description, in.Priority); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	c := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Visible:     true,
		Priority:    defaultCategoryPriority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Visible != nil {
		c.Visible = *in.Visible
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, billing.StoreErr(err)
	}
	uc.log.Info().Str("category_id", c.ID).Str("nombre", c.Name).Msg("categoría creada")
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	return toCategoryResponse(c), nil
}

// List categorías por prioridad; visibleOnly filtra las ocultas.
func (uc *CategoryUseCase) List(ctx context.Context, visibleOnly bool) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if visibleOnly && !c.Visible {
			continue
		}
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update reemplaza nombre, descripción e imagen; visible y prioridad solo si vienen.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if err := validateCategory(name, description, in.Priority); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	c.Name = name
	c.Description = description
	c.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Visible != nil {
		c.Visible = *in.Visible
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, billing.StoreErr(err)
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) SetVisibility(ctx context.Context, id string, visible bool) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	c.Visible = visible
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, billing.StoreErr(err)
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría. Los productos conservan el nombre que tenían.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return billing.StoreErr(err)
	}
	uc.log.Info().Str("category_id", id).Msg("categoría eliminada")
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Visible:     c.Visible,
		Priority:    c.Priority,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
