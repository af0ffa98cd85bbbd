package docrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

type categoryDoc struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	ImagenURL   string    `json:"imagenUrl"`
	Visible     bool      `json:"visible"`
	Prioridad   flexInt   `json:"prioridad"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func categoryRef(id string) docstore.Ref {
	return docstore.Doc(CollectionCategories, id)
}

func toCategoryDoc(c *entity.Category) categoryDoc {
	return categoryDoc{
		ID:          c.ID,
		Nombre:      c.Name,
		Descripcion: c.Description,
		ImagenURL:   c.ImageURL,
		Visible:     c.Visible,
		Prioridad:   flexInt(c.Priority),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d categoryDoc) toEntity(id string) *entity.Category {
	if d.ID == "" {
		d.ID = id
	}
	return &entity.Category{
		ID:          d.ID,
		Name:        d.Nombre,
		Description: d.Descripcion,
		ImageURL:    d.ImagenURL,
		Visible:     d.Visible,
		Priority:    int(d.Prioridad),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CategoryRepository colección categorias.
type CategoryRepository struct {
	store docstore.Store
}

// NewCategoryRepository crea el repositorio.
func NewCategoryRepository(store docstore.Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	return r.store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(categoryRef(c.ID), toCategoryDoc(c))
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	ref := categoryRef(id)
	var d categoryDoc
	ok, err := r.store.Get(ctx, ref, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(ref, docstore.ErrNotFound)
	}
	return d.toEntity(id), nil
}

// Update reemplaza la categoría; exige que exista.
func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	ref := categoryRef(c.ID)
	return r.store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		var cur categoryDoc
		ok, err := tx.Get(ref, &cur)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(ref, docstore.ErrNotFound)
		}
		return tx.Set(ref, toCategoryDoc(c))
	})
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	snaps, err := r.store.List(ctx, CollectionCategories)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(snaps))
	for _, s := range snaps {
		var d categoryDoc
		if err := s.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toEntity(s.Ref.ID))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Delete elimina la categoría; ErrNotFound si no existe.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ref := categoryRef(id)
	return r.store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		var cur categoryDoc
		ok, err := tx.Get(ref, &cur)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(ref, docstore.ErrNotFound)
		}
		return tx.Delete(ref)
	})
}
