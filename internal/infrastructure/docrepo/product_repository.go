package docrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.ProductCatalog    = (*ProductCatalog)(nil)
)

type productDoc struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria"`
	Marca          string          `json:"marca"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	PrecioMayor    decimal.Decimal `json:"precioMayor"`
	Stock          flexInt         `json:"stock"`
	Visible        bool            `json:"visible"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func productRef(id string) docstore.Ref {
	return docstore.Doc(CollectionProducts, id)
}

func toProductDoc(p *entity.Product) productDoc {
	return productDoc{
		ID:             p.ID,
		Nombre:         p.Name,
		Categoria:      p.Category,
		Marca:          p.Brand,
		PrecioUnitario: p.UnitPrice,
		PrecioMayor:    p.WholesalePrice,
		Stock:          flexInt(p.Stock),
		Visible:        p.Visible,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d productDoc) toEntity(id string) *entity.Product {
	if d.ID == "" {
		d.ID = id
	}
	return &entity.Product{
		ID:             d.ID,
		Name:           d.Nombre,
		Category:       d.Categoria,
		Brand:          d.Marca,
		UnitPrice:      d.PrecioUnitario,
		WholesalePrice: d.PrecioMayor,
		Stock:          int64(d.Stock),
		Visible:        d.Visible,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ProductRepository productos dentro de una transacción.
type ProductRepository struct {
	tx docstore.Tx
}

// NewProductRepository crea el repositorio atado a tx.
func NewProductRepository(tx docstore.Tx) *ProductRepository {
	return &ProductRepository{tx: tx}
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	ref := productRef(id)
	var d productDoc
	ok, err := r.tx.Get(ref, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(ref, docstore.ErrNotFound)
	}
	return d.toEntity(id), nil
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.tx.Set(productRef(p.ID), toProductDoc(p))
}

// Update escribe los campos descriptivos; el stock se conserva tal como está en el documento.
func (r *ProductRepository) Update(p *entity.Product) error {
	ref := productRef(p.ID)
	err := r.tx.Update(ref, map[string]any{
		"nombre":         p.Name,
		"categoria":      p.Category,
		"marca":          p.Brand,
		"precioUnitario": p.UnitPrice,
		"precioMayor":    p.WholesalePrice,
		"visible":        p.Visible,
		"updatedAt":      p.UpdatedAt,
	})
	return notFound(ref, err)
}

func (r *ProductRepository) UpdateStock(id string, stock int64, updatedAt time.Time) error {
	if stock < 0 {
		return domain.NewValidationError(domain.ReasonInvalidStock)
	}
	ref := productRef(id)
	err := r.tx.Update(ref, map[string]any{
		"stock":     stock,
		"updatedAt": updatedAt,
	})
	return notFound(ref, err)
}

// ProductCatalog lectura del catálogo.
type ProductCatalog struct {
	store docstore.Store
}

// NewProductCatalog crea el lector del catálogo.
func NewProductCatalog(store docstore.Store) *ProductCatalog {
	return &ProductCatalog{store: store}
}

// List todos los productos ordenados por nombre.
func (c *ProductCatalog) List(ctx context.Context) ([]*entity.Product, error) {
	snaps, err := c.store.List(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(snaps))
	for _, s := range snaps {
		var d productDoc
		if err := s.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toEntity(s.Ref.ID))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ListVisible solo los productos marcados como visibles.
func (c *ProductCatalog) ListVisible(ctx context.Context) ([]*entity.Product, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *ProductCatalog) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	ref := productRef(id)
	var d productDoc
	ok, err := c.store.Get(ctx, ref, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(ref, docstore.ErrNotFound)
	}
	return d.toEntity(id), nil
}
