// Package catalog administra el catálogo de productos. El stock solo cambia dentro de
// transacciones (ajustes aquí, ventas en billing).
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	txRunner billing.BillingTxRunner
	catalog  repository.ProductCatalog
	settings billing.Settings
	log      zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner billing.BillingTxRunner, catalog repository.ProductCatalog, settings billing.Settings, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, catalog: catalog, settings: settings, log: log}
}

func validatePrices(unit, wholesale decimal.Decimal) error {
	if unit.IsNegative() || wholesale.IsNegative() {
		return domain.NewValidationError(domain.ReasonInvalidPrice)
	}
	return nil
}

// Create crea un producto visible (salvo que se indique lo contrario) con su stock inicial.
// El stock inicial queda registrado como movimiento de ajuste.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingName)
	}
	if err := validatePrices(in.UnitPrice, in.WholesalePrice); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError(domain.ReasonInvalidStock)
	}
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	now := uc.now()
	product := &entity.Product{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       strings.TrimSpace(in.Category),
		Brand:          strings.TrimSpace(in.Brand),
		UnitPrice:      in.UnitPrice,
		WholesalePrice: in.WholesalePrice,
		Stock:          in.Stock,
		Visible:        visible,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := billing.RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "create_product", func(_ context.Context, r repository.TxRepos) error {
		if err := r.Products.Create(product); err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		return r.Movements.Append(&entity.StockMovement{
			ID:          uuid.NewString(),
			ReferenceID: product.ID,
			ProductID:   product.ID,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    product.Stock,
			StockAfter:  product.Stock,
			CreatedAt:   now,
			CreatedBy:   userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	return ToProductResponse(p), nil
}

// List productos ordenados por nombre; visibleOnly filtra los ocultos.
func (uc *ProductUseCase) List(ctx context.Context, visibleOnly bool) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if visibleOnly {
		list, err = uc.catalog.ListVisible(ctx)
	} else {
		list, err = uc.catalog.List(ctx)
	}
	if err != nil {
		return nil, billing.StoreErr(err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Total: len(items)},
	}, nil
}

// Update actualiza datos descriptivos y precios. No permite modificar Stock.
// Las ventas ya confirmadas conservan los precios copiados.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := billing.RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "update_product", func(_ context.Context, r repository.TxRepos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.NewValidationError(domain.ReasonMissingName)
			}
			p.Name = name
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.Brand != nil {
			p.Brand = strings.TrimSpace(*in.Brand)
		}
		if in.UnitPrice != nil {
			p.UnitPrice = *in.UnitPrice
		}
		if in.WholesalePrice != nil {
			p.WholesalePrice = *in.WholesalePrice
		}
		if err := validatePrices(p.UnitPrice, p.WholesalePrice); err != nil {
			return err
		}
		p.UpdatedAt = uc.now()
		if err := r.Products.Update(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(out), nil
}

// SetVisibility muestra u oculta el producto en la selección de ventas.
func (uc *ProductUseCase) SetVisibility(ctx context.Context, id string, visible bool) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := billing.RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "product_visibility", func(_ context.Context, r repository.TxRepos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		p.Visible = visible
		p.UpdatedAt = uc.now()
		if err := r.Products.Update(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(out), nil
}

// AdjustStock fija el stock absoluto del producto (conteo físico) y registra el ajuste.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, userID, id string, stock int64) (*dto.ProductResponse, error) {
	if stock < 0 {
		return nil, domain.NewValidationError(domain.ReasonInvalidStock)
	}
	var out *entity.Product
	err := billing.RunWithRetry(ctx, uc.txRunner, uc.settings.Retry, uc.log, "adjust_stock", func(_ context.Context, r repository.TxRepos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		now := uc.now()
		delta := stock - p.Stock
		if err := r.Products.UpdateStock(id, stock, now); err != nil {
			return err
		}
		if err := r.Movements.Append(&entity.StockMovement{
			ID:          uuid.NewString(),
			ReferenceID: id,
			ProductID:   id,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    delta,
			StockAfter:  stock,
			CreatedAt:   now,
			CreatedBy:   userID,
		}); err != nil {
			return err
		}
		if err := r.History.Append(&entity.HistoryEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.HistoryStockAdjusted,
			Detail:    fmt.Sprintf("%s: %d -> %d", p.Name, p.Stock, stock),
			CreatedAt: now,
		}); err != nil {
			return err
		}
		p.Stock = stock
		p.UpdatedAt = now
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(out), nil
}

func (uc *ProductUseCase) now() time.Time {
	if uc.settings.Now != nil {
		return uc.settings.Now().UTC()
	}
	return time.Now().UTC()
}

// ToProductResponse convierte el producto en su representación HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		UnitPrice:      p.UnitPrice,
		WholesalePrice: p.WholesalePrice,
		Stock:          p.Stock,
		Visible:        p.Visible,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
