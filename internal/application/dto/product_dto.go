package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name           string          `json:"name" csv:"nombre"`
	Category       string          `json:"category" csv:"categoria"`
	Brand          string          `json:"brand" csv:"marca"`
	UnitPrice      decimal.Decimal `json:"unit_price" csv:"precio_unitario"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" csv:"precio_mayor"`
	Stock          int64           `json:"stock" csv:"stock"`
	Visible        *bool           `json:"visible,omitempty" csv:"-"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Category       *string          `json:"category"`
	Brand          *string          `json:"brand"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
}

// VisibilityRequest body para PATCH /api/products/:id/visibility.
type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

// AdjustStockRequest body para PUT /api/products/:id/stock (stock absoluto).
type AdjustStockRequest struct {
	Stock int64 `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Stock          int64           `json:"stock"`
	Visible        bool            `json:"visible"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MovementResponse movimiento de stock de un producto.
type MovementResponse struct {
	ID          string    `json:"id"`
	ReferenceID string    `json:"reference_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	StockAfter  int64     `json:"stock_after"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
