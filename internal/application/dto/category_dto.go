package dto

import "time"

// CategoryRequest body para crear o reemplazar una categoría.
// Visible y Priority omitidos: al crear valen true y 1; al actualizar se conservan.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Visible     *bool  `json:"visible,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Visible     bool      `json:"visible"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse lista de categorías ordenada por prioridad.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
