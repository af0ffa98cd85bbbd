package entity

import "time"

// Category agrupa productos del catálogo. Los productos guardan el nombre de la categoría,
// no su ID, así que renombrar o eliminar una categoría no modifica productos ni ventas.
type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Visible     bool
	Priority    int // menor primero
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
