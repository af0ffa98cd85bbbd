// Package docstore define el puerto del almacenamiento de documentos: colecciones planas
// id → documento JSON con transacciones optimistas (lectura-validación-escritura).
//
// Contrato de RunTransaction:
//   - fn puede ejecutarse más de una vez; no debe tener efectos fuera de tx.
//   - Las lecturas observan una instantánea consistente; el conjunto leído se valida al
//     confirmar. Si otra transacción confirmó antes un documento leído, se devuelve ErrConflict
//     y no se aplica ninguna escritura.
//   - Si fn devuelve error o el contexto se cancela antes de confirmar, no hay efectos.
package docstore

import (
	"context"
	"errors"
)

// Errores del almacenamiento. Los adaptadores envuelven la causa con %w.
var (
	ErrConflict    = errors.New("docstore: conflicto de transacción")
	ErrUnavailable = errors.New("docstore: almacenamiento no disponible")
	ErrNotFound    = errors.New("docstore: documento no encontrado")
)

// Ref referencia a un documento.
type Ref struct {
	Collection string
	ID         string
}

// Doc construye una referencia.
func Doc(collection, id string) Ref {
	return Ref{Collection: collection, ID: id}
}

func (r Ref) String() string { return r.Collection + "/" + r.ID }

// SetOption modifica el comportamiento de Set.
type SetOption func(*SetOptions)

// SetOptions opciones resueltas de Set.
type SetOptions struct {
	Merge bool
}

// MergeAll combina los campos de primer nivel con el documento existente en lugar de reemplazarlo.
func MergeAll() SetOption {
	return func(o *SetOptions) { o.Merge = true }
}

// ApplySetOptions resuelve las opciones (uso de los adaptadores).
func ApplySetOptions(opts []SetOption) SetOptions {
	var o SetOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Tx operaciones disponibles dentro de una transacción.
type Tx interface {
	// Get decodifica el documento en dst. Devuelve false si no existe.
	Get(ref Ref, dst any) (bool, error)
	// Set escribe el documento completo (o combinado con MergeAll).
	Set(ref Ref, v any, opts ...SetOption) error
	// Update aplica un parche de campos de primer nivel. ErrNotFound si no existe.
	Update(ref Ref, patch map[string]any) error
	// Delete elimina el documento (no falla si no existe).
	Delete(ref Ref) error
}

// Store almacenamiento de documentos.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Get lectura fuera de transacción.
	Get(ctx context.Context, ref Ref, dst any) (bool, error)
	// List devuelve todos los documentos de la colección ordenados por ID.
	List(ctx context.Context, collection string) ([]Snapshot, error)
	Close() error
}

// Snapshot documento leído fuera de transacción.
type Snapshot struct {
	Ref  Ref
	Data []byte
}

// DataTo decodifica el documento en dst.
func (s Snapshot) DataTo(dst any) error {
	return Decode(s.Data, dst)
}
