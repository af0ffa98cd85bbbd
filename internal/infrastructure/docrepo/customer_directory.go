package docrepo

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.CustomerDirectory = (*CustomerDirectory)(nil)

// userDoc campos de contacto de un documento de usuarios; el resto (rol, etc.) se ignora.
type userDoc struct {
	Cedula    string `json:"cedula"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// CustomerDirectory búsqueda por cédula sobre la colección usuarios.
type CustomerDirectory struct {
	store docstore.Store
}

// NewCustomerDirectory crea el directorio.
func NewCustomerDirectory(store docstore.Store) *CustomerDirectory {
	return &CustomerDirectory{store: store}
}

// find devuelve el ID del primer documento (por ID) con esa cédula, o "" si no hay.
func (r *CustomerDirectory) find(ctx context.Context, documentID string) (string, *userDoc, error) {
	snaps, err := r.store.List(ctx, CollectionCustomers)
	if err != nil {
		return "", nil, err
	}
	for _, s := range snaps {
		var d userDoc
		if err := s.DataTo(&d); err != nil {
			return "", nil, fmt.Errorf("%s: %w", s.Ref, err)
		}
		if d.Cedula == documentID {
			return s.Ref.ID, &d, nil
		}
	}
	return "", nil, nil
}

func (r *CustomerDirectory) FindByDocumentID(ctx context.Context, documentID string) (*entity.CustomerSnapshot, error) {
	_, d, err := r.find(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%s cédula %s: %w", CollectionCustomers, documentID, domain.ErrNotFound)
	}
	return &entity.CustomerSnapshot{
		DocumentID: d.Cedula,
		FirstName:  d.Nombre,
		LastName:   d.Apellido,
		Email:      d.Correo,
		Phone:      d.Telefono,
		Address:    d.Direccion,
	}, nil
}

func (r *CustomerDirectory) Upsert(ctx context.Context, c *entity.CustomerSnapshot) error {
	id, _, err := r.find(ctx, c.DocumentID)
	if err != nil {
		return err
	}
	if id == "" {
		id = c.DocumentID
	}
	fields := map[string]any{"cedula": c.DocumentID}
	for k, v := range map[string]string{
		"nombre":    c.FirstName,
		"apellido":  c.LastName,
		"correo":    c.Email,
		"telefono":  c.Phone,
		"direccion": c.Address,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return r.store.RunTransaction(ctx, func(_ context.Context, tx docstore.Tx) error {
		return tx.Set(docstore.Doc(CollectionCustomers, id), fields, docstore.MergeAll())
	})
}
