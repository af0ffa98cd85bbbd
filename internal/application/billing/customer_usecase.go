package billing

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CustomerUseCase búsqueda de clientes por cédula para llenar el borrador de venta.
// La venta sigue guardando su propia copia del cliente.
type CustomerUseCase struct {
	directory repository.CustomerDirectory
	log       zerolog.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(directory repository.CustomerDirectory, log zerolog.Logger) *CustomerUseCase {
	return &CustomerUseCase{directory: directory, log: log}
}

// Lookup devuelve los datos del cliente con esa cédula o domain.ErrNotFound.
func (uc *CustomerUseCase) Lookup(ctx context.Context, documentID string) (*dto.CustomerData, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingDocumentID)
	}
	c, err := uc.directory.FindByDocumentID(ctx, documentID)
	if err != nil {
		return nil, StoreErr(err)
	}
	out := customerToDTO(*c)
	return &out, nil
}

// Import registra o completa clientes en el directorio. Se detiene en la primera fila inválida
// y devuelve cuántas se guardaron antes.
func (uc *CustomerUseCase) Import(ctx context.Context, rows []dto.CustomerData) (int, error) {
	for i, row := range rows {
		c := customerFromDTO(row)
		c.DocumentID = strings.TrimSpace(c.DocumentID)
		c.FirstName = strings.TrimSpace(c.FirstName)
		if c.DocumentID == "" {
			return i, domain.NewValidationError(domain.ReasonMissingDocumentID)
		}
		if c.FirstName == "" {
			return i, domain.NewValidationError(domain.ReasonMissingName)
		}
		if err := uc.directory.Upsert(ctx, &c); err != nil {
			return i, StoreErr(err)
		}
	}
	uc.log.Info().Int("clientes", len(rows)).Msg("clientes importados")
	return len(rows), nil
}

func customerToDTO(c entity.CustomerSnapshot) dto.CustomerData {
	return dto.CustomerData{
		DocumentID: c.DocumentID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
	}
}
