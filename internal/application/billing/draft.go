package billing

import (
	"math"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
)

const issueDateLayout = "2006-01-02"

// draftLine línea validada del borrador.
type draftLine struct {
	ProductID string
	Quantity  int64
	PriceTier entity.PriceTier
}

// validateItems chequeos estructurales del borrador, sin tocar el almacenamiento.
func validateItems(items []dto.InvoiceItemRequest) ([]draftLine, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError(domain.ReasonNoLineItems)
	}
	lines := make([]draftLine, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, domain.NewValidationError(domain.ReasonNoLineItems)
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError(domain.ReasonInvalidQuantity)
		}
		tier := entity.PriceTier(it.PriceTier)
		if !tier.Valid() {
			return nil, domain.NewValidationError(domain.ReasonInvalidPriceTier)
		}
		lines = append(lines, draftLine{ProductID: it.ProductID, Quantity: it.Quantity, PriceTier: tier})
	}
	return lines, nil
}

// quantities suma por producto conservando el orden de primera aparición.
// Una suma que desborda int64 se rechaza como cantidad inválida.
func quantities(lines []draftLine) (order []string, qty map[string]int64, err error) {
	qty = make(map[string]int64, len(lines))
	for _, l := range lines {
		acc, seen := qty[l.ProductID]
		if !seen {
			order = append(order, l.ProductID)
		}
		if l.Quantity > math.MaxInt64-acc {
			return nil, nil, domain.NewValidationError(domain.ReasonInvalidQuantity)
		}
		qty[l.ProductID] = acc + l.Quantity
	}
	return order, qty, nil
}

func parseIssueDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now.Truncate(24 * time.Hour), nil
	}
	d, err := time.Parse(issueDateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.ReasonInvalidIssueDate)
	}
	return d, nil
}

func customerFromDTO(c dto.CustomerData) entity.CustomerSnapshot {
	return entity.CustomerSnapshot{
		DocumentID: c.DocumentID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
	}
}

// snapshotLine copia los datos vigentes del producto a la línea.
func snapshotLine(p *entity.Product, l draftLine) entity.InvoiceLineItem {
	price := p.PriceFor(l.PriceTier)
	return entity.InvoiceLineItem{
		ProductID:      p.ID,
		ProductName:    p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		Quantity:       l.Quantity,
		PriceTier:      l.PriceTier,
		UnitPriceUsed:  price,
		UnitPrice:      p.UnitPrice,
		WholesalePrice: p.WholesalePrice,
		LineSubtotal:   invoicing.LineSubtotal(price, l.Quantity),
	}
}
