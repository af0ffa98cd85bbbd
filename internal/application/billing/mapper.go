package billing

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ToInvoiceResponse convierte la venta en su representación HTTP.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	b := inv.Business
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		DocumentType:   string(inv.DocumentType),
		DocumentNumber: inv.DocumentNumber,
		Sequence:       inv.Sequence,
		IssueDate:      inv.IssueDate.Format(issueDateLayout),
		Business: dto.BusinessResponse{
			Name:    b.Name,
			TaxID:   b.TaxID,
			Address: b.Address,
			Phone:   b.Phone,
			Email:   b.Email,
			City:    b.City,
			LogoURL: b.LogoURL,
		},
		Customer:      customerToDTO(inv.Customer),
		CreatedBy:     inv.CreatedBy,
		Items:         make([]dto.InvoiceLineResponse, 0, len(inv.Items)),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		FooterMessage: inv.FooterMessage,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     inv.UpdatedAt.Format(time.RFC3339),
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceLineResponse{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Category:      it.Category,
			Brand:         it.Brand,
			Quantity:      it.Quantity,
			PriceTier:     string(it.PriceTier),
			UnitPriceUsed: it.UnitPriceUsed,
			LineSubtotal:  it.LineSubtotal,
		})
	}
	return resp
}
