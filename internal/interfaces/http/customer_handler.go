package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
)

// CustomerHandler búsqueda de clientes al facturar.
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Lookup godoc
// @Summary      Buscar cliente por cédula
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        document_id  query  string  true  "Cédula o RUC"
// @Success      200  {object}  dto.CustomerData
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.UserContext(), c.Query("document_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
