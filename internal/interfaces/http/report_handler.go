package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/history"
	"github.com/jhoicas/Facturacion-api/internal/application/report"
)

// ReportHandler historial de acciones y reporte de ventas (solo admin).
type ReportHandler struct {
	history *history.UseCase
	sales   *report.SalesUseCase
}

func NewReportHandler(h *history.UseCase, sales *report.SalesUseCase) *ReportHandler {
	return &ReportHandler{history: h, sales: sales}
}

// History godoc
// @Summary      Historial de un usuario
// @Description  Más recientes primero. Sin user_id devuelve el del usuario del token.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "ID del usuario"
// @Success      200  {array}  dto.HistoryEntryResponse
// @Router       /api/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	userID := c.Query("user_id", GetUserID(c))
	out, err := h.history.ListByUser(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Resumen de ventas por tipo de documento
// @Description  Fechas YYYY-MM-DD inclusive; por defecto el mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	out, err := h.sales.Summary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
