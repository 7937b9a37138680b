package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/application/usecase"
)

// ReporteHandler expone los indicadores agregados de la fábrica (protegido).
type ReporteHandler struct {
	uc *usecase.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *usecase.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Resumen godoc
// @Summary      Resumen de compras, facturación y cartera de la fábrica
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenFabricaResponse
// @Router       /api/reportes/resumen [get]
func (h *ReporteHandler) Resumen(c *fiber.Ctx) error {
	fabricaID := GetFabricaID(c)
	if fabricaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "fabrica_id requerido"})
	}
	out, err := h.uc.ResumenFabrica(fabricaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
