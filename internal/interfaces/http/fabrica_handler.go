package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/application/usecase"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
)

// FabricaHandler maneja las peticiones HTTP para Fábricas. El router protege
// estas rutas con RequireRol(SUPER_ADMIN): las fábricas son el tenant y solo
// la administración global puede crearlas o listarlas todas.
type FabricaHandler struct {
	uc *usecase.FabricaUseCase
}

// NewFabricaHandler construye el handler.
func NewFabricaHandler(uc *usecase.FabricaUseCase) *FabricaHandler {
	return &FabricaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear fábrica
// @Tags         fabricas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFabricaRequest  true  "Datos de la fábrica"
// @Success      201   {object}  dto.FabricaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fabricas [post]
func (h *FabricaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFabricaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Numero <= 0 || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero y nombre son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el número de fábrica ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fábrica por ID
// @Tags         fabricas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fábrica"
// @Success      200  {object}  dto.FabricaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fabricas/{id} [get]
func (h *FabricaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fábrica no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fábricas
// @Tags         fabricas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.FabricaListResponse
// @Router       /api/fabricas [get]
func (h *FabricaHandler) List(c *fiber.Ctx) error {
	page := dto.NewPageRequest(c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
