package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestor-fabricas/internal/application/compras"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
)

// OrdenHandler maneja las peticiones HTTP de órdenes de compra (protegido).
// Las transiciones de estado son endpoints POST explícitos; una transición
// desde un estado no permitido responde 409.
type OrdenHandler struct {
	uc *compras.OrdenUseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *compras.OrdenUseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (borrador)
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdenCompraRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrdenCompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes [post]
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	fabricaID := GetFabricaID(c)
	if fabricaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "fabrica_id requerido"})
	}
	var in dto.CreateOrdenCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProveedorID == "" || len(in.Lineas) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor_id y al menos una línea son requeridos"})
	}
	out, err := h.uc.Create(fabricaID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidades o precios inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor o producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *OrdenHandler) GetByID(c *fiber.Ctx) error {
	fabricaID := GetFabricaID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(fabricaID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de la fábrica
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrdenCompraListResponse
// @Router       /api/ordenes [get]
func (h *OrdenHandler) List(c *fiber.Ctx) error {
	fabricaID := GetFabricaID(c)
	if fabricaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "fabrica_id requerido"})
	}
	page := dto.NewPageRequest(c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	out, err := h.uc.List(fabricaID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Enviar godoc
// @Summary      Enviar la orden al proveedor (borrador → enviada)
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/enviar [post]
func (h *OrdenHandler) Enviar(c *fiber.Ctx) error {
	out, err := h.uc.Enviar(GetFabricaID(c), c.Params("id"))
	return h.respuestaTransicion(c, out, err)
}

// Aprobar godoc
// @Summary      Aprobar una orden enviada
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/aprobar [post]
func (h *OrdenHandler) Aprobar(c *fiber.Ctx) error {
	out, err := h.uc.Aprobar(GetFabricaID(c), c.Params("id"), GetUserID(c), true)
	return h.respuestaTransicion(c, out, err)
}

// Rechazar godoc
// @Summary      Rechazar una orden enviada
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/rechazar [post]
func (h *OrdenHandler) Rechazar(c *fiber.Ctx) error {
	out, err := h.uc.Aprobar(GetFabricaID(c), c.Params("id"), GetUserID(c), false)
	return h.respuestaTransicion(c, out, err)
}

// Recibir godoc
// @Summary      Marcar una orden aprobada como recibida
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/recibir [post]
func (h *OrdenHandler) Recibir(c *fiber.Ctx) error {
	out, err := h.uc.Recibir(GetFabricaID(c), c.Params("id"))
	return h.respuestaTransicion(c, out, err)
}

// Cancelar godoc
// @Summary      Cancelar una orden en borrador o enviada
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/cancelar [post]
func (h *OrdenHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(GetFabricaID(c), c.Params("id"))
	return h.respuestaTransicion(c, out, err)
}

// respuestaTransicion mapea el resultado de una transición al código HTTP.
func (h *OrdenHandler) respuestaTransicion(c *fiber.Ctx, out *dto.OrdenCompraResponse, err error) error {
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "transición no permitida desde el estado actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
