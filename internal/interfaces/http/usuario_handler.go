package http

import (
	"github.com/gofiber/fiber/v2"
	authzsvc "github.com/tu-usuario/gestor-fabricas/internal/application/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
)

// UsuarioHandler expone la administración de cuentas y permisos. Todas sus
// rutas requieren AuthMiddleware; el alcance (quién puede ver o mutar a quién)
// lo decide el servicio de permisos con el actor PERSISTIDO, no el token.
type UsuarioHandler struct {
	svc    *authzsvc.PermisosService
	loader actorLoader
}

// NewUsuarioHandler construye el handler de cuentas.
func NewUsuarioHandler(svc *authzsvc.PermisosService, loader actorLoader) *UsuarioHandler {
	return &UsuarioHandler{svc: svc, loader: loader}
}

// List godoc
// @Summary      Listar cuentas con sus permisos
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.UsuarioListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	actor := cargarActor(c, h.loader)
	if actor == nil {
		return nil
	}
	page := dto.NewPageRequest(c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	out, err := h.svc.Listar(actor, page.Limit, page.Offset)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no puede listar cuentas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VerPermisos godoc
// @Summary      Consultar la matriz de permisos de una cuenta
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/permisos [get]
func (h *UsuarioHandler) VerPermisos(c *fiber.Ctx) error {
	actor := cargarActor(c, h.loader)
	if actor == nil {
		return nil
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.svc.VerPermisos(actor, id)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo SUPER_ADMIN puede consultar permisos ajenos"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ActualizarPermisos godoc
// @Summary      Aplicar un parche de permisos y/o rol sobre una cuenta
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta objetivo"
// @Param        body  body  dto.ActualizarPermisosRequest  true  "parche {permisos?, rol?}"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/permisos [put]
func (h *UsuarioHandler) ActualizarPermisos(c *fiber.Ctx) error {
	actor := cargarActor(c, h.loader)
	if actor == nil {
		return nil
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarPermisosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Permisos == nil && in.Rol == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el parche debe incluir permisos o rol"})
	}
	out, err := h.svc.Actualizar(actor, id, in)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no puede administrar permisos"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		if err == domain.ErrFabricaAjena {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FABRICA_AJENA", Message: "la cuenta pertenece a otra fábrica"})
		}
		if err == domain.ErrPermisosInvalidos {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERMISOS", Message: "módulo, acción o valor fuera de los conjuntos válidos"})
		}
		if err == domain.ErrRolInvalido {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROL", Message: "el rol no pertenece al conjunto de roles válidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
