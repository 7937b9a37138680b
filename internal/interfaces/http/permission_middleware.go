package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
)

// actorLoader es el contrato mínimo que necesita el middleware para cargar la
// cuenta del actor. Lo implementa repository.UsuarioRepository; el uso de
// interfaz evita acoplar el middleware al puerto completo.
type actorLoader interface {
	GetByID(id string) (*entity.Usuario, error)
}

// RequirePermission devuelve un middleware Fiber que verifica contra la matriz
// PERSISTIDA del usuario si tiene la acción sobre el módulo. Debe usarse
// DESPUÉS de AuthMiddleware (necesita LocalUserID). El rol del token no se
// consulta: un permiso revocado en la base se aplica en la siguiente petición
// aunque el token siga vigente.
//
// Comportamiento:
//   - 401 Unauthorized → no hay user_id en el contexto.
//   - 503 Service Unavailable → fallo de infraestructura al cargar la cuenta.
//   - 403 Forbidden → cuenta inexistente, inactiva o sin el permiso.
func RequirePermission(mod authz.Modulo, acc authz.Accion, loader actorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		actor, err := loader.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if actor == nil || actor.Estado != "active" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "cuenta inexistente o inactiva",
			})
		}

		if !actor.Permisos.Permite(mod, acc) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso '" + string(acc) + "' sobre el módulo '" + string(mod) + "'",
			})
		}

		return c.Next()
	}
}

// RequireRol devuelve un middleware que exige que el rol PERSISTIDO del actor
// sea uno de los indicados. Se usa para superficies que no pertenecen a ningún
// módulo de la matriz (administración de fábricas y de cuentas).
func RequireRol(loader actorLoader, roles ...authz.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		actor, err := loader.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el rol, intente más tarde",
			})
		}
		if actor == nil || actor.Estado != "active" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "cuenta inexistente o inactiva",
			})
		}

		for _, r := range roles {
			if actor.Rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin acceso a esta operación",
		})
	}
}

// cargarActor carga la cuenta del actor autenticado para los handlers que
// pasan el actor completo al servicio (permisos). Responde el error HTTP y
// devuelve nil si no se pudo cargar.
func cargarActor(c *fiber.Ctx, loader actorLoader) *entity.Usuario {
	userID := GetUserID(c)
	if userID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id no encontrado en el token"})
		return nil
	}
	actor, err := loader.GetByID(userID)
	if err != nil {
		_ = c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERMISSION_CHECK_FAILED", Message: "no se pudo cargar la cuenta"})
		return nil
	}
	if actor == nil || actor.Estado != "active" {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inexistente o inactiva"})
		return nil
	}
	return actor
}
