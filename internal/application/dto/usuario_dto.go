package dto

import (
	"time"

	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
)

// RegisterRequest entrada para registro de una cuenta (password en texto, se
// hashea en el caso de uso). Los permisos NO se aceptan aquí: se siembran con
// los defaults del rol.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=60"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Nombre    string `json:"nombre" validate:"omitempty,max=200"`
	Rol       string `json:"rol" validate:"required"`
	FabricaID string `json:"fabrica_id" validate:"required,uuid"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// UsuarioResponse proyección pública de una cuenta: nunca incluye el hash de
// la contraseña.
type UsuarioResponse struct {
	ID           string               `json:"id"`
	FabricaID    string               `json:"fabrica_id"`
	Username     string               `json:"username"`
	Email        string               `json:"email"`
	Nombre       string               `json:"nombre"`
	Rol          authz.Rol            `json:"rol"`
	Permisos     authz.MatrizPermisos `json:"permisos"`
	Online       bool                 `json:"online"`
	UltimaSesion *time.Time           `json:"ultima_sesion,omitempty"`
	Estado       string               `json:"estado"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ActualizarPermisosRequest parche parcial sobre permisos y/o rol de una
// cuenta. Permisos llega sin tipar a propósito: la validación contra los
// conjuntos cerrados ocurre en el servicio, no en el parser JSON.
type ActualizarPermisosRequest struct {
	Permisos map[string]map[string]any `json:"permisos,omitempty"`
	Rol      *string                   `json:"rol,omitempty"`
}

// UsuarioListResponse listado de cuentas con sus permisos.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
