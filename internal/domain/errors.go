package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del modelo de autorización (roles, permisos, alcance por fábrica).
var (
	// ErrRolInvalido: el rol no pertenece al conjunto cerrado de roles.
	ErrRolInvalido = errors.New("rol inválido")
	// ErrPermisosInvalidos: módulo o acción fuera del conjunto cerrado, o valor no booleano.
	ErrPermisosInvalidos = errors.New("estructura de permisos inválida")
	// ErrFabricaAjena: un ADMIN_FABRICA intentó operar sobre una fábrica distinta a la suya.
	ErrFabricaAjena = errors.New("operación fuera de la fábrica del administrador")
)
