package entity

import (
	"time"

	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
)

// Usuario representa una cuenta del sistema. Pertenece a exactamente una
// Fábrica durante toda su vida (FabricaID es inmutable tras la creación) y
// es dueña de su matriz de permisos, sembrada con los defaults del rol al
// registrarse y mutada después solo por el servicio de permisos.
type Usuario struct {
	ID           string
	FabricaID    string // referencia a Fabrica, obligatoria e inmutable
	Username     string // único en todo el sistema
	Email        string // único en todo el sistema
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Rol          authz.Rol
	Permisos     authz.MatrizPermisos
	Online       bool
	UltimaSesion *time.Time // nil = nunca ha iniciado sesión
	Estado       string     // active, inactive, suspended (borrado lógico)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
