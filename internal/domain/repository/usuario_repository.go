package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
// Update debe ser un read-modify-write atómico por cuenta: es la garantía
// que necesita el servicio de mutación de permisos.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByUsername(username string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	Update(u *entity.Usuario) error
	ListAll(limit, offset int) ([]*entity.Usuario, error)
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Usuario, error)
	Delete(id string) error
}
