package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para Proveedor (DIP).
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	GetByFabricaYNIT(fabricaID, nit string) (*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Proveedor, error)
	Delete(id string) error
}
