package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente (DIP).
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByFabricaYNIT(fabricaID, nit string) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Cliente, error)
	Delete(id string) error
}
