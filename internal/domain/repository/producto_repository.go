package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByFabricaYSKU(fabricaID, sku string) (*entity.Producto, error)
	Update(p *entity.Producto) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Producto, error)
	Delete(id string) error
}
