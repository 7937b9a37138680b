package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// OrdenCompraRepository define el puerto de persistencia para OrdenCompra (DIP).
type OrdenCompraRepository interface {
	CreateConDetalles(o *entity.OrdenCompra, detalles []*entity.OrdenCompraDetalle) error
	GetByID(id string) (*entity.OrdenCompra, error)
	GetDetalles(ordenID string) ([]*entity.OrdenCompraDetalle, error)
	Update(o *entity.OrdenCompra) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.OrdenCompra, error)
}
