package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// CompraRepository define el puerto de persistencia para Compra (DIP).
// CreateConDetalles persiste cabecera y líneas; la implementación decide la
// frontera transaccional.
type CompraRepository interface {
	CreateConDetalles(c *entity.Compra, detalles []*entity.CompraDetalle) error
	GetByID(id string) (*entity.Compra, error)
	GetDetalles(compraID string) ([]*entity.CompraDetalle, error)
	Update(c *entity.Compra) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Compra, error)
	ListByEstado(fabricaID, estado string, limit, offset int) ([]*entity.Compra, error)
}
