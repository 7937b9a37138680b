package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// PagoRepository define el puerto de persistencia para Pago (DIP).
type PagoRepository interface {
	Create(p *entity.Pago) error
	GetByID(id string) (*entity.Pago, error)
	Update(p *entity.Pago) error
	ListByFactura(facturaID string) ([]*entity.Pago, error)
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Pago, error)
}
