package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// FacturaRepository define el puerto de persistencia para Factura (DIP).
type FacturaRepository interface {
	CreateConDetalles(f *entity.Factura, detalles []*entity.FacturaDetalle) error
	GetByID(id string) (*entity.Factura, error)
	GetDetalles(facturaID string) ([]*entity.FacturaDetalle, error)
	Update(f *entity.Factura) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Factura, error)
	SiguienteNumero(fabricaID string) (int, error)
}
