package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// CotizacionRepository define el puerto de persistencia para Cotizacion (DIP).
type CotizacionRepository interface {
	CreateConLineas(c *entity.Cotizacion, lineas []*entity.CotizacionLinea) error
	GetByID(id string) (*entity.Cotizacion, error)
	GetLineas(cotizacionID string) ([]*entity.CotizacionLinea, error)
	Update(c *entity.Cotizacion) error
	ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Cotizacion, error)
}
