package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// PagoUseCase registra y aprueba pagos contra facturas.
type PagoUseCase struct {
	pagos    repository.PagoRepository
	facturas repository.FacturaRepository
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(pagos repository.PagoRepository, facturas repository.FacturaRepository) *PagoUseCase {
	return &PagoUseCase{pagos: pagos, facturas: facturas}
}

func metodoValido(m string) bool {
	switch m {
	case entity.PagoEfectivo, entity.PagoTransferencia, entity.PagoCheque, entity.PagoTarjeta:
		return true
	}
	return false
}

// Create registra un pago pendiente contra una factura emitida. El monto debe
// ser positivo y no exceder el saldo actual; el saldo no se afecta hasta la
// aprobación.
func (uc *PagoUseCase) Create(fabricaID string, in dto.CreatePagoRequest) (*dto.PagoResponse, error) {
	if !in.Monto.IsPositive() || !metodoValido(in.Metodo) {
		return nil, domain.ErrInvalidInput
	}
	factura, err := uc.facturas.GetByID(in.FacturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	if factura.Estado != entity.FacturaEmitida {
		return nil, domain.ErrConflict
	}
	if in.Monto.GreaterThan(factura.Saldo) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	pago := &entity.Pago{
		ID:         uuid.New().String(),
		FabricaID:  fabricaID,
		FacturaID:  in.FacturaID,
		Monto:      in.Monto,
		Metodo:     in.Metodo,
		Referencia: in.Referencia,
		Fecha:      now,
		Estado:     entity.PagoPendiente,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.pagos.Create(pago); err != nil {
		return nil, err
	}
	return toPagoResponse(pago), nil
}

// Aprobar resuelve un pago pendiente. Al aprobarlo descuenta el monto del
// saldo de la factura; si el saldo llega a cero la factura pasa a pagada.
// Rechazarlo no afecta la factura.
func (uc *PagoUseCase) Aprobar(fabricaID, pagoID, actorID string, aprobar bool) (*dto.PagoResponse, error) {
	pago, err := uc.pagos.GetByID(pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil || pago.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	if pago.Estado != entity.PagoPendiente {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	if !aprobar {
		pago.Estado = entity.PagoRechazado
		pago.AprobadoPor = &actorID
		pago.UpdatedAt = now
		if err := uc.pagos.Update(pago); err != nil {
			return nil, err
		}
		return toPagoResponse(pago), nil
	}

	factura, err := uc.facturas.GetByID(pago.FacturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	if factura.Estado != entity.FacturaEmitida || pago.Monto.GreaterThan(factura.Saldo) {
		return nil, domain.ErrConflict
	}

	factura.Saldo = factura.Saldo.Sub(pago.Monto)
	if factura.Saldo.Equal(decimal.Zero) {
		factura.Estado = entity.FacturaPagada
	}
	factura.UpdatedAt = now
	if err := uc.facturas.Update(factura); err != nil {
		return nil, err
	}

	pago.Estado = entity.PagoAprobado
	pago.AprobadoPor = &actorID
	pago.UpdatedAt = now
	if err := uc.pagos.Update(pago); err != nil {
		return nil, err
	}
	return toPagoResponse(pago), nil
}

// GetByID obtiene un pago.
func (uc *PagoUseCase) GetByID(fabricaID, id string) (*dto.PagoResponse, error) {
	pago, err := uc.pagos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pago == nil || pago.FabricaID != fabricaID {
		return nil, nil
	}
	return toPagoResponse(pago), nil
}

// ListByFactura lista los pagos de una factura.
func (uc *PagoUseCase) ListByFactura(fabricaID, facturaID string) ([]dto.PagoResponse, error) {
	factura, err := uc.facturas.GetByID(facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.pagos.ListByFactura(facturaID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PagoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPagoResponse(p))
	}
	return items, nil
}

// List lista los pagos de la fábrica.
func (uc *PagoUseCase) List(fabricaID string, limit, offset int) (*dto.PagoListResponse, error) {
	list, err := uc.pagos.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PagoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPagoResponse(p))
	}
	return &dto.PagoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPagoResponse(p *entity.Pago) *dto.PagoResponse {
	if p == nil {
		return nil
	}
	return &dto.PagoResponse{
		ID:          p.ID,
		FabricaID:   p.FabricaID,
		FacturaID:   p.FacturaID,
		Monto:       p.Monto,
		Metodo:      p.Metodo,
		Referencia:  p.Referencia,
		Fecha:       p.Fecha,
		Estado:      p.Estado,
		AprobadoPor: p.AprobadoPor,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
