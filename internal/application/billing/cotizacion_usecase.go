package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// CotizacionUseCase crea cotizaciones y las convierte en facturas.
type CotizacionUseCase struct {
	cotizaciones repository.CotizacionRepository
	clientes     repository.ClienteRepository
	productos    repository.ProductoRepository
	facturaUC    *FacturaUseCase
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(
	cotizaciones repository.CotizacionRepository,
	clientes repository.ClienteRepository,
	productos repository.ProductoRepository,
	facturaUC *FacturaUseCase,
) *CotizacionUseCase {
	return &CotizacionUseCase{
		cotizaciones: cotizaciones,
		clientes:     clientes,
		productos:    productos,
		facturaUC:    facturaUC,
	}
}

func pctValido(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(cien)
}

// Create crea una cotización en borrador. Cada línea admite un descuento
// propio y la cabecera un descuento global; el IVA se calcula sobre el
// subtotal ya descontado.
func (uc *CotizacionUseCase) Create(fabricaID string, in dto.CreateCotizacionRequest) (*dto.CotizacionResponse, error) {
	if len(in.Lineas) == 0 || !pctValido(in.DescuentoPct) {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clientes.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	cotID := uuid.New().String()
	validaHasta := in.ValidaHasta
	if validaHasta.IsZero() {
		validaHasta = now.AddDate(0, 0, 30)
	}

	subtotal := decimal.Zero
	lineas := make([]*entity.CotizacionLinea, 0, len(in.Lineas))
	for _, linea := range in.Lineas {
		if !linea.Cantidad.IsPositive() || linea.PrecioUnitario.IsNegative() || !pctValido(linea.DescuentoPct) {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productos.GetByID(linea.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil || producto.FabricaID != fabricaID {
			return nil, domain.ErrNotFound
		}
		precio := linea.PrecioUnitario
		if precio.IsZero() {
			precio = producto.Precio
		}
		bruto := linea.Cantidad.Mul(precio)
		neto := bruto.Sub(bruto.Mul(linea.DescuentoPct).Div(cien))
		subtotal = subtotal.Add(neto)
		lineas = append(lineas, &entity.CotizacionLinea{
			ID:             uuid.New().String(),
			CotizacionID:   cotID,
			ProductoID:     linea.ProductoID,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: precio,
			DescuentoPct:   linea.DescuentoPct,
			IVA:            producto.IVA,
			Subtotal:       neto,
		})
	}

	descuento := subtotal.Mul(in.DescuentoPct).Div(cien).Round(2)
	base := subtotal.Sub(descuento)
	// El IVA se reparte por línea proporcionalmente al descuento global.
	factorGlobal := decimal.NewFromInt(1).Sub(in.DescuentoPct.Div(cien))
	iva := decimal.Zero
	for _, l := range lineas {
		iva = iva.Add(l.Subtotal.Mul(factorGlobal).Mul(l.IVA).Div(cien))
	}
	iva = iva.Round(2)

	cot := &entity.Cotizacion{
		ID:           cotID,
		FabricaID:    fabricaID,
		ClienteID:    in.ClienteID,
		Numero:       "COT-" + strings.ToUpper(cotID[:8]),
		Fecha:        now,
		ValidaHasta:  validaHasta,
		DescuentoPct: in.DescuentoPct,
		Subtotal:     subtotal,
		Descuento:    descuento,
		IVA:          iva,
		Total:        base.Add(iva),
		Estado:       entity.CotizacionBorrador,
		Notas:        in.Notas,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.cotizaciones.CreateConLineas(cot, lineas); err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, lineas), nil
}

// Enviar transiciona borrador → enviada.
func (uc *CotizacionUseCase) Enviar(fabricaID, id string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cargar(fabricaID, id)
	if err != nil {
		return nil, err
	}
	if cot.Estado != entity.CotizacionBorrador {
		return nil, domain.ErrConflict
	}
	cot.Estado = entity.CotizacionEnviada
	cot.UpdatedAt = time.Now()
	if err := uc.cotizaciones.Update(cot); err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, nil), nil
}

// Aceptar marca una cotización enviada como aceptada. Si ya venció la marca
// como vencida y devuelve conflicto.
func (uc *CotizacionUseCase) Aceptar(fabricaID, id string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cargar(fabricaID, id)
	if err != nil {
		return nil, err
	}
	if cot.Estado != entity.CotizacionEnviada {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if now.After(cot.ValidaHasta) {
		cot.Estado = entity.CotizacionVencida
		cot.UpdatedAt = now
		_ = uc.cotizaciones.Update(cot)
		return nil, domain.ErrConflict
	}
	cot.Estado = entity.CotizacionAceptada
	cot.UpdatedAt = now
	if err := uc.cotizaciones.Update(cot); err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, nil), nil
}

// Facturar convierte una cotización aceptada en factura. Las líneas de la
// cotización se trasladan con su precio ya descontado por línea; el descuento
// global queda reflejado en las notas de la factura.
func (uc *CotizacionUseCase) Facturar(fabricaID, id string) (*dto.FacturaResponse, error) {
	cot, err := uc.cargar(fabricaID, id)
	if err != nil {
		return nil, err
	}
	if cot.Estado != entity.CotizacionAceptada {
		return nil, domain.ErrConflict
	}
	lineas, err := uc.cotizaciones.GetLineas(id)
	if err != nil {
		return nil, err
	}

	req := dto.CreateFacturaRequest{
		ClienteID: cot.ClienteID,
		Notas:     "Generada desde cotización " + cot.Numero,
	}
	factorGlobal := decimal.NewFromInt(1).Sub(cot.DescuentoPct.Div(cien))
	for _, l := range lineas {
		factorLinea := decimal.NewFromInt(1).Sub(l.DescuentoPct.Div(cien))
		precio := l.PrecioUnitario.Mul(factorLinea).Mul(factorGlobal)
		req.Lineas = append(req.Lineas, dto.FacturaLineaRequest{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: precio,
		})
	}

	factura, err := uc.facturaUC.Create(fabricaID, req)
	if err != nil {
		return nil, err
	}

	cot.Estado = entity.CotizacionFacturada
	cot.FacturaID = &factura.ID
	cot.UpdatedAt = time.Now()
	if err := uc.cotizaciones.Update(cot); err != nil {
		return nil, err
	}
	return factura, nil
}

// GetByID obtiene una cotización con sus líneas.
func (uc *CotizacionUseCase) GetByID(fabricaID, id string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotizaciones.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.FabricaID != fabricaID {
		return nil, nil
	}
	lineas, err := uc.cotizaciones.GetLineas(id)
	if err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, lineas), nil
}

// List lista las cotizaciones de la fábrica.
func (uc *CotizacionUseCase) List(fabricaID string, limit, offset int) (*dto.CotizacionListResponse, error) {
	list, err := uc.cotizaciones.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCotizacionResponse(c, nil))
	}
	return &dto.CotizacionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *CotizacionUseCase) cargar(fabricaID, id string) (*entity.Cotizacion, error) {
	cot, err := uc.cotizaciones.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	return cot, nil
}

func toCotizacionResponse(c *entity.Cotizacion, lineas []*entity.CotizacionLinea) *dto.CotizacionResponse {
	if c == nil {
		return nil
	}
	out := &dto.CotizacionResponse{
		ID:           c.ID,
		FabricaID:    c.FabricaID,
		ClienteID:    c.ClienteID,
		Numero:       c.Numero,
		Fecha:        c.Fecha,
		ValidaHasta:  c.ValidaHasta,
		DescuentoPct: c.DescuentoPct,
		Subtotal:     c.Subtotal,
		Descuento:    c.Descuento,
		IVA:          c.IVA,
		Total:        c.Total,
		Estado:       c.Estado,
		FacturaID:    c.FacturaID,
		Notas:        c.Notas,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, l := range lineas {
		out.Lineas = append(out.Lineas, dto.CotizacionLineaResponse{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			DescuentoPct:   l.DescuentoPct,
			IVA:            l.IVA,
			Subtotal:       l.Subtotal,
		})
	}
	return out
}
