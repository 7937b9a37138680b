package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func (r *fakeClienteRepo) Create(c *entity.Cliente) error { r.clientes[c.ID] = c; return nil }
func (r *fakeClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.clientes[id], nil
}
func (r *fakeClienteRepo) GetByFabricaYNIT(fabricaID, nit string) (*entity.Cliente, error) {
	for _, c := range r.clientes {
		if c.FabricaID == fabricaID && c.NIT == nit {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeClienteRepo) Update(c *entity.Cliente) error { r.clientes[c.ID] = c; return nil }
func (r *fakeClienteRepo) ListByFabrica(string, int, int) ([]*entity.Cliente, error) {
	return nil, nil
}
func (r *fakeClienteRepo) Delete(id string) error { delete(r.clientes, id); return nil }

type fakeProductoRepo struct {
	productos map[string]*entity.Producto
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error { r.productos[p.ID] = p; return nil }
func (r *fakeProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return r.productos[id], nil
}
func (r *fakeProductoRepo) GetByFabricaYSKU(string, string) (*entity.Producto, error) {
	return nil, nil
}
func (r *fakeProductoRepo) Update(p *entity.Producto) error { r.productos[p.ID] = p; return nil }
func (r *fakeProductoRepo) ListByFabrica(string, int, int) ([]*entity.Producto, error) {
	return nil, nil
}
func (r *fakeProductoRepo) Delete(id string) error { delete(r.productos, id); return nil }

type fakeFacturaRepo struct {
	facturas map[string]*entity.Factura
	detalles map[string][]*entity.FacturaDetalle
	contador int
}

func (r *fakeFacturaRepo) CreateConDetalles(f *entity.Factura, dets []*entity.FacturaDetalle) error {
	copia := *f
	r.facturas[f.ID] = &copia
	r.detalles[f.ID] = dets
	return nil
}
func (r *fakeFacturaRepo) GetByID(id string) (*entity.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, nil
	}
	copia := *f
	return &copia, nil
}
func (r *fakeFacturaRepo) GetDetalles(facturaID string) ([]*entity.FacturaDetalle, error) {
	return r.detalles[facturaID], nil
}
func (r *fakeFacturaRepo) Update(f *entity.Factura) error {
	copia := *f
	r.facturas[f.ID] = &copia
	return nil
}
func (r *fakeFacturaRepo) ListByFabrica(string, int, int) ([]*entity.Factura, error) {
	return nil, nil
}
func (r *fakeFacturaRepo) SiguienteNumero(string) (int, error) {
	r.contador++
	return r.contador, nil
}

type fakePagoRepo struct {
	pagos map[string]*entity.Pago
}

func (r *fakePagoRepo) Create(p *entity.Pago) error {
	copia := *p
	r.pagos[p.ID] = &copia
	return nil
}
func (r *fakePagoRepo) GetByID(id string) (*entity.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}
func (r *fakePagoRepo) Update(p *entity.Pago) error {
	copia := *p
	r.pagos[p.ID] = &copia
	return nil
}
func (r *fakePagoRepo) ListByFactura(facturaID string) ([]*entity.Pago, error) {
	var out []*entity.Pago
	for _, p := range r.pagos {
		if p.FacturaID == facturaID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePagoRepo) ListByFabrica(string, int, int) ([]*entity.Pago, error) { return nil, nil }

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

const (
	fabricaA = "fab-a"
	fabricaB = "fab-b"
)

func nuevoEntorno() (*FacturaUseCase, *PagoUseCase, *fakeFacturaRepo) {
	clientes := &fakeClienteRepo{clientes: map[string]*entity.Cliente{
		"cli-1": {ID: "cli-1", FabricaID: fabricaA, Nombre: "Distribuidora Norte", NIT: "900111222"},
		"cli-2": {ID: "cli-2", FabricaID: fabricaB, Nombre: "Comercial Sur", NIT: "900333444"},
	}}
	productos := &fakeProductoRepo{productos: map[string]*entity.Producto{
		"prod-19": {ID: "prod-19", FabricaID: fabricaA, Nombre: "Tornillo 3in", Precio: decimal.NewFromInt(10000), IVA: decimal.NewFromInt(19)},
		"prod-5":  {ID: "prod-5", FabricaID: fabricaA, Nombre: "Harina 1kg", Precio: decimal.NewFromInt(5000), IVA: decimal.NewFromInt(5)},
		"prod-0":  {ID: "prod-0", FabricaID: fabricaA, Nombre: "Cuaderno", Precio: decimal.NewFromInt(3000), IVA: decimal.Zero},
	}}
	facturas := &fakeFacturaRepo{facturas: map[string]*entity.Factura{}, detalles: map[string][]*entity.FacturaDetalle{}}
	pagos := &fakePagoRepo{pagos: map[string]*entity.Pago{}}
	facturaUC := NewFacturaUseCase(facturas, clientes, productos)
	pagoUC := NewPagoUseCase(pagos, facturas)
	return facturaUC, pagoUC, facturas
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// Facturas
// ─────────────────────────────────────────────────────────────────────────────

func TestFactura_Create_CalculaTotalesPorLinea(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()

	// 2 × 10000 al 19% + 4 × 5000 al 5% = subtotal 40000, IVA 3800 + 1000
	resp, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{
		ClienteID: "cli-1",
		Lineas: []dto.FacturaLineaRequest{
			{ProductoID: "prod-19", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(10000)},
			{ProductoID: "prod-5", Cantidad: decimal.NewFromInt(4), PrecioUnitario: decimal.NewFromInt(5000)},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("40000").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, dec("4800").Equal(resp.IVA), "iva: %s", resp.IVA)
	assert.True(t, dec("44800").Equal(resp.Total), "total: %s", resp.Total)
	assert.True(t, resp.Saldo.Equal(resp.Total), "el saldo inicial es el total")
	assert.Equal(t, entity.FacturaEmitida, resp.Estado)
	assert.Len(t, resp.Detalles, 2)
}

func TestFactura_Create_PrecioCeroUsaElDelProducto(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()

	resp, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{
		ClienteID: "cli-1",
		Lineas: []dto.FacturaLineaRequest{
			{ProductoID: "prod-0", Cantidad: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("9000").Equal(resp.Subtotal))
	assert.True(t, decimal.Zero.Equal(resp.IVA))
	assert.True(t, dec("3000").Equal(resp.Detalles[0].PrecioUnitario))
}

func TestFactura_Create_ConsecutivoPorFabrica(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()

	lineas := []dto.FacturaLineaRequest{{ProductoID: "prod-0", Cantidad: decimal.NewFromInt(1)}}
	primera, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{ClienteID: "cli-1", Lineas: lineas})
	require.NoError(t, err)
	segunda, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{ClienteID: "cli-1", Lineas: lineas})
	require.NoError(t, err)

	assert.Equal(t, "1", primera.Numero)
	assert.Equal(t, "2", segunda.Numero)
	assert.Equal(t, "FV", primera.Prefijo, "prefijo por defecto")
}

func TestFactura_Create_ClienteDeOtraFabrica(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()

	_, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{
		ClienteID: "cli-2", // pertenece a fabricaB
		Lineas:    []dto.FacturaLineaRequest{{ProductoID: "prod-0", Cantidad: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFactura_Create_CantidadNoPositiva(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()

	_, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{
		ClienteID: "cli-1",
		Lineas:    []dto.FacturaLineaRequest{{ProductoID: "prod-0", Cantidad: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Pagos
// ─────────────────────────────────────────────────────────────────────────────

func emitirFactura(t *testing.T, facturaUC *FacturaUseCase) *dto.FacturaResponse {
	t.Helper()
	resp, err := facturaUC.Create(fabricaA, dto.CreateFacturaRequest{
		ClienteID: "cli-1",
		Lineas: []dto.FacturaLineaRequest{
			{ProductoID: "prod-0", Cantidad: decimal.NewFromInt(10)}, // total 30000, sin IVA
		},
	})
	require.NoError(t, err)
	return resp
}

func TestPago_AprobarDescuentaSaldoYLiquidaFactura(t *testing.T) {
	facturaUC, pagoUC, facturas := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	parcial, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(12000), Metodo: entity.PagoTransferencia, Referencia: "TRF-881",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PagoPendiente, parcial.Estado)

	// Mientras el pago está pendiente el saldo no cambia.
	almacenada, _ := facturas.GetByID(factura.ID)
	assert.True(t, dec("30000").Equal(almacenada.Saldo))

	aprobado, err := pagoUC.Aprobar(fabricaA, parcial.ID, "user-aprobador", true)
	require.NoError(t, err)
	assert.Equal(t, entity.PagoAprobado, aprobado.Estado)
	require.NotNil(t, aprobado.AprobadoPor)
	assert.Equal(t, "user-aprobador", *aprobado.AprobadoPor)

	almacenada, _ = facturas.GetByID(factura.ID)
	assert.True(t, dec("18000").Equal(almacenada.Saldo))
	assert.Equal(t, entity.FacturaEmitida, almacenada.Estado)

	resto, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(18000), Metodo: entity.PagoEfectivo,
	})
	require.NoError(t, err)
	_, err = pagoUC.Aprobar(fabricaA, resto.ID, "user-aprobador", true)
	require.NoError(t, err)

	almacenada, _ = facturas.GetByID(factura.ID)
	assert.True(t, almacenada.Saldo.IsZero())
	assert.Equal(t, entity.FacturaPagada, almacenada.Estado)
}

func TestPago_MontoMayorAlSaldo(t *testing.T) {
	facturaUC, pagoUC, _ := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	_, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(30001), Metodo: entity.PagoEfectivo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPago_RechazarNoAfectaElSaldo(t *testing.T) {
	facturaUC, pagoUC, facturas := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	pago, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(30000), Metodo: entity.PagoCheque, Referencia: "CHQ-12",
	})
	require.NoError(t, err)

	rechazado, err := pagoUC.Aprobar(fabricaA, pago.ID, "user-aprobador", false)
	require.NoError(t, err)
	assert.Equal(t, entity.PagoRechazado, rechazado.Estado)

	almacenada, _ := facturas.GetByID(factura.ID)
	assert.True(t, dec("30000").Equal(almacenada.Saldo))

	// Un pago ya resuelto no se puede volver a aprobar.
	_, err = pagoUC.Aprobar(fabricaA, pago.ID, "user-aprobador", true)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPago_MetodoInvalido(t *testing.T) {
	facturaUC, pagoUC, _ := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	_, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(1000), Metodo: "bitcoin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFactura_Anular_ConPagoAplicadoFalla(t *testing.T) {
	facturaUC, pagoUC, _ := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	pago, err := pagoUC.Create(fabricaA, dto.CreatePagoRequest{
		FacturaID: factura.ID, Monto: decimal.NewFromInt(5000), Metodo: entity.PagoEfectivo,
	})
	require.NoError(t, err)
	_, err = pagoUC.Aprobar(fabricaA, pago.ID, "user-aprobador", true)
	require.NoError(t, err)

	_, err = facturaUC.Anular(fabricaA, factura.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFactura_Anular_SinPagos(t *testing.T) {
	facturaUC, _, _ := nuevoEntorno()
	factura := emitirFactura(t, facturaUC)

	anulada, err := facturaUC.Anular(fabricaA, factura.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FacturaAnulada, anulada.Estado)
	assert.True(t, anulada.Saldo.IsZero())
}
