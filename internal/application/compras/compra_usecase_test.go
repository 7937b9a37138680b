package compras

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

type fakeProveedorRepo struct {
	proveedores map[string]*entity.Proveedor
}

func (r *fakeProveedorRepo) Create(p *entity.Proveedor) error { r.proveedores[p.ID] = p; return nil }
func (r *fakeProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return r.proveedores[id], nil
}
func (r *fakeProveedorRepo) GetByFabricaYNIT(string, string) (*entity.Proveedor, error) {
	return nil, nil
}
func (r *fakeProveedorRepo) Update(p *entity.Proveedor) error { r.proveedores[p.ID] = p; return nil }
func (r *fakeProveedorRepo) ListByFabrica(string, int, int) ([]*entity.Proveedor, error) {
	return nil, nil
}
func (r *fakeProveedorRepo) Delete(id string) error { delete(r.proveedores, id); return nil }

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

type fakeCompraRepo struct {
	compras  map[string]*entity.Compra
	detalles map[string][]*entity.CompraDetalle
}

func (r *fakeCompraRepo) CreateConDetalles(c *entity.Compra, dets []*entity.CompraDetalle) error {
	copia := *c
	r.compras[c.ID] = &copia
	r.detalles[c.ID] = dets
	return nil
}
func (r *fakeCompraRepo) GetByID(id string) (*entity.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}
func (r *fakeCompraRepo) GetDetalles(compraID string) ([]*entity.CompraDetalle, error) {
	return r.detalles[compraID], nil
}
func (r *fakeCompraRepo) Update(c *entity.Compra) error {
	copia := *c
	r.compras[c.ID] = &copia
	return nil
}
func (r *fakeCompraRepo) ListByFabrica(string, int, int) ([]*entity.Compra, error) { return nil, nil }
func (r *fakeCompraRepo) ListByEstado(fabricaID, estado string, _, _ int) ([]*entity.Compra, error) {
	var out []*entity.Compra
	for _, c := range r.compras {
		if c.FabricaID == fabricaID && c.Estado == estado {
			out = append(out, c)
		}
	}
	return out, nil
}

const fabricaA = "fab-a"

func nuevoEntorno() (*CompraUseCase, *fakeCompraRepo) {
	proveedores := &fakeProveedorRepo{proveedores: map[string]*entity.Proveedor{
		"prov-1": {ID: "prov-1", FabricaID: fabricaA, Nombre: "Aceros del Valle", NIT: "800555666"},
		"prov-b": {ID: "prov-b", FabricaID: "fab-b", Nombre: "Insumos Sur", NIT: "800777888"},
	}}
	productos := &fakeProductoRepo{productos: map[string]*entity.Producto{
		"prod-19": {ID: "prod-19", FabricaID: fabricaA, Nombre: "Lámina calibre 18", IVA: decimal.NewFromInt(19)},
	}}
	compras := &fakeCompraRepo{compras: map[string]*entity.Compra{}, detalles: map[string][]*entity.CompraDetalle{}}
	return NewCompraUseCase(compras, proveedores, productos), compras
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func crearCompra(t *testing.T, uc *CompraUseCase) *dto.CompraResponse {
	t.Helper()
	resp, err := uc.Create(fabricaA, dto.CreateCompraRequest{
		ProveedorID: "prov-1",
		Numero:      "FC-1001",
		Lineas: []dto.CompraLineaRequest{
			{ProductoID: "prod-19", Cantidad: decimal.NewFromInt(5), PrecioUnitario: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestCompra_Create_NacePendienteConTotales(t *testing.T) {
	uc, _ := nuevoEntorno()

	compra := crearCompra(t, uc)
	assert.Equal(t, entity.CompraPendiente, compra.Estado)
	assert.True(t, dec("100000").Equal(compra.Subtotal), "subtotal: %s", compra.Subtotal)
	assert.True(t, dec("19000").Equal(compra.IVA), "iva: %s", compra.IVA)
	assert.True(t, dec("119000").Equal(compra.Total), "total: %s", compra.Total)
	assert.Nil(t, compra.AprobadaPor)
}

func TestCompra_Create_ProveedorDeOtraFabrica(t *testing.T) {
	uc, _ := nuevoEntorno()

	_, err := uc.Create(fabricaA, dto.CreateCompraRequest{
		ProveedorID: "prov-b",
		Numero:      "FC-1002",
		Lineas: []dto.CompraLineaRequest{
			{ProductoID: "prod-19", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompra_Aprobar_RegistraQuienDecide(t *testing.T) {
	uc, repo := nuevoEntorno()
	compra := crearCompra(t, uc)

	aprobada, err := uc.Aprobar(fabricaA, compra.ID, "user-aprobador", true)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraAprobada, aprobada.Estado)
	require.NotNil(t, aprobada.AprobadaPor)
	assert.Equal(t, "user-aprobador", *aprobada.AprobadaPor)

	// Una compra ya resuelta no admite una segunda decisión.
	_, err = uc.Aprobar(fabricaA, compra.ID, "user-aprobador", false)
	assert.ErrorIs(t, err, domain.ErrConflict)

	almacenada, _ := repo.GetByID(compra.ID)
	assert.Equal(t, entity.CompraAprobada, almacenada.Estado)
}

func TestCompra_Rechazar(t *testing.T) {
	uc, _ := nuevoEntorno()
	compra := crearCompra(t, uc)

	rechazada, err := uc.Aprobar(fabricaA, compra.ID, "user-aprobador", false)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRechazada, rechazada.Estado)
}

func TestCompra_Aprobar_DeOtraFabrica(t *testing.T) {
	uc, _ := nuevoEntorno()
	compra := crearCompra(t, uc)

	_, err := uc.Aprobar("fab-b", compra.ID, "user-aprobador", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
