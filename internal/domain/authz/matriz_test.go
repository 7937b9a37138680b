package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Permite debe ser defensivo: matriz nil, módulo ausente o acción ausente se
// leen como denegado, nunca como pánico ni como concedido.
func TestMatriz_Permite_ClavesAusentes(t *testing.T) {
	var nula MatrizPermisos
	assert.False(t, nula.Permite(ModuloCompras, AccionVer), "matriz nil = denegado")

	incompleta := MatrizPermisos{
		ModuloCompras: {AccionVer: true},
	}
	assert.True(t, incompleta.Permite(ModuloCompras, AccionVer))
	assert.False(t, incompleta.Permite(ModuloCompras, AccionCrear), "acción ausente = denegado")
	assert.False(t, incompleta.Permite(ModuloPagos, AccionVer), "módulo ausente = denegado")
}

func TestMatriz_Normalizada_CompletaYNoMuta(t *testing.T) {
	parcial := MatrizPermisos{
		ModuloReportes: {AccionVer: true},
	}
	norm := parcial.Normalizada()

	require.Len(t, norm, len(Modulos()))
	for _, mod := range Modulos() {
		require.Len(t, norm[mod], len(Acciones()))
	}
	assert.True(t, norm.Permite(ModuloReportes, AccionVer))
	assert.False(t, norm.Permite(ModuloReportes, AccionCrear))

	// El original no se toca
	assert.Len(t, parcial, 1)
}

// Fusionar reemplaza el mapa de acciones COMPLETO de cada módulo del parche;
// los módulos ausentes del parche se conservan del estado previo.
func TestMatriz_Fusionar_ReemplazoPorModulo(t *testing.T) {
	base, err := PermisosPorDefecto(RolAprobador)
	require.NoError(t, err)

	parche := MatrizPermisos{
		ModuloPagos: {AccionVer: true}, // sin aprobar: el reemplazo lo borra
	}
	out := base.Fusionar(parche)

	assert.True(t, out.Permite(ModuloPagos, AccionVer))
	assert.False(t, out.Permite(ModuloPagos, AccionAprobar),
		"el parche reemplaza el módulo completo, no fusiona acción por acción")

	// Módulos no parcheados intactos
	assert.True(t, out.Permite(ModuloCompras, AccionVer))
	assert.True(t, out.Permite(ModuloCompras, AccionAprobar))
	assert.True(t, out.Permite(ModuloOrdenesCompra, AccionAprobar))

	// El receptor original no se modifica
	assert.True(t, base.Permite(ModuloPagos, AccionAprobar))
}

// Aplicar el mismo parche dos veces da el mismo resultado que aplicarlo una.
func TestMatriz_Fusionar_Idempotente(t *testing.T) {
	base, err := PermisosPorDefecto(RolComprador)
	require.NoError(t, err)

	parche := MatrizPermisos{
		ModuloReportes:  {AccionVer: true, AccionAcceso: true},
		ModuloProductos: {AccionVer: true, AccionEditar: true},
	}

	una := base.Fusionar(parche)
	dos := una.Fusionar(parche)
	assert.Equal(t, una, dos, "Fusionar debe ser idempotente")
}

// Los módulos ausentes del parche jamás se eliminan: la matriz resultante
// contiene siempre todos los módulos conocidos.
func TestMatriz_Fusionar_MatrizSiempreCompleta(t *testing.T) {
	base, err := PermisosPorDefecto(RolUsuario)
	require.NoError(t, err)

	out := base.Fusionar(MatrizPermisos{ModuloFacturas: {AccionVer: true}})
	require.Len(t, out, len(Modulos()))
	for _, mod := range Modulos() {
		_, ok := out[mod]
		assert.True(t, ok, "módulo %s debe seguir presente tras el parche", mod)
	}
}

func TestMatriz_Clonar_Independiente(t *testing.T) {
	orig, err := PermisosPorDefecto(RolComprador)
	require.NoError(t, err)

	cp := orig.Clonar()
	cp[ModuloCompras][AccionAprobar] = true

	assert.False(t, orig.Permite(ModuloCompras, AccionAprobar),
		"mutar el clon no debe afectar al original")
}
