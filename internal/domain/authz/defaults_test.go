package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/domain"
)

// Toda matriz por defecto debe contener todos los módulos y todas las
// acciones, sin claves ausentes.
func TestPermisosPorDefecto_MatrizCompleta(t *testing.T) {
	for _, rol := range Roles() {
		m, err := PermisosPorDefecto(rol)
		require.NoError(t, err, "rol %s debe tener defaults", rol)

		require.Len(t, m, len(Modulos()), "rol %s: faltan módulos", rol)
		for _, mod := range Modulos() {
			set, ok := m[mod]
			require.True(t, ok, "rol %s: módulo %s ausente", rol, mod)
			require.Len(t, set, len(Acciones()), "rol %s, módulo %s: faltan acciones", rol, mod)
		}
	}
}

func TestPermisosPorDefecto_SuperAdminYAdminFabricaIdenticos(t *testing.T) {
	super, err := PermisosPorDefecto(RolSuperAdmin)
	require.NoError(t, err)
	admin, err := PermisosPorDefecto(RolAdminFabrica)
	require.NoError(t, err)

	assert.Equal(t, super, admin,
		"SUPER_ADMIN y ADMIN_FABRICA deben ser bit a bit idénticos; la diferencia es el alcance por fábrica")

	for _, mod := range Modulos() {
		for _, acc := range Acciones() {
			assert.True(t, super.Permite(mod, acc), "SUPER_ADMIN debe tener %s.%s", mod, acc)
		}
	}
}

func TestPermisosPorDefecto_UsuarioTodoDenegado(t *testing.T) {
	m, err := PermisosPorDefecto(RolUsuario)
	require.NoError(t, err)

	for _, mod := range Modulos() {
		for _, acc := range Acciones() {
			assert.False(t, m.Permite(mod, acc), "USUARIO no debe tener %s.%s", mod, acc)
		}
	}
}

func TestPermisosPorDefecto_TablaComprador(t *testing.T) {
	m, err := PermisosPorDefecto(RolComprador)
	require.NoError(t, err)

	// Concedido
	assert.True(t, m.Permite(ModuloCompras, AccionVer))
	assert.True(t, m.Permite(ModuloCompras, AccionCrear))
	assert.True(t, m.Permite(ModuloCompras, AccionEditar))
	assert.True(t, m.Permite(ModuloOrdenesCompra, AccionVer))
	assert.True(t, m.Permite(ModuloOrdenesCompra, AccionCrear))
	assert.True(t, m.Permite(ModuloOrdenesCompra, AccionEditar))
	assert.True(t, m.Permite(ModuloProductos, AccionVer))
	assert.True(t, m.Permite(ModuloProveedores, AccionVer))

	// Denegado
	assert.False(t, m.Permite(ModuloCompras, AccionAprobar))
	assert.False(t, m.Permite(ModuloCompras, AccionEliminar))
	assert.False(t, m.Permite(ModuloProductos, AccionEditar),
		"COMPRADOR solo puede ver productos, no editarlos")
	assert.False(t, m.Permite(ModuloPagos, AccionVer))
	assert.False(t, m.Permite(ModuloReportes, AccionVer))
	assert.False(t, m.Permite(ModuloFacturas, AccionVer))
}

func TestPermisosPorDefecto_TablaAprobador(t *testing.T) {
	m, err := PermisosPorDefecto(RolAprobador)
	require.NoError(t, err)

	for _, mod := range []Modulo{ModuloCompras, ModuloOrdenesCompra, ModuloPagos} {
		assert.True(t, m.Permite(mod, AccionVer), "APROBADOR debe ver %s", mod)
		assert.True(t, m.Permite(mod, AccionAprobar), "APROBADOR debe aprobar %s", mod)
	}

	assert.False(t, m.Permite(ModuloPagos, AccionEditar),
		"APROBADOR aprueba pagos pero no los edita")
	assert.False(t, m.Permite(ModuloCompras, AccionCrear))
	assert.False(t, m.Permite(ModuloProductos, AccionVer))
	assert.False(t, m.Permite(ModuloReportes, AccionVer))
}

func TestPermisosPorDefecto_RolDesconocido(t *testing.T) {
	m, err := PermisosPorDefecto(Rol("GERENTE"))
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrRolInvalido)

	m, err = PermisosPorDefecto(Rol(""))
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrRolInvalido)
}
