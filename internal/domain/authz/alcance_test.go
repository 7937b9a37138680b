package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlcance_MismaFabrica(t *testing.T) {
	assert.True(t, MismaFabrica("f1", "f1"))
	assert.False(t, MismaFabrica("f1", "f2"))
}

func TestAlcance_SoloSuperAdminIgnoraFabrica(t *testing.T) {
	assert.True(t, IgnoraAlcanceFabrica(RolSuperAdmin))
	for _, rol := range []Rol{RolAdminFabrica, RolComprador, RolAprobador, RolUsuario} {
		assert.False(t, IgnoraAlcanceFabrica(rol), "%s no debe cruzar fábricas", rol)
	}
}

func TestAlcance_AdministracionDePermisos(t *testing.T) {
	assert.True(t, PuedeAdministrarPermisos(RolSuperAdmin))
	assert.True(t, PuedeAdministrarPermisos(RolAdminFabrica))
	for _, rol := range []Rol{RolComprador, RolAprobador, RolUsuario} {
		assert.False(t, PuedeAdministrarPermisos(rol), "%s no debe administrar permisos", rol)
	}
}

// Ver permisos ajenos es una elevación fija: solo SUPER_ADMIN, sin importar
// el contenido de la matriz del actor.
func TestAlcance_VerPermisosAjenos(t *testing.T) {
	assert.True(t, PuedeVerPermisosAjenos(RolSuperAdmin))
	for _, rol := range []Rol{RolAdminFabrica, RolComprador, RolAprobador, RolUsuario} {
		assert.False(t, PuedeVerPermisosAjenos(rol))
	}
}
