package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/domain"
)

func TestValidarParche_Valido(t *testing.T) {
	parche, err := ValidarParche(ParcheCrudo{
		"reportes": {"ver": true, "acceso": false},
		"pagos":    {"aprobar": true},
	})
	require.NoError(t, err)

	assert.Len(t, parche, 2, "solo los módulos presentes en el parche")
	assert.True(t, parche.Permite(ModuloReportes, AccionVer))
	assert.False(t, parche.Permite(ModuloReportes, AccionAcceso))
	assert.True(t, parche.Permite(ModuloPagos, AccionAprobar))
}

func TestValidarParche_ModuloDesconocido(t *testing.T) {
	// "facturacion" no pertenece al conjunto cerrado (el módulo real es "facturas");
	// un typo no debe convertirse silenciosamente en un permiso nuevo.
	parche, err := ValidarParche(ParcheCrudo{
		"facturacion": {"ver": true},
	})
	assert.Nil(t, parche)
	assert.ErrorIs(t, err, domain.ErrPermisosInvalidos)
}

func TestValidarParche_AccionDesconocida(t *testing.T) {
	parche, err := ValidarParche(ParcheCrudo{
		"compras": {"exportar": true},
	})
	assert.Nil(t, parche)
	assert.ErrorIs(t, err, domain.ErrPermisosInvalidos)
}

func TestValidarParche_ValorNoBooleano(t *testing.T) {
	casos := []any{"true", 1, 0.5, nil, []any{true}}
	for _, v := range casos {
		parche, err := ValidarParche(ParcheCrudo{
			"compras": {"ver": v},
		})
		assert.Nil(t, parche, "valor %v no debe aceptarse", v)
		assert.ErrorIs(t, err, domain.ErrPermisosInvalidos)
	}
}

// La primera violación aborta todo: ningún módulo válido del mismo parche
// debe sobrevivir.
func TestValidarParche_TodoONada(t *testing.T) {
	parche, err := ValidarParche(ParcheCrudo{
		"reportes":  {"ver": true},
		"inventario": {"ver": true}, // desconocido
	})
	assert.Nil(t, parche)
	assert.ErrorIs(t, err, domain.ErrPermisosInvalidos)
}

func TestValidarParche_Vacio(t *testing.T) {
	parche, err := ValidarParche(ParcheCrudo{})
	require.NoError(t, err)
	assert.Empty(t, parche)
}
