package authz

import "github.com/tu-usuario/gestor-fabricas/internal/domain"

// PermisosPorDefecto devuelve la matriz inicial de permisos para un rol.
// Es una función pura y total sobre el conjunto cerrado de roles; para
// cualquier otro valor devuelve domain.ErrRolInvalido.
//
// Se ejecuta una sola vez, al crear la cuenta. En tiempo de petición las
// decisiones se toman contra la matriz persistida del usuario, nunca contra
// esta tabla.
//
// Tabla de política:
//   - SUPER_ADMIN y ADMIN_FABRICA: todo en true (bit a bit idénticas; la
//     distinción entre ambos la aplica el alcance por fábrica, no la matriz).
//   - COMPRADOR: compras y ordenesCompra {ver, crear, editar};
//     productos y proveedores {ver}.
//   - APROBADOR: compras, ordenesCompra y pagos {ver, aprobar}.
//   - USUARIO: todo en false.
func PermisosPorDefecto(rol Rol) (MatrizPermisos, error) {
	switch rol {
	case RolSuperAdmin, RolAdminFabrica:
		return matrizUniforme(true), nil

	case RolComprador:
		m := matrizUniforme(false)
		for _, mod := range []Modulo{ModuloCompras, ModuloOrdenesCompra} {
			m[mod][AccionVer] = true
			m[mod][AccionCrear] = true
			m[mod][AccionEditar] = true
		}
		m[ModuloProductos][AccionVer] = true
		m[ModuloProveedores][AccionVer] = true
		return m, nil

	case RolAprobador:
		m := matrizUniforme(false)
		for _, mod := range []Modulo{ModuloCompras, ModuloOrdenesCompra, ModuloPagos} {
			m[mod][AccionVer] = true
			m[mod][AccionAprobar] = true
		}
		return m, nil

	case RolUsuario:
		return matrizUniforme(false), nil
	}
	return nil, domain.ErrRolInvalido
}
