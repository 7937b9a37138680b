package authz

// Alcance administrativo por fábrica (tenant). Es un eje independiente de la
// matriz de permisos: gobierna SOBRE QUIÉN puede actuar un administrador, no
// qué módulos puede usar.

// MismaFabrica informa si el actor y el objetivo pertenecen a la misma fábrica.
func MismaFabrica(fabricaActor, fabricaObjetivo string) bool {
	return fabricaActor == fabricaObjetivo
}

// IgnoraAlcanceFabrica informa si el rol opera sin restricción de fábrica.
// Solo SUPER_ADMIN puede actuar entre fábricas.
func IgnoraAlcanceFabrica(rol Rol) bool {
	return rol == RolSuperAdmin
}

// PuedeAdministrarPermisos informa si el rol puede mutar permisos o roles de
// otras cuentas. Los demás roles no tienen alcance administrativo alguno.
func PuedeAdministrarPermisos(rol Rol) bool {
	return rol == RolSuperAdmin || rol == RolAdminFabrica
}

// PuedeVerPermisosAjenos informa si el rol puede consultar la matriz de
// permisos de otra cuenta. Es un requisito de elevación fijo, separado de la
// matriz: ningún contenido de la matriz lo concede.
func PuedeVerPermisosAjenos(rol Rol) bool {
	return rol == RolSuperAdmin
}
