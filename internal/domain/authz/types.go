// Package authz define el modelo de autorización del sistema: roles,
// módulos de negocio, acciones y la matriz de permisos por usuario.
//
// Los tres conjuntos (Rol, Modulo, Accion) son cerrados: cualquier valor
// fuera de ellos se rechaza en validación, nunca se acepta silenciosamente
// como un permiso nuevo.
package authz

// Rol identifica el rol de un usuario. Conjunto cerrado e inmutable.
type Rol string

const (
	RolSuperAdmin   Rol = "SUPER_ADMIN"
	RolAdminFabrica Rol = "ADMIN_FABRICA"
	RolComprador    Rol = "COMPRADOR"
	RolAprobador    Rol = "APROBADOR"
	RolUsuario      Rol = "USUARIO"
)

// roles en orden estable para iteración determinista.
var roles = []Rol{RolSuperAdmin, RolAdminFabrica, RolComprador, RolAprobador, RolUsuario}

// Roles devuelve una copia del conjunto cerrado de roles.
func Roles() []Rol {
	out := make([]Rol, len(roles))
	copy(out, roles)
	return out
}

// Valido informa si r pertenece al conjunto cerrado de roles.
func (r Rol) Valido() bool {
	switch r {
	case RolSuperAdmin, RolAdminFabrica, RolComprador, RolAprobador, RolUsuario:
		return true
	}
	return false
}

// Modulo identifica un área de negocio sobre la que se otorgan permisos.
type Modulo string

const (
	ModuloCompras       Modulo = "compras"
	ModuloOrdenesCompra Modulo = "ordenesCompra"
	ModuloFacturas      Modulo = "facturas"
	ModuloPagos         Modulo = "pagos"
	ModuloProductos     Modulo = "productos"
	ModuloProveedores   Modulo = "proveedores"
	ModuloReportes      Modulo = "reportes"
)

var modulos = []Modulo{
	ModuloCompras, ModuloOrdenesCompra, ModuloFacturas, ModuloPagos,
	ModuloProductos, ModuloProveedores, ModuloReportes,
}

// Modulos devuelve una copia del conjunto cerrado de módulos.
func Modulos() []Modulo {
	out := make([]Modulo, len(modulos))
	copy(out, modulos)
	return out
}

// Valido informa si m pertenece al conjunto cerrado de módulos.
func (m Modulo) Valido() bool {
	for _, known := range modulos {
		if m == known {
			return true
		}
	}
	return false
}

// Accion identifica una operación sobre un módulo.
type Accion string

const (
	AccionVer      Accion = "ver"
	AccionAcceso   Accion = "acceso"
	AccionCrear    Accion = "crear"
	AccionEditar   Accion = "editar"
	AccionEliminar Accion = "eliminar"
	AccionAprobar  Accion = "aprobar"
)

var acciones = []Accion{
	AccionVer, AccionAcceso, AccionCrear, AccionEditar, AccionEliminar, AccionAprobar,
}

// Acciones devuelve una copia del conjunto cerrado de acciones.
func Acciones() []Accion {
	out := make([]Accion, len(acciones))
	copy(out, acciones)
	return out
}

// Valida informa si a pertenece al conjunto cerrado de acciones.
func (a Accion) Valida() bool {
	for _, known := range acciones {
		if a == known {
			return true
		}
	}
	return false
}
