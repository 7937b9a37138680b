package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestor-fabricas/internal/application/auth"
	authzsvc "github.com/tu-usuario/gestor-fabricas/internal/application/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/application/billing"
	"github.com/tu-usuario/gestor-fabricas/internal/application/compras"
	"github.com/tu-usuario/gestor-fabricas/internal/application/usecase"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	PermisosSvc  *authzsvc.PermisosService
	UsuarioRepo  repository.UsuarioRepository
	FabricaUC    *usecase.FabricaUseCase
	ClienteUC    *usecase.ClienteUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	ProductoUC   *usecase.ProductoUseCase
	CompraUC     *compras.CompraUseCase
	OrdenUC      *compras.OrdenUseCase
	FacturaUC    *billing.FacturaUseCase
	PagoUC       *billing.PagoUseCase
	CotizacionUC *billing.CotizacionUseCase
	PDFUC        *billing.PDFUseCase
	ReporteUC    *usecase.ReporteUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada ruta de negocio lleva su propio
// RequirePermission(módulo, acción) evaluado contra la matriz persistida; las
// superficies sin módulo (fábricas, cuentas) usan RequireRol o el alcance
// interno del servicio de permisos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	loader := deps.UsuarioRepo

	// Auth (register y login públicos, logout requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Fábricas: solo administración global
	fabricas := protected.Group("/fabricas", RequireRol(loader, authz.RolSuperAdmin))
	fabricaHandler := NewFabricaHandler(deps.FabricaUC)
	fabricas.Post("/", fabricaHandler.Create)
	fabricas.Get("/", fabricaHandler.List)
	fabricas.Get("/:id", fabricaHandler.GetByID)

	// Cuentas y permisos: el alcance lo decide el servicio con el actor persistido
	usuarios := protected.Group("/usuarios")
	usuarioHandler := NewUsuarioHandler(deps.PermisosSvc, loader)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id/permisos", usuarioHandler.VerPermisos)
	usuarios.Put("/:id/permisos", usuarioHandler.ActualizarPermisos)

	// Clientes (pertenecen al módulo de facturación)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", RequirePermission(authz.ModuloFacturas, authz.AccionCrear, loader), clienteHandler.Create)
	clientes.Get("/", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), clienteHandler.List)
	clientes.Get("/:id", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), clienteHandler.GetByID)
	clientes.Put("/:id", RequirePermission(authz.ModuloFacturas, authz.AccionEditar, loader), clienteHandler.Update)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", RequirePermission(authz.ModuloProveedores, authz.AccionCrear, loader), proveedorHandler.Create)
	proveedores.Get("/", RequirePermission(authz.ModuloProveedores, authz.AccionVer, loader), proveedorHandler.List)
	proveedores.Get("/:id", RequirePermission(authz.ModuloProveedores, authz.AccionVer, loader), proveedorHandler.GetByID)
	proveedores.Put("/:id", RequirePermission(authz.ModuloProveedores, authz.AccionEditar, loader), proveedorHandler.Update)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", RequirePermission(authz.ModuloProductos, authz.AccionCrear, loader), productoHandler.Create)
	productos.Get("/", RequirePermission(authz.ModuloProductos, authz.AccionVer, loader), productoHandler.List)
	productos.Get("/:id", RequirePermission(authz.ModuloProductos, authz.AccionVer, loader), productoHandler.GetByID)
	productos.Put("/:id", RequirePermission(authz.ModuloProductos, authz.AccionEditar, loader), productoHandler.Update)

	// Compras
	comprasGroup := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC)
	comprasGroup.Post("/", RequirePermission(authz.ModuloCompras, authz.AccionCrear, loader), compraHandler.Create)
	comprasGroup.Get("/", RequirePermission(authz.ModuloCompras, authz.AccionVer, loader), compraHandler.List)
	comprasGroup.Get("/:id", RequirePermission(authz.ModuloCompras, authz.AccionVer, loader), compraHandler.GetByID)
	comprasGroup.Post("/:id/aprobar", RequirePermission(authz.ModuloCompras, authz.AccionAprobar, loader), compraHandler.Aprobar)
	comprasGroup.Post("/:id/rechazar", RequirePermission(authz.ModuloCompras, authz.AccionAprobar, loader), compraHandler.Rechazar)

	// Órdenes de compra
	ordenes := protected.Group("/ordenes")
	ordenHandler := NewOrdenHandler(deps.OrdenUC)
	ordenes.Post("/", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionCrear, loader), ordenHandler.Create)
	ordenes.Get("/", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionVer, loader), ordenHandler.List)
	ordenes.Get("/:id", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionVer, loader), ordenHandler.GetByID)
	ordenes.Post("/:id/enviar", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionEditar, loader), ordenHandler.Enviar)
	ordenes.Post("/:id/aprobar", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionAprobar, loader), ordenHandler.Aprobar)
	ordenes.Post("/:id/rechazar", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionAprobar, loader), ordenHandler.Rechazar)
	ordenes.Post("/:id/recibir", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionEditar, loader), ordenHandler.Recibir)
	ordenes.Post("/:id/cancelar", RequirePermission(authz.ModuloOrdenesCompra, authz.AccionEditar, loader), ordenHandler.Cancelar)

	// Facturas
	facturas := protected.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.FacturaUC, deps.PDFUC)
	pagoHandler := NewPagoHandler(deps.PagoUC)
	facturas.Post("/", RequirePermission(authz.ModuloFacturas, authz.AccionCrear, loader), facturaHandler.Create)
	facturas.Get("/", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), facturaHandler.List)
	facturas.Get("/:id", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), facturaHandler.GetByID)
	facturas.Get("/:id/pdf", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), facturaHandler.DescargarPDF)
	facturas.Get("/:id/pagos", RequirePermission(authz.ModuloPagos, authz.AccionVer, loader), pagoHandler.ListByFactura)
	facturas.Post("/:id/anular", RequirePermission(authz.ModuloFacturas, authz.AccionEliminar, loader), facturaHandler.Anular)

	// Pagos
	pagos := protected.Group("/pagos")
	pagos.Post("/", RequirePermission(authz.ModuloPagos, authz.AccionCrear, loader), pagoHandler.Create)
	pagos.Get("/", RequirePermission(authz.ModuloPagos, authz.AccionVer, loader), pagoHandler.List)
	pagos.Get("/:id", RequirePermission(authz.ModuloPagos, authz.AccionVer, loader), pagoHandler.GetByID)
	pagos.Post("/:id/aprobar", RequirePermission(authz.ModuloPagos, authz.AccionAprobar, loader), pagoHandler.Aprobar)
	pagos.Post("/:id/rechazar", RequirePermission(authz.ModuloPagos, authz.AccionAprobar, loader), pagoHandler.Rechazar)

	// Cotizaciones (superficie comercial del módulo de facturación)
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC, deps.PDFUC)
	cotizaciones.Post("/", RequirePermission(authz.ModuloFacturas, authz.AccionCrear, loader), cotizacionHandler.Create)
	cotizaciones.Get("/", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), cotizacionHandler.List)
	cotizaciones.Get("/:id", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), cotizacionHandler.GetByID)
	cotizaciones.Get("/:id/pdf", RequirePermission(authz.ModuloFacturas, authz.AccionVer, loader), cotizacionHandler.DescargarPDF)
	cotizaciones.Post("/:id/enviar", RequirePermission(authz.ModuloFacturas, authz.AccionEditar, loader), cotizacionHandler.Enviar)
	cotizaciones.Post("/:id/aceptar", RequirePermission(authz.ModuloFacturas, authz.AccionEditar, loader), cotizacionHandler.Aceptar)
	cotizaciones.Post("/:id/facturar", RequirePermission(authz.ModuloFacturas, authz.AccionCrear, loader), cotizacionHandler.Facturar)

	// Reportes
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes.Get("/resumen", RequirePermission(authz.ModuloReportes, authz.AccionVer, loader), reporteHandler.Resumen)
}
