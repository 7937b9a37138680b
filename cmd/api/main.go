package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/gestor-fabricas/internal/application/auth"
	appauthz "github.com/tu-usuario/gestor-fabricas/internal/application/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/application/billing"
	"github.com/tu-usuario/gestor-fabricas/internal/application/compras"
	"github.com/tu-usuario/gestor-fabricas/internal/application/usecase"
	infrapdf "github.com/tu-usuario/gestor-fabricas/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestor-fabricas/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestor-fabricas/internal/interfaces/http"
	"github.com/tu-usuario/gestor-fabricas/pkg/config"
	"github.com/tu-usuario/gestor-fabricas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	fabricaRepo := postgres.NewFabricaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	ordenRepo := postgres.NewOrdenCompraRepository(pool)
	facturaRepo := postgres.NewFacturaRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, fabricaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	permisosSvc := appauthz.NewPermisosService(usuarioRepo)

	fabricaUC := usecase.NewFabricaUseCase(fabricaRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	reporteUC := usecase.NewReporteUseCase(reporteRepo)

	compraUC := compras.NewCompraUseCase(compraRepo, proveedorRepo, productoRepo)
	ordenUC := compras.NewOrdenUseCase(ordenRepo, proveedorRepo, productoRepo)

	facturaUC := billing.NewFacturaUseCase(facturaRepo, clienteRepo, productoRepo)
	pagoUC := billing.NewPagoUseCase(pagoRepo, facturaRepo)
	cotizacionUC := billing.NewCotizacionUseCase(cotizacionRepo, clienteRepo, productoRepo, facturaUC)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(
		facturaRepo, cotizacionRepo, fabricaRepo, clienteRepo, productoRepo, pdfGenerator,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor de Fábricas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PermisosSvc:  permisosSvc,
		UsuarioRepo:  usuarioRepo,
		FabricaUC:    fabricaUC,
		ClienteUC:    clienteUC,
		ProveedorUC:  proveedorUC,
		ProductoUC:   productoUC,
		CompraUC:     compraUC,
		OrdenUC:      ordenUC,
		FacturaUC:    facturaUC,
		PagoUC:       pagoUC,
		CotizacionUC: cotizacionUC,
		PDFUC:        pdfUC,
		ReporteUC:    reporteUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
