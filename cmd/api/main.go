package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/casabella/casa-bella-api/internal/application/appointment"
	"github.com/casabella/casa-bella-api/internal/application/auth"
	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/application/checkout"
	"github.com/casabella/casa-bella-api/internal/application/inventory"
	"github.com/casabella/casa-bella-api/internal/application/sales"
	"github.com/casabella/casa-bella-api/internal/application/usecase"
	"github.com/casabella/casa-bella-api/internal/infrastructure/cache"
	infrapdf "github.com/casabella/casa-bella-api/internal/infrastructure/pdf"
	"github.com/casabella/casa-bella-api/internal/infrastructure/postgres"
	httpRouter "github.com/casabella/casa-bella-api/internal/interfaces/http"
	"github.com/casabella/casa-bella-api/pkg/config"
	"github.com/casabella/casa-bella-api/pkg/logger"
	"github.com/casabella/casa-bella-api/pkg/metrics"
)

// Intentos de login permitidos por IP por minuto.
const loginAttemptsPerMinute = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo: Redis si está configurado, Noop en caso contrario.
	var catalogCache cache.CatalogCache = cache.NoopCatalogCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		catalogCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de catálogo habilitado")
	}

	salesMetrics := metrics.NewSalesMetrics()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, catalogCache, log)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, catalogCache, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	cartUC := cart.NewCartUseCase(txRunner, cartRepo, productRepo, serviceRepo, cart.Config{
		TaxRate:       cfg.Business.TaxRate,
		ServiceQtyCap: cfg.Business.ServiceQtyCap,
	})
	checkoutUC := checkout.NewCheckoutUseCase(txRunner, userRepo, serviceRepo, notifRepo, salesMetrics, log, cfg.Business.TaxRate)
	appointmentUC := appointment.NewAppointmentUseCase(
		txRunner, apptRepo, serviceRepo, userRepo, notifRepo,
		salesMetrics, log, cfg.Business.TaxRate,
	)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, productRepo, movRepo)
	salesUC := sales.NewSalesUseCase(saleRepo, productRepo, serviceRepo)

	// PDF: comprobante de venta descargable
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	salePDFUC := sales.NewPDFUseCase(saleRepo, userRepo, productRepo, serviceRepo, pdfGenerator)

	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo, serviceRepo)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, productRepo, serviceRepo)
	notifUC := usecase.NewNotificationUseCase(notifRepo)

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
		Title:    "Casa Bella API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		ServiceUC:     serviceUC,
		CategoryUC:    categoryUC,
		CartUC:        cartUC,
		CheckoutUC:    checkoutUC,
		AppointmentUC: appointmentUC,
		InventoryUC:   inventoryUC,
		SalesUC:       salesUC,
		SalePDFUC:     salePDFUC,
		ReviewUC:      reviewUC,
		FavoriteUC:    favoriteUC,
		NotifUC:       notifUC,
		JWTSecret:     cfg.JWT.Secret,
		LoginLimit:    loginAttemptsPerMinute,
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
}
