package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/appointment"
	"github.com/casabella/casa-bella-api/internal/application/auth"
	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/application/checkout"
	"github.com/casabella/casa-bella-api/internal/application/inventory"
	"github.com/casabella/casa-bella-api/internal/application/sales"
	"github.com/casabella/casa-bella-api/internal/application/usecase"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	ServiceUC     *usecase.ServiceUseCase
	CategoryUC    *usecase.CategoryUseCase
	CartUC        *cart.CartUseCase
	CheckoutUC    *checkout.CheckoutUseCase
	AppointmentUC *appointment.AppointmentUseCase
	InventoryUC   *inventory.InventoryUseCase
	SalesUC       *sales.SalesUseCase
	SalePDFUC     *sales.PDFUseCase
	ReviewUC      *usecase.ReviewUseCase
	FavoriteUC    *usecase.FavoriteUseCase
	NotifUC       *usecase.NotificationUseCase
	JWTSecret     string
	LoginLimit    int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	staffOnly := RequireRole(entity.RoleEmpleado, entity.RoleAdmin)

	// Auth (público; login con rate limit por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", LoginRateLimiter(deps.LoginLimit), authHandler.Login)

	// Catálogo (lecturas públicas)
	productHandler := NewProductHandler(deps.ProductUC)
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/services", serviceHandler.List)
	api.Get("/services/:id", serviceHandler.GetByID)
	api.Get("/categories", categoryHandler.List)
	api.Get("/reviews", reviewHandler.Summary)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil y personal
	protected.Get("/auth/me", authHandler.Profile)
	protected.Post("/users/employees", adminOnly, authHandler.CreateEmployee)
	protected.Get("/users/employees", adminOnly, authHandler.ListEmployees)

	// Catálogo (escrituras, solo admin)
	protected.Post("/products", adminOnly, productHandler.Create)
	protected.Put("/products/:id", adminOnly, productHandler.Update)
	protected.Post("/services", adminOnly, serviceHandler.Create)
	protected.Put("/services/:id", adminOnly, serviceHandler.Update)
	protected.Post("/categories", adminOnly, categoryHandler.Create)

	// Carrito y checkout
	cartHandler := NewCartHandler(deps.CartUC)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:lineId", cartHandler.UpdateLine)
	protected.Delete("/cart/items/:lineId", cartHandler.RemoveLine)
	protected.Post("/carts/:id/abandon", adminOnly, cartHandler.Abandon)
	protected.Post("/checkout", checkoutHandler.Checkout)

	// Citas
	apptHandler := NewAppointmentHandler(deps.AppointmentUC)
	protected.Post("/appointments", apptHandler.Book)
	protected.Get("/appointments", apptHandler.ListMine)
	protected.Get("/appointments/all", adminOnly, apptHandler.ListByStatus)
	protected.Get("/appointments/:id", apptHandler.GetByID)
	protected.Put("/appointments/:id/assign", adminOnly, apptHandler.Assign)
	protected.Post("/appointments/:id/confirm", staffOnly, apptHandler.Confirm)
	protected.Post("/appointments/:id/complete", staffOnly, apptHandler.Complete)
	protected.Post("/appointments/:id/cancel", apptHandler.Cancel)

	// Inventario (solo admin)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	protected.Post("/inventory/movements", adminOnly, inventoryHandler.RegisterMovement)
	protected.Get("/inventory/movements", adminOnly, inventoryHandler.List)
	protected.Get("/inventory/low-stock", adminOnly, inventoryHandler.LowStock)

	// Ventas
	saleHandler := NewSaleHandler(deps.SalesUC, deps.SalePDFUC)
	protected.Get("/sales", adminOnly, saleHandler.List)
	protected.Get("/sales/mine", saleHandler.ListMine)
	protected.Get("/sales/:id", saleHandler.GetByID)
	protected.Get("/sales/:id/pdf", saleHandler.DownloadPDF)

	// Reseñas, guardados y notificaciones
	favoriteHandler := NewFavoriteHandler(deps.FavoriteUC)
	notifHandler := NewNotificationHandler(deps.NotifUC)
	protected.Post("/reviews", reviewHandler.Create)
	protected.Post("/favorites", favoriteHandler.Save)
	protected.Get("/favorites", favoriteHandler.ListMine)
	protected.Delete("/favorites", favoriteHandler.Remove)
	protected.Get("/notifications", notifHandler.ListMine)
	protected.Post("/notifications/:id/read", notifHandler.MarkRead)
}
