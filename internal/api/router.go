package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aslamtailor/storefront-api/internal/api/handler"
	"github.com/aslamtailor/storefront-api/internal/api/middleware"
	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/service"
	"github.com/aslamtailor/storefront-api/internal/infrastructure/config"
	mongorepo "github.com/aslamtailor/storefront-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/aslamtailor/storefront-api/internal/infrastructure/db/redis"
	"github.com/aslamtailor/storefront-api/internal/infrastructure/shiprocket"
	"github.com/aslamtailor/storefront-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Infrastructure ---
	orderRepo := mongorepo.NewOrderRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	customerRepo := mongorepo.NewCustomerRepository(db)
	authRepo := mongorepo.NewAuthRepository(db)
	deduper := redisinfra.NewRelayDeduper(rdb)
	gateway := shiprocket.New(shiprocket.Config{
		BaseURL:        cfg.Shiprocket.BaseURL,
		Email:          cfg.Shiprocket.Email,
		Password:       cfg.Shiprocket.Password,
		PickupLocation: cfg.Shiprocket.PickupLocation,
	}, log)

	// --- Services ---
	shippingService := service.NewShippingService(gateway, deduper, log)
	orderService := service.NewOrderService(orderRepo, log)
	catalogService := service.NewCatalogService(productRepo, customerRepo, log)
	dashboardService := service.NewDashboardService(orderRepo, productRepo, customerRepo, 30*time.Second, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	shippingHandler := handler.NewShippingHandler(shippingService)
	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authGuard := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleStaff)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Legacy relay routes, consumed directly by the storefront checkout ---
	e.POST("/login-shiprocket", shippingHandler.Login)
	e.POST("/create-order", shippingHandler.CreateOrder)
	e.POST("/check-courier", shippingHandler.CheckCourier)

	// --- Auth routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Storefront routes (public; the checkout page has no JWT) ---
	v1.GET("/products", catalogHandler.ListProducts)
	v1.GET("/products/:id", catalogHandler.GetProduct)
	v1.POST("/orders", orderHandler.Create)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.POST("/customers", catalogHandler.CreateCustomer)

	// --- Back-office routes (JWT required) ---
	office := v1.Group("", authGuard, staffOnly)
	office.GET("/dashboard/metrics", dashboardHandler.Metrics)
	office.GET("/orders", orderHandler.List)
	office.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	office.GET("/customers", catalogHandler.ListCustomers)
	office.GET("/customers/:id", catalogHandler.GetCustomer)

	// Catalog writes are admin only.
	admin := v1.Group("", authGuard, adminOnly)
	admin.POST("/products", catalogHandler.CreateProduct)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	return e
}
