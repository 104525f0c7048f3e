package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/HtTelekom/ecommerce/docs"
	"github.com/HtTelekom/ecommerce/internal/api/handler"
	"github.com/HtTelekom/ecommerce/internal/api/middleware"
	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
	"github.com/HtTelekom/ecommerce/internal/core/service"
	mongodb "github.com/HtTelekom/ecommerce/internal/infrastructure/db/mongo"
	redisdb "github.com/HtTelekom/ecommerce/internal/infrastructure/db/redis"
)

// Options carries the router's external dependencies.
type Options struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	TokenTTL time.Duration // 0 = default
	Audit    ports.AuditRecorder
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("ecommerce"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	productRepo := mongodb.NewProductRepository(opts.Mongo)
	categoryRepo := mongodb.NewCategoryRepository(opts.Mongo)
	orderRepo := mongodb.NewOrderRepository(opts.Mongo)
	cartRepo := mongodb.NewCartRepository(opts.Mongo)
	wishlistRepo := mongodb.NewWishlistRepository(opts.Mongo)
	contactRepo := mongodb.NewContactRepository(opts.Mongo)
	sessionStore := redisdb.NewSessionStore(opts.Redis)

	// --- Services ---
	tokens := service.NewTokenAuthenticator(sessionStore, opts.TokenTTL, opts.Log)
	authService := service.NewAuthService(userRepo, tokens, opts.Audit, opts.Log)
	userAdminService := service.NewUserAdminService(userRepo, tokens, opts.Log)
	productService := service.NewProductService(productRepo, categoryRepo, opts.Log)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, opts.Log)
	cartService := service.NewCartService(cartRepo, productRepo, opts.Log)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, opts.Log)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	contactService := service.NewContactService(contactRepo, opts.Log)
	dashboardService := service.NewDashboardService(orderRepo, productRepo, userRepo, opts.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userAdminHandler := handler.NewUserAdminHandler(userAdminService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	contactHandler := handler.NewContactHandler(contactService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	authRequired := middleware.Auth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	// --- Public routes ---
	e.GET("/", healthHandler.Liveness)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	public := e.Group("/public")
	public.GET("/products/featured", productHandler.Featured)
	public.GET("/products/popular", productHandler.Popular)
	public.GET("/categories", categoryHandler.PublicList)
	public.POST("/contact", contactHandler.Submit)

	// --- Authenticated routes (any role) ---
	auth := e.Group("/auth", authRequired)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/logout-all", authHandler.LogoutAll)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/change-password", authHandler.ChangePassword)

	products := e.Group("/products", authRequired)
	products.GET("", productHandler.Storefront)
	products.GET("/search/query", productHandler.Search)
	products.GET("/:id", productHandler.Get)

	categories := e.Group("/categories", authRequired)
	categories.GET("", categoryHandler.PublicList)
	categories.GET("/:id", categoryHandler.Get)
	categories.GET("/:id/products", categoryHandler.Products)

	// --- Customer routes ---
	profile := e.Group("/profile", authRequired, customerOnly)
	profile.GET("", authHandler.Me)
	profile.PUT("", authHandler.UpdateProfile)
	profile.POST("/avatar", authHandler.UploadAvatar)

	cart := e.Group("/cart", authRequired, customerOnly)
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/add", cartHandler.Add)
	cart.PUT("/:id", cartHandler.UpdateQuantity)
	cart.DELETE("/:id", cartHandler.Remove)

	orders := e.Group("/orders", authRequired, customerOnly)
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	wishlist := e.Group("/wishlist", authRequired, customerOnly)
	wishlist.GET("", wishlistHandler.List)
	wishlist.POST("/add", wishlistHandler.Add)
	wishlist.DELETE("/:id", wishlistHandler.Remove)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/dashboard", dashboardHandler.Stats)

	admin.GET("/users", userAdminHandler.List)
	admin.POST("/users", userAdminHandler.Create)
	admin.GET("/users/:id", userAdminHandler.Get)
	admin.PUT("/users/:id", userAdminHandler.Update)
	admin.DELETE("/users/:id", userAdminHandler.Delete)
	admin.POST("/users/:id/toggle-status", userAdminHandler.ToggleStatus)

	admin.GET("/products", productHandler.List)
	admin.POST("/products", productHandler.Create)
	admin.POST("/products/bulk-update", productHandler.BulkUpdate)
	admin.GET("/products/:id", productHandler.Get)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.POST("/products/:id/toggle-status", productHandler.ToggleStatus)

	admin.GET("/categories", categoryHandler.List)
	admin.POST("/categories", categoryHandler.Create)
	admin.GET("/categories/tree/structure", categoryHandler.Tree)
	admin.GET("/categories/select/options", categoryHandler.SelectOptions)
	admin.POST("/categories/sort-order/update", categoryHandler.UpdateSortOrder)
	admin.GET("/categories/:id", categoryHandler.Get)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	admin.GET("/orders", orderHandler.AdminList)
	admin.GET("/orders/:id", orderHandler.AdminGet)
	admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", orderHandler.AdminDelete)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
