package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"dukamart/internal/caching"
	"dukamart/internal/config"
	"dukamart/internal/handlers"
	"dukamart/internal/importer"
	"dukamart/internal/jobs/background"
	"dukamart/internal/middleware"
	"dukamart/internal/repositories"
	"dukamart/internal/services"
	"dukamart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Import configuration (operator-editable TOML)
	importCfg := config.DefaultImportConfig()
	if cfgPath := os.Getenv("IMPORT_CONFIG"); cfgPath != "" {
		importCfg, err = config.LoadImportConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load import config: %v", err)
		}
	}

	// Classification rules: built-in tables, extended from file when configured
	rules := importer.DefaultRuleSet()
	if importCfg.Rules.File != "" {
		rules, err = importer.LoadRuleSet(importCfg.Rules.File)
		if err != nil {
			log.Fatalf("Failed to load classification rules: %v", err)
		}
	}

	// Create repositories
	brandRepo := repositories.NewBrandRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	variantRepo := repositories.NewVariantRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	couponRepo := repositories.NewCouponRepo(pool)
	reviewRepo := repositories.NewReviewRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	catalogSvc := services.NewCatalogService(productRepo, variantRepo, brandRepo, categoryRepo, cacheSvc)
	cartSvc := services.NewCartService(variantRepo, productRepo, inventoryRepo, cacheSvc)
	couponSvc := services.NewCouponService(couponRepo)
	orderSvc := services.NewOrderService(orderRepo, inventoryRepo, cartSvc, couponSvc)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo)
	customerSvc := services.NewCustomerService(customerRepo)

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL, productRepo)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: media bucket check failed: %v", err)
	}

	// Import pipeline
	imp := importer.NewImporter(brandRepo, categoryRepo, productRepo, variantRepo, rules, cacheSvc)

	// Create handlers
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc, reviewSvc)
	importHandlers := handlers.NewImportHandlers(imp, importCfg)
	cartHandlers := handlers.NewCartHandlers(cartSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	couponHandlers := handlers.NewCouponHandlers(couponSvc)
	reviewHandlers := handlers.NewReviewHandlers(reviewSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventoryRepo)
	mediaHandlers := handlers.NewMediaHandlers(mediaSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// JWT middleware configuration
	jwtConfig := echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.JWTCustomClaims)
		},
		SuccessHandler: middleware.AttachClaims,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Public storefront routes
	v1.GET("/products", catalogHandlers.ListProducts)
	v1.GET("/products/:slug", catalogHandlers.GetProductBySlug)
	v1.GET("/products/:productID/reviews", reviewHandlers.ListReviews)
	v1.GET("/brands", catalogHandlers.ListBrands)
	v1.GET("/categories", catalogHandlers.ListCategories)
	v1.POST("/customers", customerHandlers.Register)
	v1.POST("/coupons/validate", couponHandlers.ValidateCoupon)
	v1.POST("/payments/callback", orderHandlers.PaymentCallback)

	// Customer routes (require a verified token)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))

	protected.GET("/me", customerHandlers.GetProfile)
	protected.PUT("/me", customerHandlers.UpdateProfile)

	protected.GET("/cart", cartHandlers.GetCart)
	protected.POST("/cart/items", cartHandlers.AddItem)
	protected.PUT("/cart/items/:variantID", cartHandlers.UpdateItem)
	protected.DELETE("/cart/items/:variantID", cartHandlers.RemoveItem)
	protected.DELETE("/cart", cartHandlers.ClearCart)

	protected.POST("/checkout", orderHandlers.Checkout)
	protected.GET("/orders", orderHandlers.ListMyOrders)
	protected.GET("/orders/:id", orderHandlers.GetOrder)

	protected.POST("/products/:productID/reviews", reviewHandlers.AddReview)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(echojwt.WithConfig(jwtConfig))
	admin.Use(middleware.RequireAdmin())

	admin.POST("/products/import", importHandlers.ImportProducts)
	admin.GET("/products", catalogHandlers.AdminListProducts)
	admin.POST("/products", catalogHandlers.CreateProduct)
	admin.PUT("/products/:id", catalogHandlers.UpdateProduct)
	admin.DELETE("/products/:id", catalogHandlers.DeleteProduct)
	admin.POST("/products/:id/image", mediaHandlers.UploadProductImage)

	admin.GET("/inventory/low-stock", inventoryHandlers.ListLowStock)
	admin.GET("/inventory/:variantID", inventoryHandlers.GetStock)
	admin.PUT("/inventory/:variantID", inventoryHandlers.SetStock)

	admin.GET("/orders", orderHandlers.AdminListOrders)
	admin.PUT("/orders/:id/status", orderHandlers.UpdateStatus)

	admin.GET("/coupons", couponHandlers.ListCoupons)
	admin.POST("/coupons", couponHandlers.CreateCoupon)
	admin.DELETE("/coupons/:id", couponHandlers.DeactivateCoupon)

	admin.GET("/customers", customerHandlers.ListCustomers)
	admin.DELETE("/customers/:id", customerHandlers.DeactivateCustomer)

	admin.DELETE("/reviews/:id", reviewHandlers.DeleteReview)

	// Background jobs
	jobScheduler := background.NewJobScheduler(cacheSvc, inventoryRepo)
	if err := jobScheduler.Start(); err != nil {
		log.Printf("WARN: background scheduler failed to start: %v", err)
	}
	defer func() {
		if err := jobScheduler.Stop(); err != nil {
			log.Printf("WARN: background scheduler shutdown: %v", err)
		}
	}()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Dukamart server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
