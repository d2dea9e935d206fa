package main

import (
	"techstock/internal/handler"
	mid "techstock/internal/middleware"
	"techstock/internal/sku"
	"techstock/pkg/config"
	"techstock/pkg/database"
	"techstock/pkg/jwtutil"
	"techstock/pkg/logger"
	"techstock/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if present; environment variables win in deployed
	// environments.
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load("techstock")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting techstock",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// SKU source: external service when configured, in-process otherwise
	if appConfig.SKU.ServiceURL != "" {
		handler.SetSKUGenerator(sku.NewClient(appConfig.SKU.ServiceURL, appConfig.SKU.Timeout, log))
		log.Info("Using external SKU service", zap.String("url", appConfig.SKU.ServiceURL))
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Product catalog
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct, mid.RequireOwner)

	// Import ledger
	importAPI := e.Group("/api/imports", mid.AuthMiddleware)
	importAPI.GET("", handler.ListImports)
	importAPI.POST("", handler.CreateImport)
	importAPI.PUT("/:id", handler.UpdateImport)
	importAPI.DELETE("/:id", handler.DeleteImport, mid.RequireOwner)

	// Sales ledger
	saleAPI := e.Group("/api/sales", mid.AuthMiddleware)
	saleAPI.GET("", handler.ListSales)
	saleAPI.POST("", handler.CreateSale)
	saleAPI.DELETE("/:id", handler.DeleteSale, mid.RequireOwner)

	// Reports (recomputed on every read)
	reportAPI := e.Group("/api/reports", mid.AuthMiddleware)
	reportAPI.GET("/dashboard", handler.GetDashboard)
	reportAPI.GET("/sold-by-category", handler.GetSoldByCategory)
	reportAPI.GET("/stock-by-category", handler.GetStockByCategory)
	reportAPI.GET("/profit-over-time", handler.GetProfitOverTime)

	// Exports
	exportAPI := e.Group("/api/exports", mid.AuthMiddleware)
	exportAPI.GET("/products.csv", handler.ExportProductsCSV)
	exportAPI.GET("/sales.csv", handler.ExportSalesCSV)
	exportAPI.GET("/imports.csv", handler.ExportImportsCSV)
	exportAPI.GET("/sales/report", handler.ExportSalesReport)

	// Notes
	noteAPI := e.Group("/api/notes", mid.AuthMiddleware)
	noteAPI.GET("", handler.ListNotes)
	noteAPI.POST("", handler.CreateNote)
	noteAPI.PUT("/:id", handler.UpdateNote)
	noteAPI.DELETE("/:id", handler.DeleteNote)

	// Notifications
	notificationAPI := e.Group("/api/notifications", mid.AuthMiddleware)
	notificationAPI.GET("", handler.ListNotifications)
	notificationAPI.POST("/:id/read", handler.MarkNotificationRead)
	notificationAPI.POST("/read-all", handler.MarkAllNotificationsRead)

	// Company settings and team
	settingsAPI := e.Group("/api/settings", mid.AuthMiddleware)
	settingsAPI.GET("/company", handler.GetCompanySettings)
	settingsAPI.PUT("/company", handler.UpdateCompanyName, mid.RequireOwner)

	teamAPI := e.Group("/api/team", mid.AuthMiddleware)
	teamAPI.GET("", handler.ListTeamMembers)
	teamAPI.PUT("/:user_id/role", handler.UpdateUserRole, mid.RequireOwner)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
