package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/logger"
	"catalog-service/middleware"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg := LoadConfig()
	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	// --- 1. Initialization ---

	if err := database.Connect(); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	rdb := redis.NewClient(redisOpts)

	// --- 2. Dependency Injection (Wiring the layers together) ---

	productRepo := repository.NewProductRepository(database.DB)
	historyRepo := repository.NewUploadHistoryRepository(database.DB)

	importService := services.NewImportService(productRepo, nil)
	exportService := services.NewExportService(productRepo)
	catalogService := services.NewCatalogService(productRepo)

	requestValidator := controllers.NewRequestValidator()
	cache := controllers.NewCacheManager(rdb)

	productController := controllers.NewProductController(catalogService, cache, requestValidator)
	importHandler := controllers.NewImportHandler(importService, historyRepo, rdb, cache, requestValidator, cfg.StorageDir)
	exportHandler := controllers.NewExportHandler(exportService, requestValidator)
	historyHandler := controllers.NewHistoryHandler(historyRepo, requestValidator)

	// Background worker for async imports
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	services.StartImportWorker(workerCtx, rdb, importService, cfg.StorageDir)

	// --- 3. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-ID", "X-Admin-Username"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- 4. Route Registration ---

	routes.RegisterRoutes(r, productController, importHandler, exportHandler, historyHandler)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Catalog Service...")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Catalog Service stopped gracefully")
}
