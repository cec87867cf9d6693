package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-marketplace/assistant"
	"hotel-marketplace/config"
	"hotel-marketplace/controllers"
	"hotel-marketplace/middleware"
	"hotel-marketplace/routes"
	"hotel-marketplace/services"
	"hotel-marketplace/storage"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}
	cfg := config.Load()

	logger, err := config.InitLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.Connect(cfg)
	if err != nil {
		zap.L().Fatal("database connect failed", zap.Error(err))
	}
	zap.L().Info("database connected and migrated")

	var objects storage.ObjectStore
	if minioStore, err := config.NewObjectStore(cfg.MinIO); err != nil {
		zap.L().Warn("object storage unavailable; falling back to in-memory store", zap.Error(err))
		objects = storage.NewMemoryStore()
	} else {
		objects = minioStore
	}

	cache := middleware.NewResponseCache(config.NewRedisClient(cfg.Redis), cfg.Redis.CacheTTL, cfg.Redis.Prefix)

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	authService.AdminSignup = cfg.AdminSignup
	searchService := services.NewSearchService(db)
	listingService := services.NewListingService(db, objects)
	auditService := services.NewAuditService(db, cfg.AuditStrict)
	geoService := services.NewGeoService(cfg.AMap.Key, cfg.AMap.BaseURL, cfg.AMap.Timeout)
	if cache.Client != nil {
		listingService.Cache = cache
		auditService.Cache = cache
	}
	if cfg.Rabbit.URL != "" {
		auditService.Events = services.NewRabbitPublisher(cfg.Rabbit.URL, cfg.Rabbit.Queue)
		zap.L().Info("audit events enabled", zap.String("queue", cfg.Rabbit.Queue))
	}

	llm := assistant.NewGeminiCompleter(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	defer func() { _ = llm.Close() }()
	resolver := assistant.NewResolver(assistant.NewGormStore(db), llm)

	router := routes.SetupRouter(routes.Deps{
		Auth:        controllers.NewAuthController(authService),
		Hotel:       controllers.NewHotelController(searchService),
		Admin:       controllers.NewAdminController(auditService),
		Merchant:    controllers.NewMerchantController(listingService),
		Upload:      controllers.NewUploadController(objects, cfg.MinIO.ImageBucket, cfg.MinIO.VideoBucket),
		Media:       controllers.NewMediaController(objects),
		Assistant:   controllers.NewAssistantController(resolver),
		Geo:         controllers.NewGeoController(geoService),
		JWTSecret:   cfg.JWTSecret,
		CorsOrigins: cfg.CorsOrigins,
		Cache:       cache,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// media streaming keeps connections open longer than JSON calls
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zap.L().Info("server stopped")
}
