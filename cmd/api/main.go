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

	"github.com/harentsoaR/safebridge-api/internal/config"
	"github.com/harentsoaR/safebridge-api/internal/handlers"
	"github.com/harentsoaR/safebridge-api/internal/logger"
	"github.com/harentsoaR/safebridge-api/internal/services"
	"github.com/harentsoaR/safebridge-api/internal/storage"
	"github.com/harentsoaR/safebridge-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Errorf("Failed to close storage: %v", err)
		}
	}()

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := services.SeedDemoData(ctx, store, logger, time.Now())
		cancel()
		if err != nil {
			logger.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	requestSvc := services.NewRequestService(store, logger, services.RequestOptions{
		DefaultLocation: cfg.DefaultRequestLocation,
		AutoTriage:      cfg.AutoTriage,
	})
	identitySvc := services.NewIdentityService(store, utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), logger)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set, issuing mock tokens")
	}

	gin.SetMode(cfg.GinMode)
	h := handlers.NewHandler(requestSvc, identitySvc, store, logger)
	router := handlers.NewRouter(h, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server running on port %s (storage: %s)", cfg.Port, cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}
	logger.Info("Server stopped")
}

func openStore(cfg *config.Config, logger *zap.SugaredLogger) (storage.Store, error) {
	if cfg.StorageDriver != config.StorageMongo {
		logger.Infof("Using file storage in %s", cfg.DataDir)
		return storage.NewFileStore(cfg.DataDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}
	logger.Infof("Successfully connected to MongoDB database %s", cfg.MongoDatabase)
	return store, nil
}
