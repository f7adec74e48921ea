package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/auth"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/handler"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/storage"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/config"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB
	mongoClient, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to mongodb")
	}
	db := mongoClient.Database(cfg.MongoDatabase)
	logger.Info("connected to mongodb")

	stores := storage.NewMongoAdapters(db)
	if err := stores.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to ensure indexes")
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	logger.Info("connected to redis")
	cache := storage.NewRedisAdapter(rdb)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	uploads, err := handler.NewUploads(cfg.UploadDir)
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare upload directory")
	}

	// Services
	authService := service.NewAuthService(stores.Users, stores.Sellers, stores.Admins, tokens, logger)
	userService := service.NewUserService(stores.Users, stores.Products, logger)
	productService := service.NewProductService(stores.Products, stores.Categories, cache, logger)
	cartService := service.NewCartService(stores.Carts, stores.Products, logger)
	orderService := service.NewOrderService(stores.Orders, stores.Users, logger)
	adminService := service.NewAdminService(stores.Users, stores.Sellers, stores.Admins, stores.Categories, cache, logger)
	analyticsService := service.NewAnalyticsService(stores.Analytics, stores.Orders, logger)

	// HTTP surface
	userHandler := handler.NewUserHandler(authService, userService, productService, uploads, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	sellerHandler := handler.NewSellerHandler(authService, productService, orderService, uploads, logger)
	adminHandler := handler.NewAdminHandler(authService, adminService, analyticsService, productService, logger)

	router := handler.NewRouter(userHandler, cartHandler, sellerHandler, adminHandler, tokens, uploads, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.WithError(err).Error("http server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http shutdown error")
	}

	rdb.Close()
	mongoClient.Disconnect(shutdownCtx)
	logger.Info("connections closed")
}
