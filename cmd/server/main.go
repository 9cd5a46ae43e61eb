package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taxoapp/taxo/internal/auth"
	"github.com/taxoapp/taxo/internal/config"
	"github.com/taxoapp/taxo/internal/database"
	"github.com/taxoapp/taxo/internal/handlers"
	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/middleware"
	"github.com/taxoapp/taxo/internal/repository"
	"github.com/taxoapp/taxo/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Taxo API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	// Apply schema; a failure here is fatal
	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply database schema", err, nil)
	}

	log.Info("Database ready", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	accountService := services.NewAccountService(userRepo, log)
	propertyService := services.NewPropertyService(propertyRepo, log)
	taxService := services.NewTaxService(propertyRepo, paymentRepo, log)

	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService, tokenIssuer)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	taxHandler := handlers.NewTaxHandler(taxService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Everything below requires a session identity
		properties := v1.Group("/properties")
		properties.Use(middleware.Auth(tokenIssuer))
		{
			properties.POST("", propertyHandler.Register)
			properties.GET("", propertyHandler.List)
			properties.GET("/:propertyID/tax", taxHandler.Estimate)
			properties.POST("/:propertyID/payments", taxHandler.RecordPayment)
			properties.GET("/:propertyID/payments", taxHandler.PaymentHistory)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
