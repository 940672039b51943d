package main

import (
	"fmt"
	"os"

	"github.com/MateusMunaro/financial-manager/internal/config"
	"github.com/MateusMunaro/financial-manager/internal/database"
	"github.com/MateusMunaro/financial-manager/internal/logger"
	"github.com/MateusMunaro/financial-manager/internal/ratelimit"
	"github.com/MateusMunaro/financial-manager/internal/server"
	"github.com/MateusMunaro/financial-manager/internal/validator"

	_ "github.com/MateusMunaro/financial-manager/internal/docs" // Import swagger docs
)

// @title           Financial Manager API
// @version         1.0
// @description     Personal finance backend: expenses, recurring expenses, payment methods, investments and a dashboard overview.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	limiter := ratelimit.New(
		ratelimit.WithInterval(appConfig.RateLimitInterval),
		ratelimit.WithTTL(appConfig.RateLimitTTL),
	)

	router := server.NewRouter(dbManager.DB(), appConfig, limiter)

	log.Infof("Starting financial manager API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
