package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/blazinaj/roboconfig-sub000/cmd"
	"github.com/blazinaj/roboconfig-sub000/internal/core/container"
	"github.com/blazinaj/roboconfig-sub000/internal/core/logger"
	"github.com/blazinaj/roboconfig-sub000/internal/core/routes"
	"github.com/blazinaj/roboconfig-sub000/internal/database"
	"github.com/blazinaj/roboconfig-sub000/internal/middleware"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	if len(os.Args) > 1 {
		cmd.Execute(ctx)
		os.Exit(0)
	}
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	if os.Getenv("JWT_SECRET") == "" {
		zapLogger.Fatal("JWT_SECRET environment variable is not set")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	zapLogger.Info("connected to the database")

	if err := database.RunMigrations(db, "./migrations", zapLogger); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	if err := router.Run(host); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
