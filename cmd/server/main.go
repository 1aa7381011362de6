package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/handlers"
	"github.com/DashCode47/espebackend/internal/router"
	"github.com/DashCode47/espebackend/pkg/config"
	"github.com/DashCode47/espebackend/pkg/gcs"
	"github.com/DashCode47/espebackend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Optional infrastructure. Each returns nil when not configured and
	// the dependent feature is skipped.
	rdb := config.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
	amqpConn, amqpChannel := config.InitRabbitMQ(cfg.RabbitMQURL)
	if amqpConn != nil {
		defer amqpConn.Close()
	}

	ctx := context.Background()
	uploader, err := gcs.NewUploader(ctx, cfg.GCSBucket)
	if err != nil {
		log.Printf("GCS uploader unavailable (%v), image uploads disabled.", err)
		uploader = nil
	} else {
		defer uploader.Close()
	}

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(cfg.IsDevelopment())
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, rdb, amqpChannel, uploader)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
