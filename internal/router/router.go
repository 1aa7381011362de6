package router

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/DashCode47/espebackend/internal/handlers"
	"github.com/DashCode47/espebackend/internal/middleware"
	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/notify"
	"github.com/DashCode47/espebackend/internal/observability"
	"github.com/DashCode47/espebackend/internal/repositories"
	"github.com/DashCode47/espebackend/pkg/gcs"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(observability.Middleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// rdb, amqpChannel and uploader may be nil; the features backed by them
// degrade gracefully.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, rdb *redis.Client, amqpChannel *amqp.Channel, uploader *gcs.Uploader) {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.UserInteraction{},
		&models.Connection{},
		&models.Trip{},
		&models.TripRequest{},
		&models.TripRating{},
		&models.Post{},
		&models.PostReaction{},
		&models.Comment{},
		&models.Event{},
		&models.EventAttendance{},
		&models.Promotion{},
		&models.Banner{},
		&models.Career{},
		&models.Establishment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	matchRepo := repositories.NewPostgresMatchRepository(pgdb)
	tripRepo := repositories.NewPostgresTripRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	eventRepo := repositories.NewPostgresEventRepository(pgdb)
	promotionRepo := repositories.NewPostgresPromotionRepository(pgdb)
	bannerRepo := repositories.NewPostgresBannerRepository(pgdb)
	careerRepo := repositories.NewPostgresCareerRepository(pgdb)
	establishmentRepo := repositories.NewPostgresEstablishmentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	notifier := notify.NewNotifier(notificationRepo, amqpChannel)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public listing routes, cached when Redis is available ---
	public := e.Group("/api")
	public.Use(middleware.ResponseCache(rdb, time.Minute))

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api group.")

	// User profile and discovery routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Match routes
	matchHandler := handlers.NewMatchHandler(matchRepo, userRepo, notifier)
	matchHandler.RegisterMatchRoutes(api)
	log.Println("Match routes configured.")

	// Trip routes. Creating a trip is gated on role.
	tripHandler := handlers.NewTripHandler(tripRepo, userRepo, notifier)
	tripHandler.RegisterTripRoutes(public, api,
		middleware.RequireRole(userRepo, models.RoleStudent, models.RoleDriver))
	log.Println("Trip routes configured.")

	// Post and comment routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, notifier)
	postHandler.RegisterPostRoutes(api)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Post and comment routes configured.")

	// Event routes
	eventHandler := handlers.NewEventHandler(eventRepo, userRepo, uploader)
	eventHandler.RegisterEventRoutes(api)
	log.Println("Event routes configured.")

	// Promotion, banner, career and establishment routes
	promotionHandler := handlers.NewPromotionHandler(promotionRepo)
	promotionHandler.RegisterPromotionRoutes(public, api)
	bannerHandler := handlers.NewBannerHandler(bannerRepo)
	bannerHandler.RegisterBannerRoutes(public, api)
	careerHandler := handlers.NewCareerHandler(careerRepo)
	careerHandler.RegisterCareerRoutes(public, api)
	establishmentHandler := handlers.NewEstablishmentHandler(establishmentRepo)
	establishmentHandler.RegisterEstablishmentRoutes(public, api)
	log.Println("Catalog routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
