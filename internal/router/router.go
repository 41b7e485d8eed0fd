package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/tahmid-rayat/momentgram/backend/internal/handlers"
	"github.com/tahmid-rayat/momentgram/backend/internal/middleware"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
	"github.com/tahmid-rayat/momentgram/backend/pkg/media"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgDatabase *mongo.Database, firebaseAuthClient *auth.Client, mediaStore media.Store) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Post{},
		&models.PostMedia{},
		&models.Reel{},
		&models.Comment{},
		&models.Interaction{},
		&models.StorySeen{},
		&models.StoryReaction{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	reelRepo := repositories.NewPostgresReelRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	interactionRepo := repositories.NewPostgresInteractionRepository(pgdb)
	feedRepo := repositories.NewPostgresFeedRepository(pgdb)
	storyRepo := repositories.NewStoryRepository(mgDatabase, pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, mediaStore, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, followRepo, mediaStore)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, mediaStore)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Reel routes
	reelHandler := handlers.NewReelHandler(reelRepo, mediaStore)
	reelHandler.RegisterReelRoutes(api)
	log.Println("Reel routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, reelRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Interaction routes (likes, saves, views, shares)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo, postRepo, reelRepo, commentRepo, notificationRepo)
	interactionHandler.RegisterInteractionRoutes(api)
	log.Println("Interaction routes configured.")

	// Story routes
	storyHandler := handlers.NewStoryHandler(storyRepo, followRepo, mediaStore)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")
}
