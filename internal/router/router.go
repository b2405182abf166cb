package router

import (
	"context"
	"fmt"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/handlers"
	"github.com/anonto42/socialfeed/backend/internal/metrics"
	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/anonto42/socialfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything SetupRoutes wires into the handlers
type Deps struct {
	Config    *config.Config
	DB        *config.DB
	Firebase  services.TokenVerifier // nil disables /auth/firebase-login
	Publisher events.Publisher
	Metrics   *metrics.Collector
	Logger    *zap.Logger
}

// Migrate creates the PostgreSQL tables and the MongoDB post indexes
func Migrate(ctx context.Context, pgdb *gorm.DB, mdb *mongo.Database) error {
	err := pgdb.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := repositories.NewMongoPostRepository(mdb).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure post indexes: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	log := d.Logger
	cfg := d.Config

	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewErrorHandler(log)

	var recorder metrics.Recorder = metrics.Nop()
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware(handlers.StatusFor))
		recorder = d.Metrics
	}
	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	// --- Initialize Repositories ---
	pgdb := d.DB.Postgres
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(d.DB.Mongo.Database(cfg.MongoDatabase))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	cascadeRepo := repositories.NewPostgresPostCascadeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	unread := repositories.NewNoopUnreadCache()
	if d.DB.Redis != nil {
		unread = repositories.NewRedisUnreadCache(d.DB.Redis, cfg.UnreadCacheTTL)
	}

	// --- Services ---
	sanitizer := services.NewSanitizer()
	authService := services.NewAuthService(userRepo, d.Firebase, cfg.JWTSecret, cfg.JWTTTL, log)
	userService := services.NewUserService(userRepo, followRepo, sanitizer)
	followService := services.NewFollowService(followRepo, userRepo, publisher, recorder, log)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, unread, recorder, log)
	feedService := services.NewFeedService(followRepo, postRepo, userRepo)
	contentService := services.NewContentService(services.ContentDeps{
		Posts:       postRepo,
		Comments:    commentRepo,
		Likes:       likeRepo,
		Users:       userRepo,
		Cascade:     cascadeRepo,
		UnreadCache: unread,
		Publisher:   publisher,
		Metrics:     recorder,
		Sanitizer:   sanitizer,
		Logger:      log,
	})

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(d.DB.Checks()).HealthCheck)

	// --- Unprotected routes for authentication ---
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(e.Group("/api/v1/auth"))

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(authService))

	handlers.NewUserHandler(userService).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewPostHandler(contentService).RegisterPostRoutes(api)
	handlers.NewCommentHandler(contentService).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(contentService).RegisterLikeRoutes(api)
	handlers.NewFeedHandler(feedService, log).RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)

	log.Info("routes configured", zap.Int("count", len(e.Routes())))
}
