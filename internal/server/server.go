// Package server contains the HTTP handlers for the publishing API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "pressroom/docs" // swagger docs
	"pressroom/internal/cache"
	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/notifications"
	"pressroom/internal/repository"
	"pressroom/internal/security"
	"pressroom/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenRateLimit      = 10
	tokenRateWindow     = 5 * time.Minute
	publisherRateLimit  = 5
	publisherRateWindow = 10 * time.Minute

	// globalRateLimit is per IP per minute across every route.
	globalRateLimit = 300
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier

	authService      *service.AuthService
	feedService      *service.FeedService
	postService      *service.PostService
	interestService  *service.InterestService
	publisherService *service.PublisherService
}

// NewServer connects to the database and redis described by cfg and builds a Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; caching, rate limiting and events are then disabled.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server needs a config and a database")
	}

	publisherRepo := repository.NewPublisherRepository(db)
	postRepo := repository.NewPostRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	store := cache.NewStore(redisClient)
	tokens := security.NewTokenCodec(cfg.SecretKey, time.Duration(cfg.TokenTTLSeconds)*time.Second)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("pressroom-api"),
	}

	var events service.PostEventPublisher
	if redisClient != nil {
		s.notifier = notifications.NewNotifier(redisClient)
		events = s.notifier
	}

	s.authService = service.NewAuthService(publisherRepo, tokens, cfg.AdminOverride)
	s.feedService = service.NewFeedService(postRepo, store)
	s.postService = service.NewPostService(postRepo, store, events)
	s.interestService = service.NewInterestService(interestRepo, store)
	s.publisherService = service.NewPublisherService(publisherRepo)

	return s, nil
}

// NewApp builds the fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Pressroom API",
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// ErrorHandler turns errors escaping a handler into the JSON error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := models.CodeInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = models.CodeNotFound
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = models.CodeValidation
		}
		return models.RespondWithError(c, fiberErr.Code, &models.AppError{Code: code, Message: fiberErr.Message})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
		slog.String("path", c.Path()), slog.String("error", err.Error()))
	return models.RespondWithAppError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses carry it too.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Authorization,Content-Type",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        globalRateLimit,
		Expiration: time.Minute,
		// Preflight requests belong to CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				&models.AppError{Code: models.CodeRateLimited, Message: "Too many requests, please try again later."})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Pressroom Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	authRequired := middleware.AuthRequired(s.authService)

	// Anonymous token requests reach the handler and get a 403.
	api.Post("/tokens", middleware.OptionalAuth(s.authService),
		middleware.RateLimit(s.redis, tokenRateLimit, tokenRateWindow, "tokens"), s.IssueToken)

	interests := api.Group("/interests")
	interests.Get("/", s.ListInterests)
	interests.Put("/", authRequired, s.CreateInterest)
	interests.Patch("/:name", authRequired, s.UpdateInterest)
	interests.Delete("/:name", authRequired, s.DeleteInterest)

	// Feed routes before the generic /:id route
	posts := api.Group("/posts")
	posts.Get("/recent", s.RecentFeed)
	posts.Get("/media", s.MediaFeed)
	posts.Get("/all", authRequired, s.AllFeed)
	posts.Post("/", authRequired, s.CreatePost)
	posts.Post("/:id/followup", authRequired, s.CreateFollowup)
	posts.Get("/:id", s.GetPost)
	posts.Patch("/:id", authRequired, s.UpdatePost)

	publisher := api.Group("/publisher", authRequired)
	publisher.Put("/",
		middleware.RateLimit(s.redis, publisherRateLimit, publisherRateWindow, "publisher_create"), s.CreatePublisher)
	publisher.Patch("/", s.UpdateOwnPublisher)
	publisher.Get("/:id", s.GetPublisher)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now().UTC(),
	})
}

// ReadinessCheck reports database and redis health. Redis is optional, so
// only the database decides the status code.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC(),
	})
}

// Start serves HTTP on the configured port until Shutdown is called.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if s.notifier != nil {
		go func() {
			err := s.notifier.StartPostSubscriber(s.shutdownCtx, func(event notifications.PostEvent) {
				middleware.Logger.Debug("post event",
					slog.String("type", event.Type), slog.Uint64("post_id", uint64(event.PostID)))
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				middleware.Logger.Error("post event subscriber stopped", slog.String("error", err.Error()))
			}
		}()
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
