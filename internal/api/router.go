package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casewise/case-management-api/internal/api/handler"
	"github.com/casewise/case-management-api/internal/api/middleware"
	"github.com/casewise/case-management-api/internal/core/ports"
	"github.com/casewise/case-management-api/internal/core/service"
	"github.com/casewise/case-management-api/internal/infrastructure/config"
	mongodb "github.com/casewise/case-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casewise/case-management-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("casenotes"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	noteRepo := mongodb.NewCaseNoteRepository(db)
	blacklist := redisdb.NewTokenBlacklist(rdb)

	tokenService := service.NewTokenService(userRepo, blacklist, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	authService := service.NewAuthService(userRepo, tokenService, audit, log)
	clientService := service.NewClientService(clientRepo, log)
	noteService := service.NewCaseNoteService(clientRepo, noteRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	noteHandler := handler.NewCaseNoteHandler(noteService)

	requireAuth := middleware.Auth(tokenService)
	optionalAuth := middleware.OptionalAuth(tokenService)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.POST("/auth/refresh", authHandler.Refresh)

	// Search deliberately tolerates anonymous callers (empty result set).
	apiGroup.GET("/clients/search", clientHandler.Search, optionalAuth)
	apiGroup.GET("/clients", clientHandler.ListAll, requireAuth, middleware.RequireSuperuser())

	apiGroup.POST("/case-notes", noteHandler.Create, requireAuth)
	apiGroup.GET("/case-notes/client/:client_id", noteHandler.ListByClient, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
