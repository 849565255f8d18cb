package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/forohub/forum-api/docs"
	"github.com/forohub/forum-api/internal/api/handler"
	"github.com/forohub/forum-api/internal/api/middleware"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
	"github.com/forohub/forum-api/internal/core/service"
	mongodb "github.com/forohub/forum-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens ports.TokenService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("forohub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	topicoRepo := mongodb.NewTopicoRepository(db)
	authService := service.NewAuthService(userRepo, tokens)
	topicoService := service.NewTopicoService(topicoRepo, log)
	authHandler := handler.NewAuthHandler(authService)
	topicoHandler := handler.NewTopicoHandler(topicoService)

	// --- Auth routes (open) ---
	e.POST("/auth/login", authHandler.Login)

	// --- Topic routes (bearer token required) ---
	topicos := e.Group("/topicos",
		middleware.Auth(tokens),
		middleware.RBAC(domain.RoleAdmin, domain.RoleUser),
	)
	topicos.POST("", topicoHandler.Create)
	topicos.GET("", topicoHandler.List)
	topicos.GET("/:id", topicoHandler.Get)
	topicos.PUT("/:id", topicoHandler.Update)
	topicos.DELETE("/:id", topicoHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
