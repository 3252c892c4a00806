package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect/social-network/internal/api/handler"
	"github.com/devconnect/social-network/internal/api/middleware"
	"github.com/devconnect/social-network/internal/core/service"
	mongodb "github.com/devconnect/social-network/internal/infrastructure/db/mongo"
	redisdb "github.com/devconnect/social-network/internal/infrastructure/db/redis"
	"github.com/devconnect/social-network/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb)
	authService := service.NewAuthService(userRepo, tokenService, limiter, log)
	postService := service.NewPostService(postRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	healthHandler := handler.NewHealthHandler(db, rdb)
	requireAuth := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/api/user", authHandler.Register)
	e.POST("/api/auth", authHandler.Login)
	e.GET("/api/auth", authHandler.Me, requireAuth)

	// --- Post routes (all protected) ---
	posts := e.Group("/api/post", requireAuth)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.GET("/user/:user_id", postHandler.ListByUser)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.POST("/comment/:id", postHandler.AddComment)
	posts.DELETE("/:id/comment/:comment_id", postHandler.DeleteComment)

	// --- Operational surface (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
