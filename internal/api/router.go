package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streamhub/user-service/internal/api/handler"
	"github.com/streamhub/user-service/internal/api/middleware"
	"github.com/streamhub/user-service/internal/core/ports"
	"github.com/streamhub/user-service/internal/core/service"
	"github.com/streamhub/user-service/internal/infrastructure/config"
	mongodb "github.com/streamhub/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/streamhub/user-service/internal/infrastructure/db/redis"
)

// RouterDeps carries the externally constructed dependencies the router
// wires together.
type RouterDeps struct {
	Config  *config.Config
	DB      *mongo.Database
	Redis   *redis.Client
	Storage ports.MediaStorage
	Cleanup service.MediaCleanup
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// A misconfigured token issuer fails here, before the server ever starts.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("streamhub"))

	// --- Dependencies ---
	issuer, err := service.NewTokenIssuer(
		deps.Config.Auth.AccessTokenSecret,
		deps.Config.Auth.RefreshTokenSecret,
		deps.Config.Auth.AccessTokenTTL,
		deps.Config.Auth.RefreshTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	users := mongodb.NewUserRepository(deps.DB)
	subs := mongodb.NewSubscriptionRepository(deps.DB)
	videos := mongodb.NewVideoRepository(deps.DB)
	cache := redisdb.NewCache(deps.Redis)

	authService := service.NewAuthService(users, issuer, deps.Log)
	userService := service.NewUserService(users, subs, videos, deps.Storage, deps.Cleanup, cache, deps.Log)

	authHandler := handler.NewAuthHandler(authService, deps.Storage, deps.Cleanup, handler.CookieSettings{
		Secure:     deps.Config.IsProduction(),
		AccessTTL:  deps.Config.Auth.AccessTokenTTL,
		RefreshTTL: deps.Config.Auth.RefreshTokenTTL,
	})
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(issuer, users)

	// --- User routes ---
	v1 := e.Group("/api/v1/users")
	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login)
	v1.POST("/refresh-token", authHandler.Refresh)
	v1.POST("/logout", authHandler.Logout, authMiddleware)
	v1.POST("/change-password", authHandler.ChangePassword, authMiddleware)
	v1.GET("/me", userHandler.Me, authMiddleware)
	v1.PATCH("/me", userHandler.UpdateAccount, authMiddleware)
	v1.PATCH("/me/avatar", userHandler.UpdateAvatar, authMiddleware)
	v1.PATCH("/me/cover-image", userHandler.UpdateCoverImage, authMiddleware)
	v1.GET("/c/:username", userHandler.ChannelProfile, authMiddleware)
	v1.GET("/history", userHandler.WatchHistory, authMiddleware)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
