package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/platefull/recipe-catalog/internal/api/handler"
	"github.com/platefull/recipe-catalog/internal/api/middleware"
	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/core/service"
	"github.com/platefull/recipe-catalog/internal/infrastructure/auth"
	mongodb "github.com/platefull/recipe-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/platefull/recipe-catalog/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, env domain.Environment, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipes"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db, env)
	recipeRepo := mongodb.NewRecipeRepository(db, env)
	cache := redisdb.NewListingCache(rdb, env)
	guard := service.NewOwnershipGuard(recipeRepo)

	userService := service.NewUserService(userRepo, recipeRepo, cache, auth.NewBcryptHasher(), jwtSecret, 24*time.Hour, log)
	recipeService := service.NewRecipeService(recipeRepo, guard, cache, log)
	logService := service.NewCookingLogService(recipeService, log)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	logHandler := handler.NewCookingLogHandler(logService)
	authRequired := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public recipe reads ---
	e.GET("/v1/recipes", recipeHandler.List)
	e.GET("/v1/recipes/:id", recipeHandler.Get)

	// --- Owned recipe mutations ---
	e.POST("/v1/recipes", recipeHandler.Create, authRequired)
	e.PATCH("/v1/recipes/:id", recipeHandler.Update, authRequired)
	e.DELETE("/v1/recipes/:id", recipeHandler.Delete, authRequired)
	e.POST("/v1/recipes/:id/log", logHandler.Add, authRequired)
	e.DELETE("/v1/recipes/:id/log/:index", logHandler.Remove, authRequired)

	// --- Profile ---
	e.GET("/v1/users/me", userHandler.Me, authRequired)
	e.PATCH("/v1/users/me", userHandler.Update, authRequired)
	e.DELETE("/v1/users/me", userHandler.Delete, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
