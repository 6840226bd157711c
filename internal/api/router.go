package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/handyman/marketplace-api/docs"
	"github.com/handyman/marketplace-api/internal/api/handler"
	"github.com/handyman/marketplace-api/internal/api/middleware"
	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/service"
	mongodb "github.com/handyman/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/handyman/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("handyman"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	offerRepo := mongodb.NewOfferRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	cache := redisdb.NewCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokenTTL, log)
	jobService := service.NewJobService(jobRepo, log)
	offerService := service.NewOfferService(jobRepo, offerRepo, assignmentRepo, userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, cache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	offerHandler := handler.NewOfferHandler(offerService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	auth := middleware.Auth(userRepo)
	clientOnly := middleware.RequireRole(domain.RoleClient)
	handymanOnly := middleware.RequireRole(domain.RoleHandyman)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1")
	v1.GET("/profile", authHandler.Profile, auth)

	v1.POST("/jobs", jobHandler.Create, auth, clientOnly)
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/posted", jobHandler.ListPosted, auth, clientOnly)
	v1.GET("/jobs/:id", jobHandler.Get)

	v1.POST("/jobs/:id/offers", offerHandler.Make, auth, handymanOnly)
	v1.GET("/jobs/:id/offers", offerHandler.List, auth)
	v1.POST("/jobs/:id/hire", offerHandler.Hire, auth, clientOnly)

	// --- Service catalog (public) ---
	v1.GET("/categories", categoryHandler.Categories)
	v1.GET("/services", categoryHandler.Services)
	v1.GET("/services/:id", categoryHandler.Service)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
