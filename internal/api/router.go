package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskmanagement/task-system/internal/api/handler"
	"github.com/taskmanagement/task-system/internal/api/middleware"
	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/service"
	"github.com/taskmanagement/task-system/internal/infrastructure/config"
	mongorepo "github.com/taskmanagement/task-system/internal/infrastructure/db/mongo"
	redisstore "github.com/taskmanagement/task-system/internal/infrastructure/db/redis"
	"github.com/taskmanagement/task-system/internal/infrastructure/oauth"

	_ "github.com/taskmanagement/task-system/docs"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	states := redisstore.NewStateStore(rdb)
	providers := oauth.NewRegistry(cfg.OAuth)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, roleRepo, hasher, tokens, log)
	oauthService := service.NewOAuthService(userRepo, roleRepo, tokens, log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(providers, states, oauthService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler(userService)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	e.GET("/oauth2/:provider", oauthHandler.Begin)
	e.GET("/login/oauth2/code/:provider", oauthHandler.Callback)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	api := e.Group("/api", middleware.Authenticate(tokens), middleware.RequireAuth())

	tasks := api.Group("/tasks")
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/all", taskHandler.ListAll, middleware.RBAC(domain.RoleAdmin))
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	users := api.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id/deactivate", userHandler.Deactivate)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
