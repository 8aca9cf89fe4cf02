package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/schooladmin/internal/app/controllers"
	appRepos "github.com/yigit/schooladmin/internal/app/repositories"
	appRoutes "github.com/yigit/schooladmin/internal/app/routes"
	appServices "github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/app/views"
	"github.com/yigit/schooladmin/internal/config"
	appMiddleware "github.com/yigit/schooladmin/internal/middleware"
	"github.com/yigit/schooladmin/internal/pkg/graphql"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
	"github.com/yigit/schooladmin/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService       appServices.StudentService
	AuthService          appServices.AuthService
	DashboardService     appServices.DashboardService
	AuthController       *appControllers.AuthController
	DashboardController  *appControllers.DashboardController
	StudentController    *appControllers.StudentController
	StudentAPIController *appControllers.StudentAPIController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	Sessions             *session.Manager
	GraphQL              *graphql.Client
	Renderer             *views.Renderer
	Redis                *redis.Client // nil unless sessions live in redis
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupSessionStore opens the configured session backend. The returned redis
// client is nil for the in-memory store.
func SetupSessionStore(cfg *config.Config, lgr zerolog.Logger) (session.Store, *redis.Client, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		lgr.Warn().Msg("Using in-memory session store; sessions are lost on restart")
		return session.NewMemoryStore(), nil, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to redis session store...")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping redis")
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis session store: %w", err)
	}
	lgr.Info().Msg("Redis connection successfully established.")

	return session.NewRedisStore(client), client, nil
}

// BuildDependencies initializes the session service, GraphQL client,
// repositories, services and controllers.
func BuildDependencies(cfg *config.Config, store session.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Sessions = session.NewManager(store, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
		Secure:     cfg.Session.Secure,
		Logger:     lgr,
	})

	client, err := graphql.NewClient(graphql.Options{
		Endpoint: cfg.GraphQL.URL,
		Timeout:  helpers.ParseDuration(cfg.GraphQL.Timeout, 15*time.Second),
		Session:  deps.Sessions,
		Logger:   lgr,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create GraphQL client")
		return nil, fmt.Errorf("failed to create graphql client: %w", err)
	}
	deps.GraphQL = client
	lgr.Info().Str("endpoint", client.Endpoint()).Msg("GraphQL client configured")

	deps.Renderer, err = views.NewRenderer()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(client)

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.AuthRepository, deps.Sessions, lgr)
	deps.DashboardService = appServices.NewDashboardService()

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Sessions, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService, deps.Sessions)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.Sessions)
	deps.StudentAPIController = appControllers.NewStudentAPIController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.SessionLoader(deps.Sessions))
	router.HTMLRender = deps.Renderer

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:       deps.AuthController,
		Dashboard:  deps.DashboardController,
		Student:    deps.StudentController,
		StudentAPI: deps.StudentAPIController,
	}, deps.AuthMiddleware, cfg.AllowedOrigins())

	// Health endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
