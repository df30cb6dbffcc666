package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	appControllers "github.com/yigit/campushub/internal/app/controllers"
	appJobs "github.com/yigit/campushub/internal/app/jobs"
	appMigrations "github.com/yigit/campushub/internal/app/migrations"
	appRepos "github.com/yigit/campushub/internal/app/repositories"
	appDocuments "github.com/yigit/campushub/internal/app/repositories/documents"
	appRoutes "github.com/yigit/campushub/internal/app/routes"
	appServices "github.com/yigit/campushub/internal/app/services"
	"github.com/yigit/campushub/internal/config"
	"github.com/yigit/campushub/internal/db"
	appMiddleware "github.com/yigit/campushub/internal/middleware"
	pkgAuth "github.com/yigit/campushub/internal/pkg/auth"
	"github.com/yigit/campushub/internal/pkg/cache"
	"github.com/yigit/campushub/internal/pkg/logger"
	"github.com/yigit/campushub/internal/pkg/websocket"
	"github.com/yigit/campushub/internal/seed"
)

// Stores holds the connections to every backing store
type Stores struct {
	Postgres *db.PostgresDB
	Mongo    *db.MongoDB
	Redis    *redis.Client
}

// Close releases every store connection that was opened
func (s *Stores) Close(ctx context.Context) error {
	var firstErr error
	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	return firstErr
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	NotificationService appServices.NotificationService
	PostService         appServices.PostService
	FollowService       appServices.FollowService
	RegistrationService appServices.RegistrationService
	EventService        appServices.EventService
	ClubService         appServices.ClubService

	NotificationController *appControllers.NotificationController
	PostController         *appControllers.PostController
	FollowController       *appControllers.FollowController
	EventController        *appControllers.EventController
	ClubController         *appControllers.ClubController
	HealthController       *appControllers.HealthController

	Hub       *websocket.Hub
	WSHandler *websocket.Handler
	Sweeper   *appJobs.NotificationSweeper
	Reminder  *appJobs.EventReminder

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	Documents      *appDocuments.Stores
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
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

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStores connects to postgres, mongo and redis, runs the relational
// migrations and makes sure the document indexes exist.
func SetupStores(cfg *config.Config, lgr zerolog.Logger) (*Stores, error) {
	stores := &Stores{}

	lgr.Info().Msg("Establishing database connection...")
	pg, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	stores.Postgres = pg
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		stores.Close(context.Background())
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(pg.Pool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		stores.Close(context.Background())
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connecting to document store...")
	mongoDB, err := db.NewMongoDB(cfg)
	if err != nil {
		stores.Close(context.Background())
		lgr.Error().Err(err).Msg("Failed to connect to document store")
		return nil, err
	}
	stores.Mongo = mongoDB

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := appDocuments.EnsureIndexes(indexCtx, mongoDB.Database); err != nil {
		stores.Close(context.Background())
		lgr.Error().Err(err).Msg("Failed to create document indexes")
		return nil, fmt.Errorf("document indexes failed: %w", err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to cache...")
	redisClient, err := db.NewRedisClient(cfg)
	if err != nil {
		stores.Close(context.Background())
		lgr.Error().Err(err).Msg("Failed to connect to cache")
		return nil, err
	}
	stores.Redis = redisClient

	return stores, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, stores *Stores, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(stores.Postgres)
	deps.Documents = appDocuments.NewStores(stores.Mongo)
	viewCache := cache.NewRedisCache(stores.Redis)

	deps.Hub = websocket.NewHub(logger.Component(lgr, "realtime"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component(lgr, "realtime"))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	users := deps.Repos.UserRepository

	deps.NotificationService = appServices.NewNotificationService(
		deps.Documents.Notifications,
		users,
		deps.Hub,
		logger.Component(lgr, "notifications"),
	)
	deps.PostService = appServices.NewPostService(
		deps.Documents.Posts,
		deps.Documents.Comments,
		deps.Documents.Likes,
		deps.Documents.Follows,
		users,
		viewCache,
		deps.NotificationService,
		appServices.PostServiceConfig{
			FeedPageSize: cfg.Feed.PageSize,
			CacheTTL:     cfg.Redis.PostTTL,
		},
		logger.Component(lgr, "posts"),
	)
	deps.FollowService = appServices.NewFollowService(
		deps.Documents.Follows,
		users,
		users,
		deps.NotificationService,
		logger.Component(lgr, "follows"),
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		deps.NotificationService,
		logger.Component(lgr, "registrations"),
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.ResultRepository,
		deps.Repos.ClubRepository,
		deps.Repos.RegistrationRepository,
		users,
		deps.NotificationService,
		logger.Component(lgr, "events"),
	)
	deps.ClubService = appServices.NewClubService(
		deps.Repos.ClubRepository,
		users,
		logger.Component(lgr, "clubs"),
	)

	sweeper, err := appJobs.NewNotificationSweeper(
		deps.NotificationService,
		cfg.NotificationRetention(),
		cfg.Notifications.SweepInterval,
		lgr,
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create notification sweeper")
		return nil, fmt.Errorf("failed to create notification sweeper: %w", err)
	}
	deps.Sweeper = sweeper

	reminder, err := appJobs.NewEventReminder(
		deps.EventService,
		cfg.Events.ReminderLead,
		cfg.Events.ReminderInterval,
		lgr,
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create event reminder")
		return nil, fmt.Errorf("failed to create event reminder: %w", err)
	}
	deps.Reminder = reminder

	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService, cfg.Notifications.DefaultListLimit, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)
	deps.FollowController = appControllers.NewFollowController(deps.FollowService)
	deps.EventController = appControllers.NewEventController(deps.RegistrationService, deps.EventService, lgr)
	deps.ClubController = appControllers.NewClubController(deps.ClubService)
	deps.HealthController = appControllers.NewHealthController(map[string]appControllers.HealthCheck{
		"postgres": func(ctx context.Context) error { return stores.Postgres.Pool.Ping(ctx) },
		"mongo":    func(ctx context.Context) error { return stores.Mongo.Client.Ping(ctx, readpref.Primary()) },
		"redis":    func(ctx context.Context) error { return stores.Redis.Ping(ctx).Err() },
	}).WithGauge("realtime_connections", deps.Hub.ConnectionCount)

	// Default data is best effort
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(seedCtx, deps.Repos, deps.JWTService, !isProduction(cfg), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if isProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery(lgr))

	appRoutes.SetupRouter(router,
		deps.NotificationController,
		deps.PostController,
		deps.FollowController,
		deps.EventController,
		deps.ClubController,
		deps.HealthController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

func isProduction(cfg *config.Config) bool {
	return strings.ToLower(cfg.Server.Mode) == "production"
}
