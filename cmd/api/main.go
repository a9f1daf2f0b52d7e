package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-activities-api/internal/config"
	"github.com/noah-isme/gema-activities-api/internal/database"
	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/handler"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/realtime"
	"github.com/noah-isme/gema-activities-api/internal/repository"
	"github.com/noah-isme/gema-activities-api/internal/router"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/store"
	"github.com/noah-isme/gema-activities-api/pkg/token"
)

// connections holds the external clients opened for the selected backend.
type connections struct {
	db    *gorm.DB
	redis *redis.Client
	nats  *nats.Conn
}

func (c *connections) close(logger zerolog.Logger) {
	if c.nats != nil {
		if err := c.nats.Drain(); err != nil {
			logger.Warn().Err(err).Msg("failed to drain nats connection")
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.db != nil {
		if err := database.CloseGorm(c.db); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if !cfg.IsProduction() {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	backend, conns, err := openBackend(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage backend")
	}
	defer conns.close(logger)

	hub := realtime.NewHub(logger)
	publishers := events.Fanout{hub}
	if cfg.NATSURL != "" {
		nc, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to nats")
		}
		conns.nats = nc
		publishers = append(publishers, events.NewNATSPublisher(nc, cfg.NATSSubjectPrefix))
	}

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.AppName, cfg.JWTTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token manager")
	}

	validate := dto.NewValidator()
	repos := repository.New(store.New(backend))

	authService := service.NewAuthService(repos.Users, service.NewBcryptHasher(cfg.BcryptCost), tokens, validate, logger)
	accountService := service.NewAccountService(repos.Users, validate, logger)
	activityService := service.NewActivityService(repos.Activities, repos.Signups, publishers, validate, logger)
	attendanceService := service.NewAttendanceService(repos, publishers, validate, logger)
	feedbackService := service.NewFeedbackService(repos.Activities, repos.Feedback, publishers, validate, logger)
	dashboardService := service.NewDashboardService(repos, logger)
	exportService := service.NewExportService(attendanceService, logger)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authService.EnsureAdmin(seedCtx, service.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	})
	seedCancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin account")
	}
	if created {
		logger.Warn().Str("username", cfg.AdminUsername).Msg("seeded admin account; change its password")
	}

	authenticate := middleware.Authenticate(tokens, authService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AccessLog:    !cfg.IsProduction(),
		AllowOrigins: cfg.CORSAllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(authService, authenticate, middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow), logger),
		AccountHandler:          handler.NewAccountHandler(accountService, logger),
		ActivityHandler:         handler.NewActivityHandler(activityService, feedbackService, logger),
		AttendanceHandler:       handler.NewAttendanceHandler(attendanceService, activityService, exportService, logger),
		AttendanceStreamHandler: handler.NewAttendanceStreamHandler(attendanceService, hub, logger),
		DashboardHandler:        handler.NewDashboardHandler(dashboardService, logger),
		AdminUserHandler:        handler.NewAdminUserHandler(accountService, logger),
		Authenticate:            authenticate,
		HealthProbe: func(ctx context.Context) error {
			_, err := repos.Activities.List(ctx)
			return err
		},
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Error().Err(err).Msg("server stopped with error")
		}
	}()

	waitForShutdown(app, logger)
}

func openBackend(ctx context.Context, cfg config.Config) (store.Backend, connections, error) {
	var conns connections

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return store.NewMemoryBackend(), conns, nil
	case config.StorageFile:
		backend, err := store.NewFileBackend(cfg.DataDir)
		return backend, conns, err
	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, conns, err
		}
		conns.redis = client
		backend, err := store.NewRedisBackend(client, cfg.RedisPrefix)
		return backend, conns, err
	case config.StoragePostgres, config.StorageSQLite:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.StorageDriver == config.StoragePostgres {
			db, err = database.ConnectPostgres(ctx, cfg.DatabaseURL)
		} else {
			db, err = database.OpenSQLite(ctx, cfg.SQLitePath)
		}
		if err != nil {
			return nil, conns, err
		}
		conns.db = db
		backend, err := store.NewGormBackend(db)
		return backend, conns, err
	default:
		return nil, conns, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
