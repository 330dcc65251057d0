package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/inspection-service/internal/api/http"
	"github.com/spec-kit/inspection-service/internal/api/http/handlers"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/config"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/observability"
	"github.com/spec-kit/inspection-service/internal/persistence"
	"github.com/spec-kit/inspection-service/internal/repository"
	"github.com/spec-kit/inspection-service/internal/service"
	"github.com/spec-kit/inspection-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	inspectionRepo := repository.NewInspectionRepository(pool)

	sessionManager := auth.NewSessionManager(redis.Client, cfg.Session)
	sessionMiddleware := auth.NewSessionMiddleware(sessionManager, userRepo)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessionManager,
	})
	inspectionService := service.NewInspectionService(service.InspectionDependencies{
		InspectionRepo: inspectionRepo,
		Dispatcher:     dispatcher,
	})

	metrics := observability.NewMetrics()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		Views:   engine,
	})
	app.Static("/static", "./static")
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(authService, sessionManager),
		Dashboard:         handlers.NewDashboardHandler(inspectionService),
		Inspections:       handlers.NewInspectionsHandler(inspectionService),
		API:               handlers.NewAPIHandler(inspectionService),
		SessionMiddleware: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
