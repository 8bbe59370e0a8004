package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/voucher-service/internal/api/http"
	"github.com/spec-kit/voucher-service/internal/api/http/handlers"
	"github.com/spec-kit/voucher-service/internal/auth"
	"github.com/spec-kit/voucher-service/internal/cache"
	"github.com/spec-kit/voucher-service/internal/config"
	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/events"
	"github.com/spec-kit/voucher-service/internal/observability"
	"github.com/spec-kit/voucher-service/internal/persistence"
	"github.com/spec-kit/voucher-service/internal/repository"
	"github.com/spec-kit/voucher-service/internal/service"
	"github.com/spec-kit/voucher-service/internal/worker"
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
	workerRepo := repository.NewWorkerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	ticketCache := cache.NewTicketCache(redis.Client, cfg.Cache.TicketTTL(), logger)
	worker.RegisterSubscribers(dispatcher, ticketCache, logger)

	orderService, err := service.NewOrderService(service.OrderDependencies{
		WorkerRepo: workerRepo,
		OrderRepo:  orderRepo,
		Dispatcher: dispatcher,
		Cache:      ticketCache,
		Limits: domain.QuotaLimits{
			PremiumDailyCap:    cfg.Quota.PremiumDailyCap,
			PremiumMaxPerOrder: cfg.Quota.PremiumMaxPerOrder,
		},
		Timezone: cfg.App.Timezone,
	})
	if err != nil {
		logger.Fatal("failed to init order service", zap.Error(err))
	}

	reportService, err := service.NewReportService(service.ReportDependencies{
		OrderRepo: orderRepo,
		Timezone:  cfg.App.Timezone,
	})
	if err != nil {
		logger.Fatal("failed to init report service", zap.Error(err))
	}

	sessionService := service.NewSessionService(service.SessionDependencies{
		SessionRepo: sessionRepo,
		TTL:         cfg.Auth.SessionTTL(),
	})
	directoryService := service.NewDirectoryService(workerRepo)
	companyService := service.NewCompanyService(companyRepo, workerRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	sessionMiddleware := auth.NewSessionMiddleware(sessionService)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	secureCookies := cfg.App.Env == "production"
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(cfg.Auth, secureCookies, sessionService),
		Orders:            handlers.NewOrdersHandler(orderService),
		Reports:           handlers.NewReportsHandler(reportService),
		Workers:           handlers.NewWorkersHandler(directoryService),
		Companies:         handlers.NewCompaniesHandler(companyService),
		Settings:          handlers.NewSettingsHandler(settingsService),
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
