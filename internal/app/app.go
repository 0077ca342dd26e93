package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/config"
	"github.com/Freeeeeet/tutor_market/internal/controller"
	"github.com/Freeeeeet/tutor_market/internal/controller/httpapi"
	"github.com/Freeeeeet/tutor_market/internal/repository"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App собранное приложение: HTTP API, опциональный Telegram бот и доставка уведомлений
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	pool       *pgxpool.Pool
	server     *http.Server
	bot        *controller.BotController
	dispatcher *Dispatcher
}

// New подключается к БД, применяет миграции и связывает все слои
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, pool, cfg.MigrationsPath, logger); err != nil {
		pool.Close()
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	pointRepo := repository.NewPointRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	blacklistRepo := repository.NewBlacklistRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	txManager := base.NewTxManager(pool)

	// Сервисы
	userService := service.NewUserService(txManager, userRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	pointService := service.NewPointService(txManager, pointRepo, userRepo, logger)
	blacklistService := service.NewBlacklistService(blacklistRepo, userService, logger)
	listingService := service.NewListingService(listingRepo, userService, logger)
	appointmentService := service.NewAppointmentService(
		txManager,
		appointmentRepo,
		listingRepo,
		blacklistService,
		pointService,
		notificationService,
		logger,
	)
	applicationService := service.NewApplicationService(
		txManager,
		applicationRepo,
		listingRepo,
		userService,
		blacklistService,
		notificationService,
		appointmentService,
		logger,
	)
	matchingService := service.NewMatchingService(applicationService, appointmentService, listingRepo, userService, logger)
	reviewService := service.NewReviewService(txManager, reviewRepo, appointmentRepo, notificationService, logger)

	// HTTP
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(httpapi.Services{
		Matching:      matchingService,
		Listings:      listingService,
		Notifications: notificationService,
		Points:        pointService,
		Blacklist:     blacklistService,
		Users:         userService,
		Reviews:       reviewService,
	}, logger)

	a := &App{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(handler, pool.Ping, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	// Telegram
	if cfg.BotEnabled() {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("create telegram bot: %w", err)
		}

		a.bot = controller.NewBotController(b, userService, matchingService, logger)
		if err := a.bot.RegisterHandlers(ctx); err != nil {
			// Меню команд не критично для работы
			logger.Warn("Failed to register bot commands", zap.Error(err))
		}

		a.dispatcher = NewDispatcher(
			notificationRepo,
			controller.NewPusher(b),
			cfg.DeliveryInterval,
			cfg.DeliveryBatch,
			logger,
		)
	} else {
		logger.Info("TELEGRAM_TOKEN is not set, bot and notification delivery are disabled")
	}

	return a, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, path string, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, path, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливается
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if a.bot != nil {
		go a.bot.Start(ctx)
		a.dispatcher.Start(ctx)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down")
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}
	a.pool.Close()

	a.logger.Info("Stopped")
}
