package internal

import (
	"briefing-service/internal/adapters/backend_client"
	token_adapter "briefing-service/internal/adapters/jwt"
	logger_adapter "briefing-service/internal/adapters/logger"
	"briefing-service/internal/adapters/memory"
	"briefing-service/internal/adapters/metrics"
	"briefing-service/internal/adapters/notifier"
	postgres_adapter "briefing-service/internal/adapters/postgres"
	rabbitmq_adapter "briefing-service/internal/adapters/rabbitmq"
	redis_adapter "briefing-service/internal/adapters/redis"
	"briefing-service/internal/adapters/rest"
	"briefing-service/internal/configs"
	"briefing-service/internal/constants"
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/port"
	"briefing-service/internal/core/usecase"
	fluentlogger "briefing-service/pkg/fluent_logger"
	"briefing-service/pkg/postgres"
	"briefing-service/pkg/rabbitmq/rabbitmq_common"
	"briefing-service/pkg/rabbitmq/rabbitmq_producer"
	redisclient "briefing-service/pkg/redis"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	sessions  *memory.SessionRepository
	notifier  *notifier.SSENotifier
	metrics   port.MetricsPort

	dbPool      *pgxpool.Pool
	redisClient *goredis.Client
	rabbitConns *rabbitmq_common.ConnectionManager
	publisher   *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
			Timeout:   3 * time.Second,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 2. МЕТРИКИ ---
	var metricsHandler http.Handler
	if appConfig.Metrics.Enabled {
		prom := metrics.NewPrometheusMetrics()
		app.metrics = prom
		metricsHandler = prom.Handler()
	} else {
		app.metrics = metrics.NoopMetrics{}
	}

	// --- 3. ХРАНИЛИЩЕ СТАТУСОВ БРИФИНГА ---
	initCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)
	storage, err := app.initBriefingStorage(initCtx)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	// --- 4. СОБЫТИЯ ---
	var events port.BriefingEventsPort = rabbitmq_adapter.NoopEventsAdapter{}
	if appConfig.RabbitMQ.Enabled {
		events, err = app.initRabbitMQ(baseLogger)
		if err != nil {
			app.closeResources()
			return nil, err
		}
	}

	// --- 5. ИСТОЧНИКИ ДАННЫХ И СЕССИИ ---
	backend := backend_client.NewBackendAPIClient(appConfig.Backend.URL, appConfig.Backend.PageLimit, appConfig.Backend.Timeout)
	app.sessions = memory.NewSessionRepository(appConfig.Sessions.TTL, baseLogger)
	app.notifier = notifier.NewSSENotifier(baseLogger)
	appLogger.Info("All persistence and service adapters initialized.", port.Fields{
		"storage_driver":   appConfig.BriefingStorage.Driver,
		"rabbitmq_enabled": appConfig.RabbitMQ.Enabled,
	})

	// --- 6. USE CASES ---
	repo, m, sse := app.sessions, app.metrics, app.notifier
	handlers := rest.NewBriefingHandler(rest.UseCases{
		OpenSession:     usecase.NewOpenSessionUseCase(repo, backend, sse, m),
		CloseSession:    usecase.NewCloseSessionUseCase(repo, m),
		ReloadListings:  usecase.NewReloadListingsUseCase(repo, backend, sse, m),
		ApplyFilters:    usecase.NewApplyFiltersUseCase(repo, sse, m),
		SelectCustomer:  usecase.NewSelectCustomerUseCase(repo, backend, storage, sse, m),
		ClearCustomer:   usecase.NewClearCustomerUseCase(repo, storage, sse, m),
		AdvanceSort:     usecase.NewAdvanceSortUseCase(repo, sse, m),
		SetStatus:       usecase.NewSetBriefingStatusUseCase(repo, storage, events, sse, m),
		CycleStatus:     usecase.NewCycleBriefingStatusUseCase(repo, storage, events, sse, m),
		GetView:         usecase.NewGetViewUseCase(repo),
		GetBriefingList: usecase.NewGetBriefingListUseCase(repo),
		EditField:       usecase.NewEditBriefingFieldUseCase(repo),
		GetClusters:     usecase.NewGetClusterSummaryUseCase(repo),
	}, sse)

	serverCfg := rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
		MetricsHandler: metricsHandler,
	}
	if appConfig.Auth.JWTSecret != "" {
		verifier, err := token_adapter.NewTokenVerifier(appConfig.Auth.JWTSecret)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		serverCfg.TokenVerifier = verifier
	}
	app.apiServer = rest.NewServer(serverCfg, handlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

// initBriefingStorage подключает хранилище по BRIEFING_STORAGE.
func (a *App) initBriefingStorage(ctx context.Context) (port.BriefingStoragePort, error) {
	cfg := a.config
	switch cfg.BriefingStorage.Driver {
	case configs.StorageRedis:
		client, err := redisclient.NewClient(ctx, redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.logger.Error("Failed to connect to Redis", err, nil)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		a.logger.Info("Successfully connected to Redis!", nil)

		storage, err := redis_adapter.NewBriefingStorage(client, constants.RedisKeyPrefix, cfg.Redis.TTL)
		if err != nil {
			return nil, err
		}
		return storage, nil

	case configs.StoragePostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL: cfg.Database.URL,
			MaxConns:    int32(cfg.Database.MaxConns),
		})
		if err != nil {
			a.logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = pool
		a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

		storage, err := postgres_adapter.NewPostgresBriefingStorage(pool)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureSchema(ctx); err != nil {
			a.logger.Error("Failed to prepare briefing_states table", err, nil)
			return nil, err
		}
		return storage, nil
	}

	a.logger.Warn("Briefing statuses are kept in memory and will be lost on restart", nil)
	return memory.NewBriefingStorage(), nil
}

func (a *App) initRabbitMQ(baseLogger port.LoggerPort) (port.BriefingEventsPort, error) {
	bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	conns, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, bridge)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.rabbitConns = conns

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             constants.BriefingExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   bridge,
	}, conns)
	if err != nil {
		a.logger.Error("Failed to create RabbitMQ publisher", err, nil)
		return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
	}
	a.publisher = publisher

	adapter, err := rabbitmq_adapter.NewBriefingEventsAdapter(publisher, constants.RoutingKeyStatusChanged)
	if err != nil {
		return nil, err
	}
	a.logger.Info("RabbitMQ publisher is ready", port.Fields{"exchange": a.config.RabbitMQ.Exchange})
	return adapter, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	go a.sessions.RunJanitor(appCtx, a.config.Sessions.JanitorInterval, a.metrics)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		return err
	}
}

// closeResources закрывает все, что успело открыться. Повторный вызов безопасен.
func (a *App) closeResources() {
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
		a.publisher = nil
	}
	if a.rabbitConns != nil {
		if err := a.rabbitConns.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.rabbitConns = nil
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
		a.redisClient = nil
		a.logger.Info("Redis client closed.", nil)
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
