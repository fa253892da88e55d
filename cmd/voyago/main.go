package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voyago/voyago/internal/application/planner"
	"github.com/voyago/voyago/internal/application/workers"
	"github.com/voyago/voyago/internal/config"
	"github.com/voyago/voyago/internal/ports"
	memoryevents "github.com/voyago/voyago/pkg/adapters/events/memory"
	redisevents "github.com/voyago/voyago/pkg/adapters/events/redis"
	"github.com/voyago/voyago/pkg/adapters/metrics/prometheus"
	"github.com/voyago/voyago/pkg/adapters/sources"
	memorystorage "github.com/voyago/voyago/pkg/adapters/storage/memory"
	redisstorage "github.com/voyago/voyago/pkg/adapters/storage/redis"
	"github.com/voyago/voyago/pkg/api/http"
	"github.com/voyago/voyago/pkg/api/websocket"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting Voyago planner",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("backend", cfg.Backend))

	ctx := context.Background()

	// Backend selection: redis shares state across instances, memory
	// keeps everything in-process.
	var (
		eventBus    ports.EventBus
		store       ports.ResultStore
		redisClient *goredis.Client
	)
	switch cfg.Backend {
	case "redis":
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		eventBus = redisevents.NewStreamsEventBus(
			redisClient,
			"voyago-planners",
			fmt.Sprintf("voyago-%d", os.Getpid()),
			logger,
		)
		store = redisstorage.NewResultStore(redisClient, cfg.Planner.ResultTTL, logger)
	default:
		eventBus = memoryevents.NewEventBus()
		store = memorystorage.NewResultStore()
	}

	metricsCollector := prometheus.NewCollector()

	explorer := workers.NewExplorer([]ports.AttractionSource{
		sources.NewCityScout(),
		sources.NewAtlasTrails(),
	}, logger)
	budget := workers.NewBudget(logger)
	food := workers.NewFood([]ports.RestaurantSource{
		sources.NewSavora(),
		sources.NewTavola(),
	}, logger)

	coordinator := planner.New(
		explorer,
		budget,
		food,
		eventBus,
		store,
		metricsCollector,
		logger,
		cfg.Planner.WorkerTimeout,
	)
	if err := coordinator.Start(ctx); err != nil {
		logger.Fatal("failed to start planner", zap.Error(err))
	}

	httpServer := http.NewServer(&http.Config{
		Port:    cfg.HTTPPort,
		Planner: coordinator,
		Store:   store,
		Logger:  logger,
	})
	httpServer.SetupWebSocket(websocket.NewHandler(eventBus, logger))

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("Voyago planner started", zap.Int("http_port", cfg.HTTPPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := coordinator.Stop(shutdownCtx); err != nil {
		logger.Error("planner shutdown error", zap.Error(err))
	}
	if err := eventBus.Close(); err != nil {
		logger.Error("event bus close error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("Voyago planner shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
