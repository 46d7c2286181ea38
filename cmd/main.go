package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmhodges/clock"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/health"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/compile"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/reminder"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := cfg.Redis.Validate(); err != nil {
		slog.Error("redis configuration error", slog.String("error", err.Error()))
		return 1
	}
	if err := cfg.Gateway.Validate(); err != nil {
		slog.Error("notification gateway configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// Schedule result recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorderCfg := schedulerecorder.LoadConfig()
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	gateway, cleanup, err := initNotificationGateway(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize notification gateway", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("notification gateway cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	reminderRepo := repository.NewReminderRepository(redisClient)
	compiler := compile.NewCompiler(cfg.Schedule.MaxPendingPerBatch)

	reminderService := reminder.NewService(
		reminderRepo,
		gateway,
		compiler,
		clock.New(),
		time.Duration(cfg.Schedule.SnoozeDelayMinutes)*time.Minute,
		scheduleMetrics,
	)

	reminderHandler := handler.NewReminderHandler(reminderService, resultRecorder)
	responseHandler := handler.NewResponseHandler(reminderService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("reminder-scheduling"),
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		reminders := v1.Group("/reminders")
		{
			reminders.PUT("/:category", reminderHandler.HandleAddReminder)
			reminders.GET("/:category", reminderHandler.HandleGetReminder)
			reminders.DELETE("/:category", reminderHandler.HandleRemoveReminder)
			reminders.POST("/:category/entries", reminderHandler.HandleAddEntry)
			reminders.DELETE("/:category/entries/:id", reminderHandler.HandleRemoveEntry)
			reminders.PATCH("/:category/entries/:id/active", reminderHandler.HandleToggleEntry)
		}
		v1.POST("/notifications/response", responseHandler.HandleNotificationResponse)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("max_pending_per_batch", cfg.Schedule.MaxPendingPerBatch),
			slog.Int("snooze_delay_minutes", cfg.Schedule.SnoozeDelayMinutes),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
