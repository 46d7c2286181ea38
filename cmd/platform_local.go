//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/infra/notification"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/logging"
)

func initNotificationGateway(_ context.Context, cfg *config.Config) (domain.NotificationGateway, func() error, error) {
	if cfg.Gateway.DispatchURL == "" {
		slog.Warn("DISPATCH_URL not set, notification scheduling disabled")

		return notification.NewDisabledGateway(), nil, nil
	}

	gateway := notification.NewDispatchClient(
		cfg.Gateway.DispatchURL,
		cfg.Gateway.QueueName,
		cfg.Gateway.MaxRetries,
	)

	slog.Info("notification gateway initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.Gateway.DispatchURL),
		slog.String("queue", cfg.Gateway.QueueName),
	)

	return gateway, nil, nil
}

func initObservability(ctx context.Context, logLevel slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "reminder-scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		LogLevel:      logLevel,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("reminder-scheduling"),
	})
}
