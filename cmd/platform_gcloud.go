//go:build gcloud

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

func initNotificationGateway(ctx context.Context, cfg *config.Config) (domain.NotificationGateway, func() error, error) {
	gateway, err := notification.NewCloudTasksGateway(ctx, notification.CloudTasksConfig{
		ProjectID:     cfg.Gateway.GCloudProjectID,
		LocationID:    cfg.Gateway.GCloudLocationID,
		QueueID:       cfg.Gateway.GCloudQueueID,
		TargetURL:     cfg.Gateway.GCloudTargetURL,
		PermissionURL: cfg.Gateway.PermissionURL,
		MaxRetries:    cfg.Gateway.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("notification gateway initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Gateway.GCloudProjectID),
		slog.String("location", cfg.Gateway.GCloudLocationID),
		slog.String("queue", cfg.Gateway.GCloudQueueID),
	)

	cleanup := func() error {
		if err := gateway.Close(); err != nil {
			slog.Warn("failed to close cloud tasks gateway", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return gateway, cleanup, nil
}

func initObservability(ctx context.Context, logLevel slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "reminder-scheduling"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		LogLevel:      logLevel,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("reminder-scheduling"),
		GCPProjectID:  projectID,
	})
}
