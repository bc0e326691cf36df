package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/yanqian/weatherly/internal/domain/archive"
	"github.com/yanqian/weatherly/internal/domain/dashboard"
	"github.com/yanqian/weatherly/internal/infra/config"
	"github.com/yanqian/weatherly/internal/infra/openweather"
	"github.com/yanqian/weatherly/internal/infra/storage"
	"github.com/yanqian/weatherly/internal/interface/cli"
	"github.com/yanqian/weatherly/pkg/logger"
	"github.com/yanqian/weatherly/pkg/metrics"
)

func provideRunID() archive.RunID {
	return archive.RunID(uuid.NewString())
}

func provideLogger(runID archive.RunID) *slog.Logger {
	return logger.New().With("run_id", string(runID))
}

func provideWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(openweather.Options{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Units:   cfg.Weather.Units,
		Timeout: cfg.Weather.Timeout,
	})
}

func provideObjectStorage(cfg *config.Config, logger *slog.Logger) (archive.ObjectStorage, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case config.DriverMinio:
		logger.Info("archive storage: s3-compatible endpoint", "endpoint", sc.Endpoint, "bucket", sc.Bucket)
		return storage.NewMinioStore(sc.Endpoint, sc.AccessKey, sc.SecretKey, sc.Bucket, sc.Region, logger)
	case config.DriverMemory:
		logger.Warn("archive storage: in-memory, records are discarded on exit", "bucket", sc.Bucket)
		return storage.NewMemoryStore(sc.Bucket), nil
	case config.DriverS3:
		logger.Info("archive storage: amazon s3", "region", sc.Region, "bucket", sc.Bucket)
		return storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:    sc.Bucket,
			Region:    sc.Region,
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", sc.Driver)
	}
}

func provideDashboardConfig(cfg *config.Config) (dashboard.Config, error) {
	loc, err := cfg.Location()
	if err != nil {
		return dashboard.Config{}, err
	}
	cities := cfg.Dashboard.Cities
	if len(cities) == 0 {
		cities = dashboard.DefaultCities
	}
	return dashboard.Config{
		Cities:   cities,
		Units:    cfg.Weather.Units,
		Location: loc,
	}, nil
}

func provideCitySource(cfg *config.Config) dashboard.CitySource {
	if !cfg.Dashboard.Interactive {
		return cli.NoPrompt{}
	}
	return cli.NewPrompter(os.Stdin, os.Stdout)
}

func provideRunMetrics() *metrics.RunMetrics {
	return metrics.NewRunMetrics("weatherly")
}

func provideReportOutput() io.Writer {
	return os.Stdout
}
