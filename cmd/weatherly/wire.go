//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weatherly/internal/bootstrap"
	"github.com/yanqian/weatherly/internal/domain/archive"
	"github.com/yanqian/weatherly/internal/domain/dashboard"
	"github.com/yanqian/weatherly/internal/infra/config"
	"github.com/yanqian/weatherly/internal/infra/openweather"
	"github.com/yanqian/weatherly/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		provideRunID,
		provideLogger,
		provideWeatherClient,
		provideObjectStorage,
		provideDashboardConfig,
		provideCitySource,
		provideRunMetrics,
		provideReportOutput,
		archive.NewWriter,
		dashboard.NewService,
		wire.Bind(new(dashboard.WeatherClient), new(*openweather.Client)),
		wire.Bind(new(dashboard.Archiver), new(*archive.Writer)),
		wire.Bind(new(dashboard.Recorder), new(*metrics.RunMetrics)),
		bootstrap.NewApp,
	)
	return nil, nil
}
