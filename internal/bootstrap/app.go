package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yanqian/weatherly/internal/domain/dashboard"
	"github.com/yanqian/weatherly/internal/infra/config"
	"github.com/yanqian/weatherly/pkg/metrics"
	"github.com/yanqian/weatherly/pkg/util"
)

// App encapsulates one dashboard run.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	dashboard dashboard.Service
	metrics   *metrics.RunMetrics
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, svc dashboard.Service, runMetrics *metrics.RunMetrics) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), dashboard: svc, metrics: runMetrics}
}

// Run executes the dashboard and flushes metrics. Per-city failures never surface
// here; an interrupt ends the run cleanly.
func (a *App) Run(ctx context.Context) error {
	report, err := a.dashboard.Run(ctx)
	a.metrics.MarkFinished(util.Now())
	if flushErr := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); flushErr != nil {
		a.logger.Error("write metrics textfile failed", "path", a.cfg.Metrics.Textfile, "error", flushErr)
	}

	complete, partial, skipped := tally(report)
	a.logger.Info("run summary",
		"bucket", report.Bucket,
		"complete", complete,
		"partial", partial,
		"skipped", skipped,
	)

	if errors.Is(err, context.Canceled) {
		a.logger.Info("shutdown signal received")
		return nil
	}
	return err
}

func tally(report dashboard.RunReport) (complete, partial, skipped int) {
	for _, city := range report.Cities {
		switch city.Status {
		case dashboard.CityComplete:
			complete++
		case dashboard.CityPartial:
			partial++
		default:
			skipped++
		}
	}
	return complete, partial, skipped
}
