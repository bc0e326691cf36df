package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/weatherly/internal/domain/archive"
	"github.com/yanqian/weatherly/internal/domain/forecast"
	apperrors "github.com/yanqian/weatherly/pkg/errors"
	"github.com/yanqian/weatherly/pkg/metrics"
)

// Service runs the dashboard over the configured city list.
type Service interface {
	Run(ctx context.Context) (RunReport, error)
}

type service struct {
	cfg      Config
	client   WeatherClient
	archiver Archiver
	cities   CitySource
	recorder Recorder
	out      io.Writer
	logger   *slog.Logger
	symbols  unitSymbols
	now      func() time.Time
}

// NewService wires up the dashboard orchestrator.
func NewService(cfg Config, client WeatherClient, archiver Archiver, cities CitySource, recorder Recorder, out io.Writer, logger *slog.Logger) Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{
		cfg:      cfg,
		client:   client,
		archiver: archiver,
		cities:   cities,
		recorder: recorder,
		out:      out,
		logger:   logger.With("component", "dashboard.service"),
		symbols:  symbolsFor(cfg.Units),
		now:      time.Now,
	}
}

// Run walks every city sequentially. Failures are reported and never abort the run;
// only context cancellation stops it early.
func (s *service) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{Bucket: s.archiver.Bucket()}
	report.BucketCreated = s.ensureContainer(ctx)

	cities := s.resolveCities(ctx)
	s.logger.Info("dashboard run started", "cities", len(cities))

	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("dashboard run interrupted", "error", err, "processed", len(report.Cities))
			return report, err
		}
		result := s.processCity(ctx, city)
		s.recorder.ObserveCity(cityOutcome(result.Status))
		report.Cities = append(report.Cities, result)
	}

	s.logger.Info("dashboard run finished", "cities", len(report.Cities))
	return report, nil
}

func (s *service) ensureContainer(ctx context.Context) bool {
	bucket := s.archiver.Bucket()
	created, err := s.archiver.EnsureContainer(ctx)
	if err != nil {
		s.logger.Error("ensure bucket failed", "bucket", bucket, "error", err)
		fmt.Fprintf(s.out, "Error creating bucket %s: %v\n", bucket, err)
		return false
	}
	if created {
		fmt.Fprintf(s.out, "Successfully created bucket %s\n", bucket)
	} else {
		fmt.Fprintf(s.out, "Bucket %s exists\n", bucket)
	}
	return created
}

func (s *service) resolveCities(ctx context.Context) []string {
	cities := cleanCities(s.cfg.Cities)
	if s.cities == nil {
		return cities
	}
	extra, err := s.cities.ExtraCities(ctx)
	if err != nil {
		s.logger.Warn("reading additional cities failed, using defaults", "error", err)
		return cities
	}
	return append(cities, cleanCities(extra)...)
}

func (s *service) processCity(ctx context.Context, city string) CityResult {
	result := CityResult{City: city, Status: CitySkipped}
	log := s.logger.With("city", city)

	writeCityHeader(s.out, city)
	fmt.Fprintln(s.out, "\nCurrent Weather:")

	started := s.now()
	current, err := s.client.FetchCurrent(ctx, city)
	if err != nil {
		s.recorder.ObserveFetch(string(archive.KindWeather), metrics.OutcomeFailure, s.now().Sub(started))
		log.Error("fetch current weather failed", "error", err, "code", apperrors.CodeOf(err))
		fmt.Fprintf(s.out, "Failed to fetch current weather data for %s\n", city)
		result.Failures = append(result.Failures, "fetch current: "+err.Error())
		return result
	}
	s.recorder.ObserveFetch(string(archive.KindWeather), metrics.OutcomeSuccess, s.now().Sub(started))

	writeCurrent(s.out, current, s.symbols)
	s.archive(ctx, &result, current.RawJSON, archive.KindWeather)
	result.Status = CityPartial

	fmt.Fprintln(s.out, "\n5-Day Forecast:")
	started = s.now()
	series, err := s.client.FetchForecast(ctx, city)
	if err != nil {
		s.recorder.ObserveFetch(string(archive.KindForecast), metrics.OutcomeFailure, s.now().Sub(started))
		log.Error("fetch forecast failed", "error", err, "code", apperrors.CodeOf(err))
		fmt.Fprintf(s.out, "Failed to fetch forecast data for %s\n", city)
		result.Failures = append(result.Failures, "fetch forecast: "+err.Error())
		return result
	}
	s.recorder.ObserveFetch(string(archive.KindForecast), metrics.OutcomeSuccess, s.now().Sub(started))

	result.Days = forecast.Summarize(series, s.cfg.Location)
	log.Debug("forecast summarized", "samples", len(series.Samples), "days", len(result.Days))
	writeForecast(s.out, result.Days, s.symbols)
	s.archive(ctx, &result, series.RawJSON, archive.KindForecast)
	result.Status = CityComplete
	return result
}

func (s *service) archive(ctx context.Context, result *CityResult, raw []byte, kind archive.Kind) {
	obj, err := s.archiver.Store(ctx, raw, result.City, kind)
	if err != nil {
		s.recorder.ObserveArchive(string(kind), metrics.OutcomeFailure)
		s.logger.Error("archive write failed", "city", result.City, "kind", string(kind), "error", err, "code", apperrors.CodeOf(err))
		fmt.Fprintf(s.out, "Error saving %s data for %s: %v\n", kind, result.City, err)
		result.Failures = append(result.Failures, fmt.Sprintf("archive %s: %v", kind, err))
		return
	}
	s.recorder.ObserveArchive(string(kind), metrics.OutcomeSuccess)
	fmt.Fprintf(s.out, "Successfully saved %s data for %s to %s\n", kind, result.City, s.archiver.Bucket())
	result.Archived = append(result.Archived, obj.Key)
}

func cleanCities(cities []string) []string {
	out := make([]string, 0, len(cities))
	for _, city := range cities {
		if trimmed := strings.TrimSpace(city); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cityOutcome(status CityStatus) string {
	switch status {
	case CityComplete:
		return metrics.OutcomeSuccess
	case CityPartial:
		return metrics.OutcomePartial
	default:
		return metrics.OutcomeSkipped
	}
}
