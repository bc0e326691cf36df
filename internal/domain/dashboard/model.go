package dashboard

import (
	"context"
	"time"

	"github.com/yanqian/weatherly/internal/domain/archive"
	"github.com/yanqian/weatherly/internal/domain/forecast"
)

// DefaultCities are always reported, before any city added at the prompt.
var DefaultCities = []string{"Lagos", "New York", "Doha"}

// Config wires runtime settings for the dashboard.
type Config struct {
	Cities   []string
	Units    string
	Location *time.Location
}

// WeatherClient reads current conditions and forecasts for a location.
type WeatherClient interface {
	FetchCurrent(ctx context.Context, location string) (forecast.Current, error)
	FetchForecast(ctx context.Context, location string) (forecast.Series, error)
}

// Archiver persists raw API responses.
type Archiver interface {
	EnsureContainer(ctx context.Context) (bool, error)
	Store(ctx context.Context, record []byte, location string, kind archive.Kind) (archive.StoredObject, error)
	Bucket() string
}

// CitySource supplies cities added by the user for this run.
type CitySource interface {
	ExtraCities(ctx context.Context) ([]string, error)
}

// Recorder receives per-step outcomes; *metrics.RunMetrics satisfies it.
type Recorder interface {
	ObserveFetch(kind, outcome string, elapsed time.Duration)
	ObserveArchive(kind, outcome string)
	ObserveCity(outcome string)
}

// CityStatus summarizes how far a city got through the run.
type CityStatus string

const (
	CityComplete CityStatus = "complete"
	CityPartial  CityStatus = "partial"
	CitySkipped  CityStatus = "skipped"
)

// CityResult records what happened for one city.
type CityResult struct {
	City     string
	Status   CityStatus
	Days     []forecast.DailySummary
	Archived []string
	Failures []string
}

// RunReport is returned by Run for logging, metrics and tests.
type RunReport struct {
	Bucket        string
	BucketCreated bool
	Cities        []CityResult
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, string, time.Duration) {}
func (nopRecorder) ObserveArchive(string, string)              {}
func (nopRecorder) ObserveCity(string)                         {}
