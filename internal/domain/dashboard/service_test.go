package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherly/internal/domain/archive"
	"github.com/yanqian/weatherly/internal/domain/forecast"
	"github.com/yanqian/weatherly/internal/infra/openweather"
	"github.com/yanqian/weatherly/internal/infra/storage"
	apperrors "github.com/yanqian/weatherly/pkg/errors"
	"github.com/yanqian/weatherly/pkg/metrics"
)

const jan15UTC = int64(1705276800)

func TestRunProcessesAllCities(t *testing.T) {
	client := newStubClient()
	arch := &stubArchiver{}
	var out bytes.Buffer

	svc := newTestService(client, arch, nil, &out)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Cities, 3)
	for i, city := range DefaultCities {
		require.Equal(t, city, report.Cities[i].City)
		require.Equal(t, CityComplete, report.Cities[i].Status)
		require.Len(t, report.Cities[i].Days, 2)
	}
	require.Equal(t, []string{"Lagos", "New York", "Doha"}, client.currentCalls)
	require.Equal(t, []string{"Lagos", "New York", "Doha"}, client.forecastCalls)
	require.Len(t, arch.stored, 6)
	require.Equal(t, archive.KindWeather, arch.stored[0].kind)
	require.Equal(t, archive.KindForecast, arch.stored[1].kind)

	text := out.String()
	require.Contains(t, text, "Bucket weather-archive exists")
	require.Contains(t, text, "=== Weather Report for New York ===")
	require.Contains(t, text, "Successfully saved forecast data for Doha to weather-archive")
}

func TestRunSkipsCityWhenCurrentFetchFails(t *testing.T) {
	client := newStubClient()
	client.currentErr["New York"] = apperrors.Wrap(apperrors.CodeTransport, "GET /weather returned status=500", nil)
	store := storage.NewMemoryStore("weather-archive")
	writer := archive.NewWriter(store, archive.RunID("run-1"), discardLogger())
	rec := metrics.NewRunMetrics("weatherly")
	var out bytes.Buffer

	svc := NewService(Config{Cities: DefaultCities, Location: time.UTC}, client, writer, nil, rec, &out, discardLogger())
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, CitySkipped, report.Cities[1].Status)
	require.Empty(t, report.Cities[1].Archived)
	require.Equal(t, []string{"Lagos", "New York", "Doha"}, client.currentCalls)
	require.Equal(t, []string{"Lagos", "Doha"}, client.forecastCalls)
	require.Equal(t, CityComplete, report.Cities[2].Status)

	keys := store.Keys()
	require.Len(t, keys, 4)
	for _, key := range keys {
		require.NotContains(t, key, "New York")
	}
	require.True(t, report.BucketCreated)
	require.Contains(t, out.String(), "Failed to fetch current weather data for New York")
	require.NotContains(t, out.String(), "Failed to fetch forecast data for New York")
}

func TestRunSkipsCityWhenCurrentPayloadIsEmpty(t *testing.T) {
	var forecastHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			forecastHits++
			_, _ = w.Write([]byte(`{"list":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := openweather.NewClient(openweather.Options{BaseURL: srv.URL, APIKey: "key"})
	arch := &stubArchiver{}
	var out bytes.Buffer

	svc := NewService(Config{Cities: []string{"Lagos"}, Location: time.UTC}, client, arch, nil, nil, &out, discardLogger())
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, CitySkipped, report.Cities[0].Status)
	require.Zero(t, forecastHits)
	require.Empty(t, arch.stored)
	require.Contains(t, out.String(), "Failed to fetch current weather data for Lagos")
}

func TestRunForecastFailureKeepsCurrent(t *testing.T) {
	client := newStubClient()
	client.forecastErr["Doha"] = errors.New("timeout")
	arch := &stubArchiver{}
	var out bytes.Buffer

	report, err := newTestService(client, arch, nil, &out).Run(context.Background())
	require.NoError(t, err)

	doha := report.Cities[2]
	require.Equal(t, CityPartial, doha.Status)
	require.Empty(t, doha.Days)
	require.Len(t, doha.Archived, 1)
	require.Equal(t, "weather-data/Doha.json", doha.Archived[0])
	require.Len(t, arch.stored, 5)
	require.Contains(t, out.String(), "Failed to fetch forecast data for Doha")
}

func TestRunAppendsExtraCities(t *testing.T) {
	client := newStubClient()
	cities := &stubCitySource{cities: []string{" Tokyo ", "", "Berlin"}}

	report, err := newTestService(client, &stubArchiver{}, cities, io.Discard).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Cities, 5)
	require.Equal(t, []string{"Lagos", "New York", "Doha", "Tokyo", "Berlin"}, client.currentCalls)
}

func TestRunIgnoresCitySourceError(t *testing.T) {
	client := newStubClient()
	cities := &stubCitySource{err: io.ErrUnexpectedEOF}

	report, err := newTestService(client, &stubArchiver{}, cities, io.Discard).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Cities, 3)
}

func TestRunContinuesWhenStorageFails(t *testing.T) {
	client := newStubClient()
	arch := &stubArchiver{ensureErr: errors.New("forbidden"), storeErr: errors.New("access denied")}
	var out bytes.Buffer

	report, err := newTestService(client, arch, nil, &out).Run(context.Background())
	require.NoError(t, err)

	require.False(t, report.BucketCreated)
	require.Len(t, report.Cities, 3)
	for _, city := range report.Cities {
		require.Equal(t, CityComplete, city.Status)
		require.Empty(t, city.Archived)
		require.Len(t, city.Failures, 2)
	}
	require.Contains(t, out.String(), "Error creating bucket weather-archive: forbidden")
	require.Contains(t, out.String(), "Error saving weather data for Lagos: access denied")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	client := newStubClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestService(client, &stubArchiver{}, nil, io.Discard).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Cities)
	require.Empty(t, client.currentCalls)
}

func TestRunRecordsMetrics(t *testing.T) {
	client := newStubClient()
	client.currentErr["Lagos"] = errors.New("boom")
	client.forecastErr["Doha"] = errors.New("boom")
	rec := &stubRecorder{}

	svc := NewService(Config{Cities: DefaultCities, Location: time.UTC}, client, &stubArchiver{}, nil, rec, io.Discard, discardLogger())
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{metrics.OutcomeSkipped, metrics.OutcomeSuccess, metrics.OutcomePartial}, rec.cities)
	require.Equal(t, []string{
		"weather:failure",
		"weather:success", "forecast:success",
		"weather:success", "forecast:failure",
	}, rec.fetches)
	require.Equal(t, []string{"weather:success", "forecast:success", "weather:success"}, rec.archives)
}

func newTestService(client *stubClient, arch *stubArchiver, cities CitySource, out io.Writer) Service {
	return NewService(Config{Cities: DefaultCities, Units: "imperial", Location: time.UTC}, client, arch, cities, nil, out, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubClient struct {
	currentErr    map[string]error
	forecastErr   map[string]error
	currentCalls  []string
	forecastCalls []string
}

func newStubClient() *stubClient {
	return &stubClient{currentErr: map[string]error{}, forecastErr: map[string]error{}}
}

func (s *stubClient) FetchCurrent(ctx context.Context, location string) (forecast.Current, error) {
	s.currentCalls = append(s.currentCalls, location)
	if err := s.currentErr[location]; err != nil {
		return forecast.Current{}, err
	}
	return forecast.Current{
		City:         location,
		Temperature:  72.5,
		FeelsLike:    70.1,
		Humidity:     40,
		Descriptions: []string{"clear sky"},
		RawJSON:      []byte(`{"name":"` + location + `"}`),
	}, nil
}

func (s *stubClient) FetchForecast(ctx context.Context, location string) (forecast.Series, error) {
	s.forecastCalls = append(s.forecastCalls, location)
	if err := s.forecastErr[location]; err != nil {
		return forecast.Series{}, err
	}
	samples := []forecast.Sample{
		{Timestamp: jan15UTC, Temperature: 60, TempMax: 60, TempMin: 60, Humidity: 50, WindSpeed: 3, Descriptions: []string{"clear sky"}},
		{Timestamp: jan15UTC + 86400, Temperature: 65, TempMax: 65, TempMin: 65, Humidity: 55, WindSpeed: 4, Descriptions: []string{"light rain"}},
	}
	return forecast.Series{Samples: samples, RawJSON: []byte(`{"list":[]}`)}, nil
}

type storeCall struct {
	location string
	kind     archive.Kind
	record   []byte
}

type stubArchiver struct {
	stored    []storeCall
	storeErr  error
	ensureErr error
}

func (s *stubArchiver) EnsureContainer(ctx context.Context) (bool, error) {
	return false, s.ensureErr
}

func (s *stubArchiver) Store(ctx context.Context, record []byte, location string, kind archive.Kind) (archive.StoredObject, error) {
	if s.storeErr != nil {
		return archive.StoredObject{}, s.storeErr
	}
	s.stored = append(s.stored, storeCall{location: location, kind: kind, record: record})
	return archive.StoredObject{Key: string(kind) + "-data/" + location + ".json"}, nil
}

func (s *stubArchiver) Bucket() string {
	return "weather-archive"
}

type stubCitySource struct {
	cities []string
	err    error
}

func (s *stubCitySource) ExtraCities(ctx context.Context) ([]string, error) {
	return s.cities, s.err
}

type stubRecorder struct {
	fetches  []string
	archives []string
	cities   []string
}

func (s *stubRecorder) ObserveFetch(kind, outcome string, _ time.Duration) {
	s.fetches = append(s.fetches, kind+":"+outcome)
}

func (s *stubRecorder) ObserveArchive(kind, outcome string) {
	s.archives = append(s.archives, kind+":"+outcome)
}

func (s *stubRecorder) ObserveCity(outcome string) {
	s.cities = append(s.cities, outcome)
}
