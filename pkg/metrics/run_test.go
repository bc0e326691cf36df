package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRunMetricsCounters(t *testing.T) {
	m := NewRunMetrics("weatherly")

	m.ObserveFetch("weather", OutcomeSuccess, 120*time.Millisecond)
	m.ObserveFetch("weather", OutcomeFailure, time.Second)
	m.ObserveFetch("forecast", OutcomeSuccess, 80*time.Millisecond)
	m.ObserveArchive("weather", OutcomeSuccess)
	m.ObserveCity(OutcomeSkipped)

	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("weather", OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("weather", OutcomeFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ArchiveTotal.WithLabelValues("weather", OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CitiesTotal.WithLabelValues(OutcomeSkipped)))
	require.Equal(t, 2, testutil.CollectAndCount(m.FetchDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := NewRunMetrics("weatherly")
	m.ObserveArchive("forecast", OutcomeFailure)
	m.MarkFinished(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "weatherly.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `weatherly_archive_writes_total{kind="forecast",outcome="failure"} 1`)
	require.Contains(t, string(data), "weatherly_last_run_timestamp_seconds 1.7e+09")
}

func TestWriteTextfileDisabled(t *testing.T) {
	require.NoError(t, NewRunMetrics("weatherly").WriteTextfile(""))
}

func TestRegistriesAreIsolated(t *testing.T) {
	first := NewRunMetrics("weatherly")
	second := NewRunMetrics("weatherly")
	first.ObserveCity(OutcomeSuccess)
	first.ObserveCity(OutcomePartial)

	count, err := testutil.GatherAndCount(first.Gatherer(), "weatherly_cities_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(second.Gatherer(), "weatherly_cities_total")
	require.NoError(t, err)
	require.Zero(t, count)
}
