package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Generation(metrics.ResultOK)
	m.Generation(metrics.ResultOK)
	m.Generation(metrics.ResultExhausted)
	m.DataLoad(metrics.ResultMissingColumns)
	m.HistoryCleared()
	m.Archived(metrics.ResultOK)

	count, err := testutil.GatherAndCount(reg, "promptmix_generations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per result label")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `promptmix_generations_total{result="ok"} 2`)
	assert.Contains(t, string(body), `promptmix_data_loads_total{result="missing_columns"} 1`)
	assert.Contains(t, string(body), "promptmix_history_clears_total 1")
}

func TestNoop(t *testing.T) {
	var r metrics.Recorder = metrics.Noop{}
	assert.NotPanics(t, func() {
		r.Generation(metrics.ResultOK)
		r.DataLoad(metrics.ResultOK)
		r.HistoryCleared()
		r.Archived(metrics.ResultError)
	})
}
