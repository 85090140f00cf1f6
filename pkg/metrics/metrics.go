// Package metrics exposes Prometheus counters for mixer sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	ResultOK             = "ok"
	ResultExhausted      = "exhausted"
	ResultSpaceExhausted = "space_exhausted"
	ResultNotReady       = "not_ready"
	ResultMissingColumns = "missing_columns"
	ResultError          = "error"
)

// Recorder receives session events. Implementations must be safe for concurrent use.
type Recorder interface {
	Generation(result string)
	DataLoad(result string)
	HistoryCleared()
	Archived(result string)
}

// Noop discards every event.
type Noop struct{}

func (Noop) Generation(string) {}
func (Noop) DataLoad(string)   {}
func (Noop) HistoryCleared()   {}
func (Noop) Archived(string)   {}

// Metrics is the Prometheus Recorder.
type Metrics struct {
	generations *prometheus.CounterVec
	dataLoads   *prometheus.CounterVec
	clears      prometheus.Counter
	archives    *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses a fresh registry,
// which keeps tests independent of the global default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptmix_generations_total",
			Help: "Generation requests by result",
		}, []string{"result"}),
		dataLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptmix_data_loads_total",
			Help: "Data source loads by result",
		}, []string{"result"}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptmix_history_clears_total",
			Help: "History clear operations",
		}),
		archives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptmix_archives_total",
			Help: "History archive uploads by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.generations, m.dataLoads, m.clears, m.archives)
	return m
}

func (m *Metrics) Generation(result string) { m.generations.WithLabelValues(result).Inc() }
func (m *Metrics) DataLoad(result string)   { m.dataLoads.WithLabelValues(result).Inc() }
func (m *Metrics) HistoryCleared()          { m.clears.Inc() }
func (m *Metrics) Archived(result string)   { m.archives.WithLabelValues(result).Inc() }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
