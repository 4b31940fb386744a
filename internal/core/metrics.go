package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes recorded on leaderboard_loads_total.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeBusy    = "busy"
)

// Metrics holds the service's Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	rows         *prometheus.GaugeVec
	renders      *prometheus.CounterVec
	inFlight     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaderboard",
			Name:      "loads_total",
			Help:      "Leaderboard loads by source and outcome.",
		}, []string{"source", "outcome"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leaderboard",
			Name:      "load_duration_seconds",
			Help:      "Time to fetch and parse a leaderboard.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"source"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "leaderboard",
			Name:      "rows",
			Help:      "Records in the most recent successful load.",
		}, []string{"source"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaderboard",
			Name:      "renders_total",
			Help:      "Projections produced, by status.",
		}, []string{"status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leaderboard",
			Name:      "loads_in_flight",
			Help:      "Loads currently holding a limiter slot.",
		}),
	}

	for _, c := range []prometheus.Collector{m.loads, m.loadDuration, m.rows, m.renders, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeLoad(source, outcome string, elapsed time.Duration, rows int) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(source, outcome).Inc()
	if outcome == OutcomeBusy {
		return
	}
	m.loadDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		m.rows.WithLabelValues(source).Set(float64(rows))
	}
}

func (m *Metrics) observeRender(status string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(status).Inc()
}

func (m *Metrics) loadStarted() {
	if m != nil {
		m.inFlight.Inc()
	}
}

func (m *Metrics) loadFinished() {
	if m != nil {
		m.inFlight.Dec()
	}
}
