package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// View names used as the "view" label.
const (
	ViewOutcomes       = "outcomes"
	ViewScatter        = "scatter"
	ViewPayloadSummary = "payload_summary"
	ViewBooster        = "booster"
)

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	queries      *prometheus.CounterVec
	insufficient *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	records      prometheus.Gauge
	wsClients    prometheus.Gauge
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_query_total",
			Help: "Derived view computations, by view.",
		}, []string{"view"}),
		insufficient: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_query_insufficient_total",
			Help: "Computations that found no data for the selection, by view.",
		}, []string{"view"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchdash_query_duration_seconds",
			Help:    "Time spent computing a derived view.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"view"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launchdash_dataset_records",
			Help: "Launch records in the loaded dataset.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launchdash_ws_clients",
			Help: "Connected websocket clients.",
		}),
	}
	m.reg.MustRegister(m.queries, m.insufficient, m.duration, m.records, m.wsClients)
	return m
}

// Observe records one computation of view that started at start.
// insufficient marks a computation that fell back to the no-data message.
// A nil Metrics is a no-op so callers need not guard.
func (m *Metrics) Observe(view string, start time.Time, insufficient bool) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(view).Inc()
	m.duration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	if insufficient {
		m.insufficient.WithLabelValues(view).Inc()
	}
}

// SetRecords sets the dataset size gauge.
func (m *Metrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
}

// ClientConnected and ClientDisconnected track the websocket client gauge.
func (m *Metrics) ClientConnected() {
	if m != nil {
		m.wsClients.Inc()
	}
}

func (m *Metrics) ClientDisconnected() {
	if m != nil {
		m.wsClients.Dec()
	}
}

// ServeHTTP gathers the registry and writes it in the format negotiated from
// the request's Accept header (Prometheus text by default).
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	mfs, err := m.reg.Gather()
	if err != nil {
		slog.Error("metrics: gather failed", "err", err)
		http.Error(w, "gather failed", http.StatusInternalServerError)
		return
	}

	format := expfmt.Negotiate(r.Header)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			slog.Warn("metrics: encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
	if c, ok := enc.(expfmt.Closer); ok {
		c.Close() //nolint:errcheck
	}
}
