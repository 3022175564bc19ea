package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/studentledger/internal/domain"
)

const namespace = "studentledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntriesCreated      *prometheus.CounterVec
	TransfersCreated    prometheus.Counter
	Deletions           *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec

	// Report metrics
	ReportsRendered prometheus.Counter
	ReportDuration  prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_created_total",
				Help:      "Total ledger records written, by kind and allocation",
			},
			[]string{"kind", "allocation"},
		),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Total general-to-tuition transfers recorded",
		}),
		Deletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deletions_total",
				Help:      "Total delete requests, by whether the record existed",
			},
			[]string{"found"},
		),
		PersistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_failures_total",
				Help:      "Total store failures by operation",
			},
			[]string{"operation"},
		),

		ReportsRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rendered_total",
			Help:      "Total PDF reports rendered",
		}),
		ReportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_render_duration_seconds",
			Help:      "Duration of PDF report rendering",
			Buckets:   prometheus.DefBuckets,
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),
	}
}

// Recorder adapts Metrics to usecase.Recorder.
type Recorder struct {
	m *Metrics
}

// NewRecorder creates a Recorder backed by m.
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

func (r *Recorder) EntriesCreated(transactions []*domain.Transaction) {
	for _, t := range transactions {
		r.m.EntriesCreated.WithLabelValues(string(t.Kind), t.AllocationLabel()).Inc()
	}
}

func (r *Recorder) TransferCreated() {
	r.m.TransfersCreated.Inc()
}

func (r *Recorder) TransactionDeleted(found bool) {
	r.m.Deletions.WithLabelValues(strconv.FormatBool(found)).Inc()
}

func (r *Recorder) PersistenceFailed(operation string) {
	r.m.PersistenceFailures.WithLabelValues(operation).Inc()
}
