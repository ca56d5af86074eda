package httpclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	trackerReports  *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waystar_client_requests_total",
				Help: "Total API requests by method and HTTP status (0 when no response)",
			},
			[]string{"method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waystar_client_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 15},
			},
			[]string{"method"},
		),
		trackerReports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waystar_tracker_reports_total",
				Help: "Browse duration reports by result (success, failure, beacon, dropped)",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) observeRequest(method string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(latency.Seconds())
}

// TrackerReport counts one browse report outcome.
func (m *Metrics) TrackerReport(result string) {
	if m == nil {
		return
	}
	m.trackerReports.WithLabelValues(result).Inc()
}
