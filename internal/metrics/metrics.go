package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"foamparty/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const offersPrefix = "/api/v1/offers/"

type Metrics struct {
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	submissionsTotal *prometheus.CounterVec
	channelsTotal    *prometheus.CounterVec
	channelDuration  *prometheus.HistogramVec
}

// New registers the collectors on reg. Passing prometheus.DefaultRegisterer
// together with prometheus.DefaultGatherer exposes them next to the Go
// runtime collectors.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_submissions_total",
				Help: "Total number of booking submissions by final state",
			},
			[]string{"state"}, // submitted, failed
		),

		channelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_channel_attempts_total",
				Help: "Total number of delivery channel attempts",
			},
			[]string{"channel", "result"}, // success, failure
		),

		channelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lead_channel_duration_seconds",
				Help:    "Delivery channel duration in seconds",
				Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"channel"},
		),
	}
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) SubmissionFinished(state model.SubmissionState) {
	m.submissionsTotal.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) ChannelFinished(channel string, took time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.channelsTotal.WithLabelValues(channel, result).Inc()
	m.channelDuration.WithLabelValues(channel).Observe(took.Seconds())
}

// Middleware records request counts and latency per endpoint.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		endpoint := endpointLabel(r.URL.Path)
		m.httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(wrapped.statusCode)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// endpointLabel collapses per-visitor paths so the label set stays bounded.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, offersPrefix) {
		return offersPrefix + ":visitor"
	}
	return path
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
