package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client side request counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil
// reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "passwords",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "action", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "passwords",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "action"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Middleware returns the transport middleware feeding m.
func (m *Metrics) Middleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		next = transport(next)
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			action := Action(r.URL.Path)
			start := time.Now()

			resp, err := next.RoundTrip(r)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			m.duration.WithLabelValues(r.Method, action).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(r.Method, action, status).Inc()
			return resp, err
		})
	}
}
