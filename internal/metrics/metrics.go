package metrics

import (
	"net/http"

	"github.com/ErlanBelekov/authapi/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authapi",
		Name:      "registrations_total",
		Help:      "Registration attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authapi",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	TokenVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authapi",
		Name:      "token_verifications_total",
		Help:      "Bearer token checks performed by the auth middleware, by outcome.",
	}, []string{"outcome"})

	PasswordHashDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "authapi",
		Name:      "password_hash_duration_seconds",
		Help:      "Time spent deriving a bcrypt hash.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "authapi",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authapi",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		TokenVerificationsTotal,
		PasswordHashDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer exposes /metrics and the liveness/readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /health/live", checker.LivenessHandler)
	mux.HandleFunc("GET /health/ready", checker.ReadinessHandler)
	return &http.Server{Addr: addr, Handler: mux}
}
