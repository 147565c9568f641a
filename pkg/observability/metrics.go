// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the aufgabe task service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for CRUD request latencies,
// ranging from 1ms to 10s.
var APIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10}

var (
	// RequestsTotal counts all HTTP requests by method, route, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aufgabe_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aufgabe_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthFailuresTotal counts rejected requests by reason
	// (no_token, bad_token, unknown_subject, bad_credentials).
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aufgabe_auth_failures_total",
			Help: "Authentication failures",
		},
		[]string{"reason"},
	)

	// TasksCreatedTotal counts successfully created tasks.
	TasksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aufgabe_tasks_created_total",
			Help: "Tasks created",
		},
	)

	// UsersRegisteredTotal counts successful registrations.
	UsersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aufgabe_users_registered_total",
			Help: "Users registered",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		TasksCreatedTotal,
		UsersRegisteredTotal,
	)
}
