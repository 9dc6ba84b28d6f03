package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nervecord_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nervecord_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_messages_sent_total",
			Help: "Total messages accepted",
		},
	)

	RepliesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_replies_sent_total",
			Help: "Total replies accepted",
		},
	)

	MessagesBurned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_messages_burned_total",
			Help: "Total messages burned (read-and-delete)",
		},
	)

	MessagesExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_messages_expired_total",
			Help: "Total messages removed by the expiry sweep",
		},
	)

	BotsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_bots_registered_total",
			Help: "Total bot registrations (including replacements)",
		},
	)

	HeartbeatsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_heartbeats_received_total",
			Help: "Total heartbeats received",
		},
	)

	LarvaeRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_larvae_registered_total",
			Help: "Total larva registrations",
		},
	)

	LogEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nervecord_log_entries_total",
			Help: "Total activity log entries appended",
		},
	)

	// Auth metrics
	AuthRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nervecord_auth_rejections_total",
			Help: "Total requests rejected by the authorization gate",
		},
		[]string{"reason"}, // "unauthorized" or "forbidden"
	)
)
