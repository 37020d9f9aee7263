package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsProcessed counts handled bot commands.
	CommandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartshopbot_commands_processed_total",
			Help: "The total number of bot commands processed.",
		},
		[]string{"command"},
	)

	// CommandErrors counts commands whose handler returned an error.
	CommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartshopbot_command_errors_total",
			Help: "The total number of bot commands that failed.",
		},
		[]string{"command"},
	)

	// CommandDuration is a histogram of command handling time.
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartshopbot_command_duration_seconds",
			Help:    "A histogram of the command handling duration.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	// CollaboratorFailures counts failed external calls (llm, ocr).
	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartshopbot_collaborator_failures_total",
			Help: "The total number of failed external collaborator calls.",
		},
		[]string{"collaborator"},
	)

	// UpdatesThrottled counts inbound updates dropped by the rate limiter.
	UpdatesThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smartshopbot_updates_throttled_total",
			Help: "The total number of inbound updates dropped by rate limiting.",
		},
	)
)
