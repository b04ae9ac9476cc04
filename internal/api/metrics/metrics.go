// Package metrics defines the client's Prometheus metrics and the Recorder
// that feeds them from the core services.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

const namespace = "donatehub_client"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts committed session events.
// Label:
//   - kind: the event kind (e.g. "login_succeeded", "logged_out")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of committed session transitions, by event kind.",
	},
	[]string{"kind"},
)

// StaleCompletionsTotal counts completions discarded because a logout
// happened while they were in flight.
var StaleCompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_stale_completions_total",
		Help:      "Total number of credential completions dropped after a logout.",
	},
	[]string{"kind"},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

var EnrichmentFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaign_enrichment_failures_total",
		Help:      "Total number of campaign lookups that failed during summary enrichment.",
	},
)

var DonationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_dropped_total",
		Help:      "Total number of malformed donation records discarded at the fetch boundary.",
	},
)

// ── Remote API metrics ────────────────────────────────────────────────────────

// APIRequestDuration measures calls to the remote DonateHub API.
// Labels:
//   - op: client operation (e.g. "donations.donor")
//   - status: HTTP status code, or "error" when no response arrived
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of requests to the remote API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "status"},
)

// Recorder implements ports.Metrics on top of the package metrics.
type Recorder struct{}

var _ ports.Metrics = Recorder{}

func (Recorder) SessionTransition(kind domain.EventKind) {
	SessionTransitionsTotal.WithLabelValues(string(kind)).Inc()
}

func (Recorder) StaleCompletionDropped(kind domain.EventKind) {
	StaleCompletionsTotal.WithLabelValues(string(kind)).Inc()
}

func (Recorder) EnrichmentFailed() {
	EnrichmentFailuresTotal.Inc()
}

func (Recorder) DonationsDropped(n int) {
	DonationsDroppedTotal.Add(float64(n))
}

func (Recorder) APIRequest(op string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestDuration.WithLabelValues(op, label).Observe(elapsed.Seconds())
}
