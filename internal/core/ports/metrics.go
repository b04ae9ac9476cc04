package ports

import (
	"time"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

// Metrics receives the core's operational signals.
type Metrics interface {
	SessionTransition(kind domain.EventKind)
	StaleCompletionDropped(kind domain.EventKind)
	EnrichmentFailed()
	DonationsDropped(n int)
	APIRequest(op string, status int, elapsed time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) SessionTransition(domain.EventKind) {}
func (NopMetrics) StaleCompletionDropped(domain.EventKind) {}
func (NopMetrics) EnrichmentFailed() {}
func (NopMetrics) DonationsDropped(int) {}
func (NopMetrics) APIRequest(string, int, time.Duration) {}
