package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

const defaultEnrichConcurrency = 4

// EnrichSummaries replaces each summary's denormalized campaign reference with
// the full campaign. Lookups run concurrently, at most concurrency at a time.
// A failed lookup keeps the reference it had; enrichment never fails.
func EnrichSummaries(ctx context.Context, lookup ports.CampaignLookup, summaries []domain.CampaignSummary, concurrency int, metrics ports.Metrics, log zerolog.Logger) []domain.CampaignSummary {
	if len(summaries) == 0 || lookup == nil {
		return summaries
	}
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	out := make([]domain.CampaignSummary, len(summaries))
	copy(out, summaries)

	// Lookups never return an error to the group, so one failure does not
	// cancel the others.
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range out {
		id := out[i].Campaign.ID
		if id == "" {
			continue
		}
		g.Go(func() error {
			c, err := lookup.GetCampaign(ctx, id)
			if err != nil || c == nil {
				metrics.EnrichmentFailed()
				log.Warn().Err(err).Str("campaign_id", id).Msg("campaign lookup failed, keeping reference")
				return nil
			}
			out[i].Campaign = *c
			return nil
		})
	}
	_ = g.Wait()
	return out
}
