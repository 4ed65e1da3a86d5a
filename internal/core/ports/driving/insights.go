package driving

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// InsightsService aggregates mention data into entity and channel views.
type InsightsService interface {
	// EntityInsights returns mention counts, sentiment and channel
	// breakdown for a named entity of the given kind.
	EntityInsights(ctx context.Context, kind domain.EntityKind, name string) (*domain.EntityInsights, error)

	// ChannelInsights returns top entities and sentiment breakdown for a
	// channel.
	ChannelInsights(ctx context.Context, channelID string) (*domain.ChannelInsights, error)

	// Dashboard returns the precomputed dashboard entry for an entity,
	// computing and caching it on a miss.
	Dashboard(ctx context.Context, kind domain.DashboardKind, name string) (*domain.DashboardEntry, error)
}
