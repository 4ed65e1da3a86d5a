package driving

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// ChannelService manages the set of tracked channels.
type ChannelService interface {
	// Track adds a channel by ID, fetching its metadata from the
	// platform. Tracking an already-tracked channel refreshes metadata.
	Track(ctx context.Context, channelID string) (*domain.Channel, error)

	// Get retrieves a tracked channel by ID.
	Get(ctx context.Context, channelID string) (*domain.Channel, error)

	// List returns all tracked channels.
	List(ctx context.Context) ([]domain.Channel, error)
}
