package driven

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// MetadataClient fetches channel and video metadata from the hosting
// platform's data API.
type MetadataClient interface {
	// ChannelDetails returns a channel's current metadata.
	ChannelDetails(ctx context.Context, channelID string) (*domain.Channel, error)

	// LatestVideoIDs returns up to limit recent upload IDs for a channel,
	// newest first.
	LatestVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error)

	// VideoDetails returns a video's current metadata. The returned
	// video carries no analysis fields; ingestion fills those in.
	VideoDetails(ctx context.Context, videoID string) (*domain.Video, error)
}
