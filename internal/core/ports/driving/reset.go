package driving

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// ResetService returns the database to a known-clean state while
// preserving the transcript cache on disk.
type ResetService interface {
	// Reset deletes the database file and re-initialises the schema.
	// The transcript cache is never touched. Reset is idempotent; running
	// it against a missing database still initialises a fresh schema.
	Reset(ctx context.Context, opts domain.ResetOptions) (*domain.ResetReport, error)

	// ResetChannel removes a single channel's derived data (videos,
	// segments, mentions, cached extractions) without dropping the
	// database or affecting other channels.
	ResetChannel(ctx context.Context, channelID string) (*domain.ChannelResetReport, error)
}
