package driven

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// TranscriptProvider fetches transcript segments for a video from an
// external source. Providers are tried in order; a provider that has no
// transcript for a video returns domain.ErrNoTranscript so the next one
// gets a chance.
type TranscriptProvider interface {
	// Name identifies the provider in logs and cache filenames.
	Name() string

	// Fetch returns the transcript segments for a video.
	Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}

// TranscriptCache is the durable on-disk transcript store. Transcripts
// are expensive to regenerate (they cost external API calls), so nothing
// in this repository ever deletes from it - including the reset operation,
// which only observes whether the cache directory exists.
type TranscriptCache interface {
	// Get returns cached segments for a video. The boolean reports a
	// cache hit; a miss is not an error.
	Get(videoID string) ([]domain.TranscriptSegment, bool, error)

	// Put writes segments for a video. Existing entries are overwritten
	// only by a fresh fetch of the same video, never removed.
	Put(videoID string, segments []domain.TranscriptSegment) error

	// Dir returns the cache directory path.
	Dir() string

	// Watch emits video IDs whose transcript files appear or change in
	// the cache directory, until the context is cancelled. Used by
	// ingest --watch to pick up externally dropped transcripts.
	Watch(ctx context.Context) (<-chan string, error)
}
