package driving

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// IngestOrchestrator coordinates fetching, transcribing and analysing
// videos for tracked channels.
type IngestOrchestrator interface {
	// IngestChannel fetches the latest uploads for a channel and runs the
	// full pipeline on each video that has not been ingested yet.
	IngestChannel(ctx context.Context, channelID string, limit int) (*IngestStatus, error)

	// IngestVideo runs the pipeline for a single video. Already-ingested
	// videos are skipped unless force is set.
	IngestVideo(ctx context.Context, videoID string, force bool) error

	// IngestAll runs IngestChannel for every tracked channel.
	IngestAll(ctx context.Context, limit int) (*IngestStatus, error)

	// Watch blocks watching the transcript cache directory and ingests
	// videos as new transcript files appear. Returns when the context is
	// cancelled.
	Watch(ctx context.Context) error
}

// IngestStatus summarises the outcome of an ingest run.
type IngestStatus struct {
	// VideosSeen is the number of candidate videos considered.
	VideosSeen int

	// VideosIngested is the number of videos fully processed this run.
	VideosIngested int

	// VideosSkipped counts videos skipped because they already exist.
	VideosSkipped int

	// CacheHits counts transcripts served from the local cache.
	CacheHits int

	// ExtractionCacheHits counts analyses reused from the extraction cache.
	ExtractionCacheHits int

	// Errors holds per-video failures that did not abort the run.
	Errors []domain.IngestError
}
