package driven

import (
	"context"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// ChannelStore persists tracked channels.
type ChannelStore interface {
	// Save stores or updates a channel (upsert by ID).
	Save(ctx context.Context, channel domain.Channel) error

	// Get retrieves a channel by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Channel, error)

	// List returns all tracked channels.
	List(ctx context.Context) ([]domain.Channel, error)
}

// VideoStore persists ingested videos and their transcript segments.
type VideoStore interface {
	// Save stores or updates a video (upsert by ID).
	Save(ctx context.Context, video domain.Video) error

	// Get retrieves a video by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Video, error)

	// Exists reports whether a video is already stored. Ingestion uses
	// this to skip videos without loading them.
	Exists(ctx context.Context, id string) (bool, error)

	// ListByChannel returns all stored videos for a channel.
	ListByChannel(ctx context.Context, channelID string) ([]domain.Video, error)

	// SaveSegments replaces the stored transcript segments for a video.
	SaveSegments(ctx context.Context, videoID string, segments []domain.TranscriptSegment) error

	// GetSegments returns the stored transcript segments for a video.
	GetSegments(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)

	// SearchVideos matches videos whose title or summary contains the
	// query (case-insensitive), newest first.
	SearchVideos(ctx context.Context, query string, channelIDs []string, limit int) ([]domain.Video, error)

	// SearchSegments matches transcript segments containing the query.
	SearchSegments(ctx context.Context, query string, channelIDs []string, limit int) ([]domain.SegmentHit, error)
}

// EntityStore persists brands, products and sponsors.
type EntityStore interface {
	// Upsert inserts the entity if its normalised name is new for its
	// kind and returns the row ID either way.
	Upsert(ctx context.Context, entity domain.Entity) (int64, error)

	// GetByName looks an entity up by kind and normalised name.
	// Returns domain.ErrNotFound when absent.
	GetByName(ctx context.Context, kind domain.EntityKind, normalised string) (*domain.Entity, error)

	// Get retrieves an entity by row ID.
	Get(ctx context.Context, id int64) (*domain.Entity, error)

	// ListByKind returns entities of one kind, alphabetical by name.
	ListByKind(ctx context.Context, kind domain.EntityKind) ([]domain.Entity, error)

	// SuggestNames returns display names of entities whose name has the
	// given case-insensitive prefix.
	SuggestNames(ctx context.Context, kind domain.EntityKind, prefix string, limit int) ([]string, error)
}

// MentionStore persists entity mentions and serves mention aggregates.
type MentionStore interface {
	// Save stores a mention row.
	Save(ctx context.Context, mention domain.Mention) error

	// InsightsFor aggregates all mentions of one entity.
	InsightsFor(ctx context.Context, entityID int64) (*domain.EntityInsights, error)

	// TopForChannel returns a channel's most mentioned entities of a kind.
	TopForChannel(ctx context.Context, channelID string, kind domain.EntityKind, limit int) ([]domain.EntityMentionCount, error)

	// DeleteByChannel removes all mention rows for a channel and returns
	// how many were removed. Used by the scoped channel reset.
	DeleteByChannel(ctx context.Context, channelID string) (int, error)
}

// ExtractionCacheStore persists per-video LLM extraction results.
type ExtractionCacheStore interface {
	// Get returns the cached entry for a video, or domain.ErrNotFound.
	Get(ctx context.Context, videoID string) (*domain.ExtractionCacheEntry, error)

	// Put stores or replaces the cached entry for a video.
	Put(ctx context.Context, entry domain.ExtractionCacheEntry) error

	// DeleteByVideos removes cached entries for the given videos and
	// returns how many were removed.
	DeleteByVideos(ctx context.Context, videoIDs []string) (int, error)
}

// SearchLogStore records queries for autocomplete and trending lists.
type SearchLogStore interface {
	// Record logs one use of a query, incrementing its count.
	Record(ctx context.Context, query string, queryType domain.QueryType, at time.Time) error

	// Suggest returns logged queries with the given prefix, most used first.
	Suggest(ctx context.Context, prefix string, limit int) ([]domain.SearchQuery, error)

	// Trending returns the most used queries overall.
	Trending(ctx context.Context, limit int) ([]domain.SearchQuery, error)
}

// DashboardCacheStore persists precomputed dashboard payloads.
type DashboardCacheStore interface {
	// Get returns the cached payload for a key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) (*domain.DashboardEntry, error)

	// Put stores or replaces a cached payload.
	Put(ctx context.Context, entry domain.DashboardEntry) error
}

// ChannelWipeStore removes one channel's derived rows in a single
// transaction. Implemented by the SQLite store for the scoped reset.
type ChannelWipeStore interface {
	// WipeChannel deletes the channel's videos, segments, mentions and
	// extraction-cache rows. The channel row itself is kept so the next
	// ingest refreshes rather than re-creates it.
	WipeChannel(ctx context.Context, channelID string) (*domain.ChannelResetReport, error)
}
