package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// mentionStore implements driven.MentionStore.
type mentionStore struct {
	store *Store
}

var _ driven.MentionStore = (*mentionStore)(nil)

// Save stores a mention row.
func (s *mentionStore) Save(ctx context.Context, mention domain.Mention) error {
	if mention.ID == "" || mention.EntityID == 0 {
		return domain.ErrInvalidInput
	}
	if mention.FirstSeen.IsZero() {
		mention.FirstSeen = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO mentions (id, entity_id, kind, video_id, channel_id, count, sentiment_score, first_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			count = excluded.count,
			sentiment_score = excluded.sentiment_score
	`, mention.ID, mention.EntityID, string(mention.Kind), mention.VideoID,
		mention.ChannelID, mention.Count, mention.SentimentScore, mention.FirstSeen)
	if err != nil {
		return fmt.Errorf("saving mention: %w", err)
	}
	return nil
}

// InsightsFor aggregates all mentions of one entity.
func (s *mentionStore) InsightsFor(ctx context.Context, entityID int64) (*domain.EntityInsights, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(count), 0),
			COUNT(DISTINCT video_id),
			COUNT(DISTINCT channel_id),
			COALESCE(AVG(sentiment_score), 0),
			MIN(first_seen)
		FROM mentions WHERE entity_id = ?
	`, entityID)

	insights := &domain.EntityInsights{}
	var firstSeen sql.NullTime
	if err := row.Scan(&insights.TotalMentions, &insights.VideoCount,
		&insights.ChannelCount, &insights.AverageSentiment, &firstSeen); err != nil {
		return nil, fmt.Errorf("aggregating mentions: %w", err)
	}
	if firstSeen.Valid {
		insights.FirstSeen = firstSeen.Time
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT m.channel_id, COALESCE(c.title, ''), SUM(m.count) AS total
		FROM mentions m
		LEFT JOIN channels c ON c.id = m.channel_id
		WHERE m.entity_id = ?
		GROUP BY m.channel_id
		ORDER BY total DESC
		LIMIT 5
	`, entityID)
	if err != nil {
		return nil, fmt.Errorf("querying top channels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var count domain.ChannelMentionCount
		if err := rows.Scan(&count.ChannelID, &count.ChannelName, &count.Mentions); err != nil {
			return nil, fmt.Errorf("scanning top channel: %w", err)
		}
		insights.TopChannels = append(insights.TopChannels, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top channels: %w", err)
	}
	return insights, nil
}

// TopForChannel returns a channel's most mentioned entities of a kind.
func (s *mentionStore) TopForChannel(ctx context.Context, channelID string, kind domain.EntityKind, limit int) ([]domain.EntityMentionCount, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT e.id, e.kind, e.name, e.normalised_name, e.category, e.brand_id, e.meta, e.created_at,
			SUM(m.count) AS total
		FROM mentions m
		JOIN entities e ON e.id = m.entity_id
		WHERE m.channel_id = ? AND m.kind = ?
		GROUP BY e.id
		ORDER BY total DESC
		LIMIT ?
	`, channelID, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top entities: %w", err)
	}
	defer rows.Close()

	var counts []domain.EntityMentionCount //nolint:prealloc // size unknown from query
	for rows.Next() {
		var count domain.EntityMentionCount
		var entityKind, meta string
		var createdAt sql.NullTime
		if err := rows.Scan(&count.Entity.ID, &entityKind, &count.Entity.Name,
			&count.Entity.NormalisedName, &count.Entity.Category, &count.Entity.BrandID,
			&meta, &createdAt, &count.Mentions); err != nil {
			return nil, fmt.Errorf("scanning top entity: %w", err)
		}
		count.Entity.Kind = domain.EntityKind(entityKind)
		if createdAt.Valid {
			count.Entity.CreatedAt = createdAt.Time
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top entities: %w", err)
	}
	return counts, nil
}

// DeleteByChannel removes all mention rows for a channel.
func (s *mentionStore) DeleteByChannel(ctx context.Context, channelID string) (int, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM mentions WHERE channel_id = ?", channelID)
	if err != nil {
		return 0, fmt.Errorf("deleting mentions: %w", err)
	}
	return rowCount(res), nil
}

// extractionStore implements driven.ExtractionCacheStore.
type extractionStore struct {
	store *Store
}

var _ driven.ExtractionCacheStore = (*extractionStore)(nil)

// Get returns the cached entry for a video.
func (s *extractionStore) Get(ctx context.Context, videoID string) (*domain.ExtractionCacheEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT video_id, transcript_hash, analysis, created_at, updated_at
		FROM extraction_cache WHERE video_id = ?
	`, videoID)

	var entry domain.ExtractionCacheEntry
	var analysis string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&entry.VideoID, &entry.TranscriptHash, &analysis, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning extraction entry: %w", err)
	}
	if err := unmarshalAnalysis(analysis, &entry.Analysis); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		entry.UpdatedAt = updatedAt.Time
	}
	return &entry, nil
}

// Put stores or replaces the cached entry for a video.
func (s *extractionStore) Put(ctx context.Context, entry domain.ExtractionCacheEntry) error {
	if entry.VideoID == "" || entry.TranscriptHash == "" {
		return domain.ErrInvalidInput
	}
	analysis, err := marshalAnalysis(entry.Analysis)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO extraction_cache (video_id, transcript_hash, analysis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			transcript_hash = excluded.transcript_hash,
			analysis = excluded.analysis,
			updated_at = excluded.updated_at
	`, entry.VideoID, entry.TranscriptHash, analysis, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving extraction entry: %w", err)
	}
	return nil
}

// DeleteByVideos removes cached entries for the given videos.
func (s *extractionStore) DeleteByVideos(ctx context.Context, videoIDs []string) (int, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(videoIDs))
	for _, id := range videoIDs {
		args = append(args, id)
	}
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM extraction_cache WHERE video_id IN ("+placeholders(len(videoIDs))+")", args...)
	if err != nil {
		return 0, fmt.Errorf("deleting extraction entries: %w", err)
	}
	return rowCount(res), nil
}

func marshalAnalysis(analysis domain.VideoAnalysis) (string, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return "", fmt.Errorf("marshalling analysis: %w", err)
	}
	return string(data), nil
}

func unmarshalAnalysis(raw string, analysis *domain.VideoAnalysis) error {
	if err := json.Unmarshal([]byte(raw), analysis); err != nil {
		return fmt.Errorf("unmarshaling analysis: %w", err)
	}
	return nil
}
