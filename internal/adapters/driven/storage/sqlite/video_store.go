package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// videoStore implements driven.VideoStore.
type videoStore struct {
	store *Store
}

var _ driven.VideoStore = (*videoStore)(nil)

const videoColumns = `id, channel_id, channel_name, title, upload_date, duration, summary,
	sentiment, topics, brands, products, sponsors, view_count, like_count,
	thumbnail_url, category, created_at, updated_at`

// Save stores or updates a video.
func (s *videoStore) Save(ctx context.Context, video domain.Video) error {
	if err := video.Validate(); err != nil {
		return err
	}

	topics, err := marshalList(video.Topics)
	if err != nil {
		return err
	}
	brands, err := marshalList(video.Brands)
	if err != nil {
		return err
	}
	products, err := marshalList(video.Products)
	if err != nil {
		return err
	}
	sponsors, err := marshalList(video.Sponsors)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	// The parent channel row may not exist yet when a video is ingested
	// directly from the transcript cache.
	if _, err := s.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO channels (id, title) VALUES (?, ?)",
		video.ChannelID, video.ChannelName); err != nil {
		return fmt.Errorf("ensuring channel row: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO videos (`+videoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel_id = excluded.channel_id,
			channel_name = excluded.channel_name,
			title = excluded.title,
			upload_date = excluded.upload_date,
			duration = excluded.duration,
			summary = excluded.summary,
			sentiment = excluded.sentiment,
			topics = excluded.topics,
			brands = excluded.brands,
			products = excluded.products,
			sponsors = excluded.sponsors,
			view_count = excluded.view_count,
			like_count = excluded.like_count,
			thumbnail_url = excluded.thumbnail_url,
			category = excluded.category,
			updated_at = excluded.updated_at
	`, video.ID, video.ChannelID, video.ChannelName, video.Title, video.UploadDate,
		video.Duration, video.Summary, string(video.Sentiment), topics, brands, products,
		sponsors, video.ViewCount, video.LikeCount, video.ThumbnailURL, video.Category,
		video.CreatedAt, video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving video: %w", err)
	}
	return nil
}

// Get retrieves a video by ID.
func (s *videoStore) Get(ctx context.Context, id string) (*domain.Video, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE id = ?", id)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning video: %w", err)
	}
	return video, nil
}

// Exists reports whether a video is already stored.
func (s *videoStore) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM videos WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking video existence: %w", err)
	}
	return true, nil
}

// ListByChannel returns all stored videos for a channel, newest first.
func (s *videoStore) ListByChannel(ctx context.Context, channelID string) ([]domain.Video, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE channel_id = ? ORDER BY upload_date DESC", channelID)
	if err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

// SaveSegments replaces the stored transcript segments for a video.
func (s *videoStore) SaveSegments(ctx context.Context, videoID string, segments []domain.TranscriptSegment) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM video_segments WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("clearing segments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO video_segments (video_id, start, duration, text) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing segment insert: %w", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		if _, err := stmt.ExecContext(ctx, videoID, seg.Start, seg.Duration, seg.Text); err != nil {
			return fmt.Errorf("inserting segment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing segments: %w", err)
	}
	return nil
}

// GetSegments returns the stored transcript segments for a video, in order.
func (s *videoStore) GetSegments(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT start, duration, text FROM video_segments WHERE video_id = ? ORDER BY start", videoID)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.TranscriptSegment //nolint:prealloc // size unknown from query
	for rows.Next() {
		var seg domain.TranscriptSegment
		if err := rows.Scan(&seg.Start, &seg.Duration, &seg.Text); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}
	return segments, nil
}

// SearchVideos matches videos whose title, summary or entity lists
// contain the query, newest first.
func (s *videoStore) SearchVideos(ctx context.Context, query string, channelIDs []string, limit int) ([]domain.Video, error) {
	pattern := "%" + escapeLike(query) + "%"
	sqlQuery := "SELECT " + videoColumns + ` FROM videos
		WHERE (title LIKE ? ESCAPE '\'
			OR summary LIKE ? ESCAPE '\'
			OR brands LIKE ? ESCAPE '\'
			OR products LIKE ? ESCAPE '\'
			OR sponsors LIKE ? ESCAPE '\'
			OR topics LIKE ? ESCAPE '\')`
	args := []any{pattern, pattern, pattern, pattern, pattern, pattern}

	if len(channelIDs) > 0 {
		sqlQuery += " AND channel_id IN (" + placeholders(len(channelIDs)) + ")"
		for _, id := range channelIDs {
			args = append(args, id)
		}
	}
	sqlQuery += " ORDER BY upload_date DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching videos: %w", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

// SearchSegments matches transcript segments containing the query.
func (s *videoStore) SearchSegments(ctx context.Context, query string, channelIDs []string, limit int) ([]domain.SegmentHit, error) {
	pattern := "%" + escapeLike(query) + "%"
	sqlQuery := `
		SELECT vs.video_id, v.channel_name, vs.start, vs.duration, vs.text
		FROM video_segments vs
		JOIN videos v ON v.id = vs.video_id
		WHERE vs.text LIKE ? ESCAPE '\'`
	args := []any{pattern}

	if len(channelIDs) > 0 {
		sqlQuery += " AND v.channel_id IN (" + placeholders(len(channelIDs)) + ")"
		for _, id := range channelIDs {
			args = append(args, id)
		}
	}
	sqlQuery += " ORDER BY vs.video_id, vs.start LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching segments: %w", err)
	}
	defer rows.Close()

	var hits []domain.SegmentHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit domain.SegmentHit
		if err := rows.Scan(&hit.VideoID, &hit.ChannelName, &hit.Segment.Start,
			&hit.Segment.Duration, &hit.Segment.Text); err != nil {
			return nil, fmt.Errorf("scanning segment hit: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segment hits: %w", err)
	}
	return hits, nil
}

func scanVideo(row rowScanner) (*domain.Video, error) {
	var video domain.Video
	var sentiment, topics, brands, products, sponsors string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&video.ID, &video.ChannelID, &video.ChannelName, &video.Title,
		&video.UploadDate, &video.Duration, &video.Summary, &sentiment, &topics,
		&brands, &products, &sponsors, &video.ViewCount, &video.LikeCount,
		&video.ThumbnailURL, &video.Category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	video.Sentiment = domain.Sentiment(sentiment)
	for _, col := range []struct {
		raw  string
		dest *[]string
	}{
		{topics, &video.Topics},
		{brands, &video.Brands},
		{products, &video.Products},
		{sponsors, &video.Sponsors},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return nil, fmt.Errorf("unmarshaling list column: %w", err)
		}
	}
	if createdAt.Valid {
		video.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		video.UpdatedAt = updatedAt.Time
	}
	return &video, nil
}

func collectVideos(rows *sql.Rows) ([]domain.Video, error) {
	var videos []domain.Video //nolint:prealloc // size unknown from query
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning video: %w", err)
		}
		videos = append(videos, *video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating videos: %w", err)
	}
	return videos, nil
}

// marshalList encodes a string slice as JSON, mapping nil to "[]" so
// scans never see SQL null.
func marshalList(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshalling list: %w", err)
	}
	return string(data), nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
