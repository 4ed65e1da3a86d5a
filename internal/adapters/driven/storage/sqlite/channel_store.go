package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// channelStore implements driven.ChannelStore.
type channelStore struct {
	store *Store
}

var _ driven.ChannelStore = (*channelStore)(nil)

// Save stores or updates a channel.
func (s *channelStore) Save(ctx context.Context, channel domain.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	if channel.Platform == "" {
		channel.Platform = domain.PlatformYouTube
	}

	now := time.Now().UTC()
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = now
	}
	channel.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO channels (id, title, description, subscriber_count, video_count, view_count,
			creation_date, category, thumbnail_url, avatar_url, platform, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			subscriber_count = excluded.subscriber_count,
			video_count = excluded.video_count,
			view_count = excluded.view_count,
			creation_date = excluded.creation_date,
			category = excluded.category,
			thumbnail_url = excluded.thumbnail_url,
			avatar_url = excluded.avatar_url,
			platform = excluded.platform,
			updated_at = excluded.updated_at
	`, channel.ID, channel.Title, channel.Description, channel.SubscriberCount, channel.VideoCount,
		channel.ViewCount, channel.CreationDate, channel.Category, channel.ThumbnailURL,
		channel.AvatarURL, channel.Platform, channel.CreatedAt, channel.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving channel: %w", err)
	}
	return nil
}

// Get retrieves a channel by ID.
func (s *channelStore) Get(ctx context.Context, id string) (*domain.Channel, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, description, subscriber_count, video_count, view_count,
			creation_date, category, thumbnail_url, avatar_url, platform, created_at, updated_at
		FROM channels WHERE id = ?
	`, id)

	channel, err := scanChannel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning channel: %w", err)
	}
	return channel, nil
}

// List returns all tracked channels.
func (s *channelStore) List(ctx context.Context) ([]domain.Channel, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, description, subscriber_count, video_count, view_count,
			creation_date, category, thumbnail_url, avatar_url, platform, created_at, updated_at
		FROM channels ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("querying channels: %w", err)
	}
	defer rows.Close()

	var channels []domain.Channel //nolint:prealloc // size unknown from query
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning channel: %w", err)
		}
		channels = append(channels, *channel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating channels: %w", err)
	}
	return channels, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChannel(row rowScanner) (*domain.Channel, error) {
	var channel domain.Channel
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&channel.ID, &channel.Title, &channel.Description,
		&channel.SubscriberCount, &channel.VideoCount, &channel.ViewCount,
		&channel.CreationDate, &channel.Category, &channel.ThumbnailURL,
		&channel.AvatarURL, &channel.Platform, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		channel.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		channel.UpdatedAt = updatedAt.Time
	}
	return &channel, nil
}
