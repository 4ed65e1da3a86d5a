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

// dashboardStore implements driven.DashboardCacheStore.
type dashboardStore struct {
	store *Store
}

var _ driven.DashboardCacheStore = (*dashboardStore)(nil)

// Get returns the cached payload for a key.
func (s *dashboardStore) Get(ctx context.Context, key string) (*domain.DashboardEntry, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT key, kind, payload, updated_at FROM dashboard_cache WHERE key = ?", key)

	var entry domain.DashboardEntry
	var kind string
	var updatedAt sql.NullTime
	if err := row.Scan(&entry.Key, &kind, &entry.Payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning dashboard entry: %w", err)
	}
	entry.Kind = domain.DashboardKind(kind)
	if updatedAt.Valid {
		entry.UpdatedAt = updatedAt.Time
	}
	return &entry, nil
}

// Put stores or replaces a cached payload.
func (s *dashboardStore) Put(ctx context.Context, entry domain.DashboardEntry) error {
	if entry.Key == "" {
		return domain.ErrInvalidInput
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO dashboard_cache (key, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, entry.Key, string(entry.Kind), entry.Payload, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving dashboard entry: %w", err)
	}
	return nil
}
