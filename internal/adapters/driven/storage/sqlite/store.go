package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "clipsight.db"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.clipsight/data/clipsight.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clipsight", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return openAtPath(filepath.Join(dataDir, dbFileName))
}

// openAtPath opens (creating if necessary) the database at an exact
// file path and applies pending migrations.
func openAtPath(dbPath string) (*Store, error) {
	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChannelStore returns a ChannelStore interface backed by this store.
func (s *Store) ChannelStore() driven.ChannelStore {
	return &channelStore{store: s}
}

// VideoStore returns a VideoStore interface backed by this store.
func (s *Store) VideoStore() driven.VideoStore {
	return &videoStore{store: s}
}

// EntityStore returns an EntityStore interface backed by this store.
func (s *Store) EntityStore() driven.EntityStore {
	return &entityStore{store: s}
}

// MentionStore returns a MentionStore interface backed by this store.
func (s *Store) MentionStore() driven.MentionStore {
	return &mentionStore{store: s}
}

// ExtractionCacheStore returns an ExtractionCacheStore interface backed by this store.
func (s *Store) ExtractionCacheStore() driven.ExtractionCacheStore {
	return &extractionStore{store: s}
}

// SearchLogStore returns a SearchLogStore interface backed by this store.
func (s *Store) SearchLogStore() driven.SearchLogStore {
	return &searchLogStore{store: s}
}

// DashboardCacheStore returns a DashboardCacheStore interface backed by this store.
func (s *Store) DashboardCacheStore() driven.DashboardCacheStore {
	return &dashboardStore{store: s}
}

// Ensure Store implements the channel wipe interface.
var _ driven.ChannelWipeStore = (*Store)(nil)

// WipeChannel deletes one channel's videos, segments, mentions and
// extraction-cache rows in a single transaction. The channel row itself
// is kept so the next ingest refreshes rather than re-creates it.
func (s *Store) WipeChannel(ctx context.Context, channelID string) (*domain.ChannelResetReport, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	report := &domain.ChannelResetReport{ChannelID: channelID}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM video_segments WHERE video_id IN (SELECT id FROM videos WHERE channel_id = ?)
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("deleting segments: %w", err)
	}
	report.SegmentsRemoved = rowCount(res)

	res, err = tx.ExecContext(ctx, `
		DELETE FROM extraction_cache WHERE video_id IN (SELECT id FROM videos WHERE channel_id = ?)
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("deleting extraction cache: %w", err)
	}
	report.CacheRowsRemoved = rowCount(res)

	res, err = tx.ExecContext(ctx, "DELETE FROM mentions WHERE channel_id = ?", channelID)
	if err != nil {
		return nil, fmt.Errorf("deleting mentions: %w", err)
	}
	report.MentionsRemoved = rowCount(res)

	res, err = tx.ExecContext(ctx, "DELETE FROM videos WHERE channel_id = ?", channelID)
	if err != nil {
		return nil, fmt.Errorf("deleting videos: %w", err)
	}
	report.VideosRemoved = rowCount(res)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing wipe: %w", err)
	}
	return report, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// rowCount returns the affected-row count, swallowing the driver error:
// modernc.org/sqlite always supports RowsAffected.
func rowCount(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
