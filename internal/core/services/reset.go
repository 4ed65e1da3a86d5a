package services

import (
	"context"
	"fmt"
	"os"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure ResetService implements the interface.
var _ driving.ResetService = (*ResetService)(nil)

// ResetService restores the database to an empty, schema-valid state.
// The transcript cache directory is only ever observed, never written
// to or deleted from, so cached transcripts survive every reset and the
// next ingest run re-analyses them at zero API cost.
type ResetService struct {
	schema    driven.SchemaInitializer
	wipeStore driven.ChannelWipeStore
}

// NewResetService creates a new reset service. wipeStore may be nil when
// per-channel resets are not needed.
func NewResetService(schema driven.SchemaInitializer, wipeStore driven.ChannelWipeStore) *ResetService {
	return &ResetService{
		schema:    schema,
		wipeStore: wipeStore,
	}
}

// Reset deletes the database file and re-initialises the schema.
//
// The steps run in a fixed order and each is idempotent on its own:
// probe the cache directory (advisory), remove the database file if it
// exists, then run the schema initialiser unconditionally. A database
// file that exists but cannot be removed aborts the run before schema
// initialisation; proceeding would leave stale rows behind a fresh
// schema version.
func (s *ResetService) Reset(ctx context.Context, opts domain.ResetOptions) (*domain.ResetReport, error) {
	if opts.DatabasePath == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrInvalidInput)
	}

	report := &domain.ResetReport{}

	if opts.CheckCache {
		report.CacheChecked = true
		if info, err := os.Stat(opts.CacheDir); err == nil && info.IsDir() {
			report.CacheFound = true
			logger.Info("transcript cache found at %s; cached transcripts will be reused", opts.CacheDir)
		} else {
			logger.Warn("no transcript cache at %s; next ingest will re-fetch transcripts", opts.CacheDir)
		}
	}

	removed, err := s.removeDatabase(opts.DatabasePath)
	if err != nil {
		return report, err
	}
	report.DatabaseRemoved = removed
	if removed {
		logger.Info("removed database %s", opts.DatabasePath)
	} else {
		logger.Info("no database at %s; nothing to remove", opts.DatabasePath)
	}

	if err := s.schema.Init(ctx, opts.DatabasePath); err != nil {
		return report, fmt.Errorf("initialise schema: %w", err)
	}
	report.SchemaInitialised = true
	logger.Info("schema initialised; database is empty and ready")

	return report, nil
}

// removeDatabase deletes the database file along with any WAL sidecars.
// A missing file is a normal no-op. Any other failure is fatal: the
// database would otherwise survive the reset in a stale state.
func (s *ResetService) removeDatabase(dbPath string) (bool, error) {
	removed := false
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		err := os.Remove(path)
		switch {
		case err == nil:
			if path == dbPath {
				removed = true
			}
		case os.IsNotExist(err):
			// nothing to remove
		default:
			return removed, fmt.Errorf("remove database file %s: %w", path, err)
		}
	}
	return removed, nil
}

// ResetChannel removes one channel's derived rows without dropping the
// database. Other channels and the transcript cache are untouched.
func (s *ResetService) ResetChannel(ctx context.Context, channelID string) (*domain.ChannelResetReport, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel ID is required", domain.ErrInvalidInput)
	}
	if s.wipeStore == nil {
		return nil, fmt.Errorf("%w: channel reset is not available", domain.ErrInvalidInput)
	}

	report, err := s.wipeStore.WipeChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("wipe channel %s: %w", channelID, err)
	}
	logger.Info("removed %d videos, %d segments, %d mentions for channel %s",
		report.VideosRemoved, report.SegmentsRemoved, report.MentionsRemoved, channelID)
	return report, nil
}
