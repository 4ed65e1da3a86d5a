// Package transcriptcache implements the durable on-disk transcript
// store. Each video's segments live in a JSON file under the cache
// directory. Nothing in this package deletes cache files: transcripts
// cost external API calls to regenerate, so the cache survives resets.
package transcriptcache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.TranscriptCache = (*Cache)(nil)

// legacySuffixes are older filename conventions still read on lookup.
// New entries are always written as <videoID>.json.
var legacySuffixes = []string{"_rapidapi", "_from_rapidapi"}

// segmentFile is the on-disk JSON shape of one segment.
type segmentFile struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Cache is a filesystem-backed transcript cache.
type Cache struct {
	dir string
}

// New creates a transcript cache rooted at dir, creating the directory
// if needed. If dir is empty, defaults to ~/.clipsight/transcripts.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".clipsight", "transcripts")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns cached segments for a video, trying the current filename
// first and then the legacy variants.
func (c *Cache) Get(videoID string) ([]domain.TranscriptSegment, bool, error) {
	for _, path := range c.candidatePaths(videoID) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading cache file %s: %w", path, err)
		}

		var raw []segmentFile
		if err := json.Unmarshal(data, &raw); err != nil {
			// A corrupt file is treated as a miss so ingestion can
			// re-fetch and overwrite it.
			logger.Warn("corrupt transcript cache file %s: %v", path, err)
			continue
		}

		segments := make([]domain.TranscriptSegment, 0, len(raw))
		for _, s := range raw {
			segments = append(segments, domain.TranscriptSegment{
				Text:     s.Text,
				Start:    s.Start,
				Duration: s.Duration,
			})
		}
		return segments, true, nil
	}
	return nil, false, nil
}

// Put writes segments for a video atomically (write to a temp file,
// then rename).
func (c *Cache) Put(videoID string, segments []domain.TranscriptSegment) error {
	if videoID == "" {
		return domain.ErrInvalidInput
	}

	raw := make([]segmentFile, 0, len(segments))
	for _, s := range segments {
		raw = append(raw, segmentFile{Text: s.Text, Start: s.Start, Duration: s.Duration})
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling segments: %w", err)
	}

	target := filepath.Join(c.dir, videoID+".json")
	tmp, err := os.CreateTemp(c.dir, videoID+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}

// Watch emits video IDs whose transcript files appear or change in the
// cache directory until the context is cancelled.
func (c *Cache) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", c.dir, err)
	}

	events := make(chan string)
	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
					continue
				}
				videoID, ok := videoIDFromFile(event.Name)
				if !ok {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case events <- videoID:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("transcript cache watcher: %v", err)
			}
		}
	}()
	return events, nil
}

// candidatePaths lists the filenames a video's transcript may live
// under, current convention first.
func (c *Cache) candidatePaths(videoID string) []string {
	paths := []string{filepath.Join(c.dir, videoID+".json")}
	for _, suffix := range legacySuffixes {
		paths = append(paths, filepath.Join(c.dir, videoID+suffix+".json"))
	}
	return paths
}

// videoIDFromFile maps a cache filename back to its video ID,
// rejecting temp files and non-JSON files.
func videoIDFromFile(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") || strings.Contains(name, ".tmp-") {
		return "", false
	}
	id := strings.TrimSuffix(name, ".json")
	for _, suffix := range legacySuffixes {
		id = strings.TrimSuffix(id, suffix)
	}
	if id == "" {
		return "", false
	}
	return id, true
}
