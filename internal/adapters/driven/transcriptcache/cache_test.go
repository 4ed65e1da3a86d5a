package transcriptcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

func testSegments() []domain.TranscriptSegment {
	return []domain.TranscriptSegment{
		{Start: 0, Duration: 4.2, Text: "welcome back"},
		{Start: 4.2, Duration: 3.1, Text: "today we review mascara"},
	}
}

func TestCache_PutAndGet(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	segments := testSegments()
	require.NoError(t, cache.Put("vid1", segments))

	got, ok, err := cache.Get("vid1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, segments, got)

	// File lands under the current naming convention.
	_, err = os.Stat(filepath.Join(cache.Dir(), "vid1.json"))
	assert.NoError(t, err)
}

func TestCache_Miss(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := cache.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_LegacyFilenames(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	require.NoError(t, err)

	payload := []byte(`[{"text":"hello","start":1.5,"duration":2.0}]`)
	for _, name := range []string{"a_rapidapi.json", "b_from_rapidapi.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), payload, 0o600))
	}

	for _, videoID := range []string{"a", "b"} {
		got, ok, err := cache.Get(videoID)
		require.NoError(t, err)
		require.True(t, ok, "legacy file for %s", videoID)
		require.Len(t, got, 1)
		assert.Equal(t, "hello", got[0].Text)
		assert.Equal(t, 1.5, got[0].Start)
	}
}

func TestCache_CorruptFileIsAMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o600))

	_, ok, err := cache.Get("bad")
	require.NoError(t, err)
	assert.False(t, ok)

	// A fresh Put overwrites the corrupt file.
	require.NoError(t, cache.Put("bad", testSegments()))
	got, ok, err := cache.Get("bad")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "transcripts")
	cache, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cache.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCache_Watch(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := cache.Watch(ctx)
	require.NoError(t, err)

	// A Put lands as an atomic rename, which the watcher reports.
	require.NoError(t, cache.Put("vidX", testSegments()))

	select {
	case videoID := <-events:
		assert.Equal(t, "vidX", videoID)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	// Channel closes once the context is cancelled.
	select {
	case _, open := <-events:
		if open {
			// Drain one stray event, then expect closure.
			_, open = <-events
			assert.False(t, open)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestVideoIDFromFile(t *testing.T) {
	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"/cache/abc123.json", "abc123", true},
		{"/cache/abc123_rapidapi.json", "abc123", true},
		{"/cache/abc123_from_rapidapi.json", "abc123", true},
		{"/cache/abc123.tmp-42", "", false},
		{"/cache/notes.txt", "", false},
		{"/cache/.json", "", false},
	}
	for _, tt := range tests {
		id, ok := videoIDFromFile(tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
		assert.Equal(t, tt.wantID, id, tt.path)
	}
}
