package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// --- Mock implementations for ingest testing ---
// Prefixed with "ingest" to avoid conflicts with other service tests.

type ingestMockMetadata struct {
	channel    *domain.Channel
	videoIDs   []string
	videos     map[string]*domain.Video
	channelErr error
}

func (m *ingestMockMetadata) ChannelDetails(_ context.Context, channelID string) (*domain.Channel, error) {
	if m.channelErr != nil {
		return nil, m.channelErr
	}
	ch := *m.channel
	ch.ID = channelID
	return &ch, nil
}

func (m *ingestMockMetadata) LatestVideoIDs(_ context.Context, _ string, limit int) ([]string, error) {
	if limit < len(m.videoIDs) {
		return m.videoIDs[:limit], nil
	}
	return m.videoIDs, nil
}

func (m *ingestMockMetadata) VideoDetails(_ context.Context, videoID string) (*domain.Video, error) {
	if v, ok := m.videos[videoID]; ok {
		vv := *v
		return &vv, nil
	}
	return &domain.Video{ID: videoID, Title: "Video " + videoID}, nil
}

type ingestMockCache struct {
	entries map[string][]domain.TranscriptSegment
	puts    int
}

func (m *ingestMockCache) Get(videoID string) ([]domain.TranscriptSegment, bool, error) {
	segs, ok := m.entries[videoID]
	return segs, ok, nil
}

func (m *ingestMockCache) Put(videoID string, segments []domain.TranscriptSegment) error {
	if m.entries == nil {
		m.entries = make(map[string][]domain.TranscriptSegment)
	}
	m.entries[videoID] = segments
	m.puts++
	return nil
}

func (m *ingestMockCache) Dir() string { return "/tmp/transcripts" }

func (m *ingestMockCache) Watch(_ context.Context) (<-chan string, error) {
	ch := make(chan string)
	close(ch)
	return ch, nil
}

type ingestMockProvider struct {
	name     string
	segments []domain.TranscriptSegment
	err      error
	calls    int
}

func (m *ingestMockProvider) Name() string { return m.name }

func (m *ingestMockProvider) Fetch(_ context.Context, _ string) ([]domain.TranscriptSegment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.segments, nil
}

type ingestMockLLM struct {
	analysis *domain.VideoAnalysis
	err      error
	calls    int
}

func (m *ingestMockLLM) AnalyseTranscript(_ context.Context, _, _, _ string) (*domain.VideoAnalysis, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	a := *m.analysis
	return &a, nil
}

func (m *ingestMockLLM) ExtractEntities(_ context.Context, _ string) (*domain.ExtractionResult, error) {
	r := m.analysis.Extraction()
	return &r, nil
}

func (m *ingestMockLLM) AnswerQuery(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func (m *ingestMockLLM) ModelName() string            { return "mock-model" }
func (m *ingestMockLLM) Ping(_ context.Context) error { return nil }
func (m *ingestMockLLM) Close() error                 { return nil }

type ingestMemStore struct {
	channels    map[string]domain.Channel
	videos      map[string]domain.Video
	segments    map[string][]domain.TranscriptSegment
	entities    map[string]domain.Entity
	nextEntity  int64
	mentions    []domain.Mention
	extractions map[string]domain.ExtractionCacheEntry
}

func newIngestMemStore() *ingestMemStore {
	return &ingestMemStore{
		channels:    make(map[string]domain.Channel),
		videos:      make(map[string]domain.Video),
		segments:    make(map[string][]domain.TranscriptSegment),
		entities:    make(map[string]domain.Entity),
		extractions: make(map[string]domain.ExtractionCacheEntry),
	}
}

func (s *ingestMemStore) Save(_ context.Context, ch domain.Channel) error {
	s.channels[ch.ID] = ch
	return nil
}

func (s *ingestMemStore) Get(_ context.Context, id string) (*domain.Channel, error) {
	ch, ok := s.channels[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ch, nil
}

func (s *ingestMemStore) List(_ context.Context) ([]domain.Channel, error) {
	out := make([]domain.Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		out = append(out, ch)
	}
	return out, nil
}

type ingestVideoStore struct{ s *ingestMemStore }

func (v ingestVideoStore) Save(_ context.Context, video domain.Video) error {
	v.s.videos[video.ID] = video
	return nil
}

func (v ingestVideoStore) Get(_ context.Context, id string) (*domain.Video, error) {
	vid, ok := v.s.videos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &vid, nil
}

func (v ingestVideoStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := v.s.videos[id]
	return ok, nil
}

func (v ingestVideoStore) ListByChannel(_ context.Context, channelID string) ([]domain.Video, error) {
	var out []domain.Video
	for _, vid := range v.s.videos {
		if vid.ChannelID == channelID {
			out = append(out, vid)
		}
	}
	return out, nil
}

func (v ingestVideoStore) SaveSegments(_ context.Context, videoID string, segs []domain.TranscriptSegment) error {
	v.s.segments[videoID] = segs
	return nil
}

func (v ingestVideoStore) GetSegments(_ context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	return v.s.segments[videoID], nil
}

func (v ingestVideoStore) SearchVideos(_ context.Context, _ string, _ []string, _ int) ([]domain.Video, error) {
	return nil, nil
}

func (v ingestVideoStore) SearchSegments(_ context.Context, _ string, _ []string, _ int) ([]domain.SegmentHit, error) {
	return nil, nil
}

type ingestEntityStore struct{ s *ingestMemStore }

func (e ingestEntityStore) Upsert(_ context.Context, entity domain.Entity) (int64, error) {
	key := entity.Kind.String() + ":" + entity.NormalisedName
	if existing, ok := e.s.entities[key]; ok {
		return existing.ID, nil
	}
	e.s.nextEntity++
	entity.ID = e.s.nextEntity
	e.s.entities[key] = entity
	return entity.ID, nil
}

func (e ingestEntityStore) GetByName(_ context.Context, kind domain.EntityKind, normalised string) (*domain.Entity, error) {
	if entity, ok := e.s.entities[kind.String()+":"+normalised]; ok {
		return &entity, nil
	}
	return nil, domain.ErrNotFound
}

func (e ingestEntityStore) Get(_ context.Context, id int64) (*domain.Entity, error) {
	for _, entity := range e.s.entities {
		if entity.ID == id {
			return &entity, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (e ingestEntityStore) ListByKind(_ context.Context, _ domain.EntityKind) ([]domain.Entity, error) {
	return nil, nil
}

func (e ingestEntityStore) SuggestNames(_ context.Context, _ domain.EntityKind, _ string, _ int) ([]string, error) {
	return nil, nil
}

type ingestMentionStore struct{ s *ingestMemStore }

func (m ingestMentionStore) Save(_ context.Context, mention domain.Mention) error {
	m.s.mentions = append(m.s.mentions, mention)
	return nil
}

func (m ingestMentionStore) InsightsFor(_ context.Context, _ int64) (*domain.EntityInsights, error) {
	return nil, domain.ErrNotFound
}

func (m ingestMentionStore) TopForChannel(_ context.Context, _ string, _ domain.EntityKind, _ int) ([]domain.EntityMentionCount, error) {
	return nil, nil
}

func (m ingestMentionStore) DeleteByChannel(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type ingestExtractionStore struct{ s *ingestMemStore }

func (e ingestExtractionStore) Get(_ context.Context, videoID string) (*domain.ExtractionCacheEntry, error) {
	entry, ok := e.s.extractions[videoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

func (e ingestExtractionStore) Put(_ context.Context, entry domain.ExtractionCacheEntry) error {
	e.s.extractions[entry.VideoID] = entry
	return nil
}

func (e ingestExtractionStore) DeleteByVideos(_ context.Context, _ []string) (int, error) {
	return 0, nil
}

// --- Fixtures ---

var ingestTestSegments = []domain.TranscriptSegment{
	{Start: 0, Duration: 4.2, Text: "Today we are trying the new Maybelline mascara"},
	{Start: 4.2, Duration: 3.1, Text: "this video is sponsored by Squarespace"},
}

func ingestTestAnalysis() *domain.VideoAnalysis {
	return &domain.VideoAnalysis{
		Summary:   "Mascara review.",
		Sentiment: "Positive",
		Topics:    []string{"makeup"},
		Brands:    []string{"Maybelline"},
		Products:  []domain.ProductRef{{Brand: "Maybelline", Product: "Sky High Mascara"}},
		Sponsors:  []string{"Squarespace"},
	}
}

func newTestIngest(store *ingestMemStore, cache *ingestMockCache, providers []*ingestMockProvider, llm *ingestMockLLM) *IngestService {
	metadata := &ingestMockMetadata{
		channel:  &domain.Channel{Title: "Beauty Channel"},
		videoIDs: []string{"vid1", "vid2"},
	}
	var provs []driven.TranscriptProvider
	for _, p := range providers {
		provs = append(provs, p)
	}
	var llmSvc driven.LLMService
	if llm != nil {
		llmSvc = llm
	}
	return NewIngestService(
		metadata,
		cache,
		provs,
		llmSvc,
		store,
		ingestVideoStore{store},
		ingestEntityStore{store},
		ingestMentionStore{store},
		ingestExtractionStore{store},
	)
}

// --- Tests ---

func TestIngestChannel_FullPipeline(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{}
	provider := &ingestMockProvider{name: "captions-api", segments: ingestTestSegments}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	svc := newTestIngest(store, cache, []*ingestMockProvider{provider}, llm)

	status, err := svc.IngestChannel(context.Background(), "UC123", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, status.VideosSeen)
	assert.Equal(t, 2, status.VideosIngested)
	assert.Empty(t, status.Errors)

	// Channel saved.
	ch, err := store.Get(context.Background(), "UC123")
	require.NoError(t, err)
	assert.Equal(t, "Beauty Channel", ch.Title)

	// Videos carry the analysis.
	vid := store.videos["vid1"]
	assert.Equal(t, "Mascara review.", vid.Summary)
	assert.Equal(t, domain.SentimentPositive, vid.Sentiment)
	assert.Equal(t, []string{"Maybelline"}, vid.Brands)
	assert.Equal(t, []string{"Sky High Mascara"}, vid.Products)

	// Entities deduped across the two videos.
	assert.Len(t, store.entities, 3)

	// One mention per entity per video.
	assert.Len(t, store.mentions, 6)
	for _, mention := range store.mentions {
		assert.NotEmpty(t, mention.ID)
		assert.Equal(t, 85, mention.SentimentScore)
		assert.GreaterOrEqual(t, mention.Count, 1)
	}

	// Transcripts cached for next time.
	assert.Equal(t, 2, cache.puts)
}

func TestIngestChannel_SkipsExistingVideos(t *testing.T) {
	store := newIngestMemStore()
	store.videos["vid1"] = domain.Video{ID: "vid1", ChannelID: "UC123"}
	cache := &ingestMockCache{}
	provider := &ingestMockProvider{name: "captions-api", segments: ingestTestSegments}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	svc := newTestIngest(store, cache, []*ingestMockProvider{provider}, llm)

	status, err := svc.IngestChannel(context.Background(), "UC123", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, status.VideosSkipped)
	assert.Equal(t, 1, status.VideosIngested)
	assert.Equal(t, 1, provider.calls, "skipped video must not hit the provider")
}

func TestIngestChannel_TranscriptCacheHit(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{entries: map[string][]domain.TranscriptSegment{
		"vid1": ingestTestSegments,
		"vid2": ingestTestSegments,
	}}
	provider := &ingestMockProvider{name: "captions-api", err: errors.New("should not be called")}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	svc := newTestIngest(store, cache, []*ingestMockProvider{provider}, llm)

	status, err := svc.IngestChannel(context.Background(), "UC123", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, status.CacheHits)
	assert.Equal(t, 0, provider.calls)
}

func TestIngestChannel_ProviderFallback(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{}
	primary := &ingestMockProvider{name: "captions-api", err: domain.ErrNoTranscript}
	fallback := &ingestMockProvider{name: "yt-dlp", segments: ingestTestSegments}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	svc := newTestIngest(store, cache, []*ingestMockProvider{primary, fallback}, llm)

	status, err := svc.IngestChannel(context.Background(), "UC123", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, status.VideosIngested)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, fallback.calls)
}

func TestIngestChannel_NoTranscriptAnywhere(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{}
	provider := &ingestMockProvider{name: "captions-api", err: domain.ErrNoTranscript}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	svc := newTestIngest(store, cache, []*ingestMockProvider{provider}, llm)

	status, err := svc.IngestChannel(context.Background(), "UC123", 10)
	require.NoError(t, err, "per-video transcript misses never fail the run")

	assert.Equal(t, 0, status.VideosIngested)
	require.Len(t, status.Errors, 2)
	assert.ErrorIs(t, status.Errors[0], domain.ErrNoTranscript)
}

func TestIngestVideo_ExtractionCacheReuse(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{entries: map[string][]domain.TranscriptSegment{"vid1": ingestTestSegments}}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	store.extractions["vid1"] = domain.ExtractionCacheEntry{
		VideoID:        "vid1",
		TranscriptHash: domain.TranscriptHash(ingestTestSegments),
		Analysis:       *ingestTestAnalysis(),
		UpdatedAt:      time.Now(),
	}

	svc := newTestIngest(store, cache, nil, llm)

	require.NoError(t, svc.IngestVideo(context.Background(), "vid1", false))
	assert.Equal(t, 0, llm.calls, "matching hash must not re-run the LLM")
	assert.Equal(t, "Mascara review.", store.videos["vid1"].Summary)
}

func TestIngestVideo_StaleExtractionCache(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{entries: map[string][]domain.TranscriptSegment{"vid1": ingestTestSegments}}
	llm := &ingestMockLLM{analysis: ingestTestAnalysis()}

	store.extractions["vid1"] = domain.ExtractionCacheEntry{
		VideoID:        "vid1",
		TranscriptHash: "stale",
		Analysis:       domain.VideoAnalysis{Summary: "old"},
	}

	svc := newTestIngest(store, cache, nil, llm)

	require.NoError(t, svc.IngestVideo(context.Background(), "vid1", false))
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, domain.TranscriptHash(ingestTestSegments), store.extractions["vid1"].TranscriptHash)
}

func TestIngestVideo_NoLLMStoresTranscriptOnly(t *testing.T) {
	store := newIngestMemStore()
	cache := &ingestMockCache{entries: map[string][]domain.TranscriptSegment{"vid1": ingestTestSegments}}

	svc := newTestIngest(store, cache, nil, nil)

	require.NoError(t, svc.IngestVideo(context.Background(), "vid1", false))
	assert.Empty(t, store.videos["vid1"].Summary)
	assert.Len(t, store.segments["vid1"], 2)
	assert.Empty(t, store.mentions)
}

func TestIngestChannel_ConcurrentGuard(t *testing.T) {
	store := newIngestMemStore()
	svc := newTestIngest(store, &ingestMockCache{}, nil, nil)

	require.True(t, svc.acquire("UC123"))
	defer svc.release("UC123")

	_, err := svc.IngestChannel(context.Background(), "UC123", 10)
	assert.ErrorIs(t, err, domain.ErrIngestInProgress)
}

func TestIngestChannel_InvalidInput(t *testing.T) {
	svc := newTestIngest(newIngestMemStore(), &ingestMockCache{}, nil, nil)

	_, err := svc.IngestChannel(context.Background(), "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
