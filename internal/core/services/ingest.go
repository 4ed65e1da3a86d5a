package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestOrchestrator = (*IngestService)(nil)

// defaultIngestLimit caps how many recent uploads a channel ingest
// considers when the caller does not say.
const defaultIngestLimit = 10

// IngestService runs the video pipeline: fetch metadata, obtain a
// transcript (cache first, then providers), analyse it with the LLM,
// and persist videos, segments, entities and mentions.
type IngestService struct {
	metadata  driven.MetadataClient
	cache     driven.TranscriptCache
	providers []driven.TranscriptProvider
	llm       driven.LLMService

	channels    driven.ChannelStore
	videos      driven.VideoStore
	entities    driven.EntityStore
	mentions    driven.MentionStore
	extractions driven.ExtractionCacheStore

	mu     sync.Mutex
	active map[string]bool
}

// NewIngestService creates a new ingest service. llm may be nil, in
// which case transcripts are stored without analysis. metadata may be
// nil, which limits ingestion to single videos already present in the
// transcript cache.
func NewIngestService(
	metadata driven.MetadataClient,
	cache driven.TranscriptCache,
	providers []driven.TranscriptProvider,
	llm driven.LLMService,
	channels driven.ChannelStore,
	videos driven.VideoStore,
	entities driven.EntityStore,
	mentions driven.MentionStore,
	extractions driven.ExtractionCacheStore,
) *IngestService {
	return &IngestService{
		metadata:    metadata,
		cache:       cache,
		providers:   providers,
		llm:         llm,
		channels:    channels,
		videos:      videos,
		entities:    entities,
		mentions:    mentions,
		extractions: extractions,
		active:      make(map[string]bool),
	}
}

// IngestChannel fetches the latest uploads for a channel and runs the
// pipeline on each video not yet stored. Per-video failures are recorded
// in the returned status and do not abort the run.
func (s *IngestService) IngestChannel(ctx context.Context, channelID string, limit int) (*driving.IngestStatus, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel ID is required", domain.ErrInvalidInput)
	}
	if s.metadata == nil {
		return nil, domain.ErrMetadataUnavailable
	}
	if limit <= 0 {
		limit = defaultIngestLimit
	}

	if !s.acquire(channelID) {
		return nil, fmt.Errorf("%w: channel %s", domain.ErrIngestInProgress, channelID)
	}
	defer s.release(channelID)

	logger.Section("Channel Ingest")
	channel, err := s.metadata.ChannelDetails(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	channel.UpdatedAt = time.Now()
	if err := s.channels.Save(ctx, *channel); err != nil {
		return nil, fmt.Errorf("save channel %s: %w", channelID, err)
	}
	logger.Info("channel %s (%s) saved", channel.Title, channel.ID)

	videoIDs, err := s.metadata.LatestVideoIDs(ctx, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads for %s: %w", channelID, err)
	}

	status := &driving.IngestStatus{}
	for _, videoID := range videoIDs {
		if ctx.Err() != nil {
			return status, ctx.Err()
		}
		status.VideosSeen++
		if err := s.ingestOne(ctx, videoID, channel, false, status); err != nil {
			var ingestErr domain.IngestError
			if !errors.As(err, &ingestErr) {
				ingestErr = domain.IngestError{VideoID: videoID, Stage: "pipeline", Err: err}
			}
			logger.Warn("video %s: %v", videoID, ingestErr)
			status.Errors = append(status.Errors, ingestErr)
		}
	}
	return status, nil
}

// IngestAll runs IngestChannel for every tracked channel.
func (s *IngestService) IngestAll(ctx context.Context, limit int) (*driving.IngestStatus, error) {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	total := &driving.IngestStatus{}
	for _, ch := range channels {
		status, err := s.IngestChannel(ctx, ch.ID, limit)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return total, err
			}
			logger.Warn("channel %s: %v", ch.ID, err)
			total.Errors = append(total.Errors, domain.IngestError{VideoID: "", Stage: "channel " + ch.ID, Err: err})
			continue
		}
		total.VideosSeen += status.VideosSeen
		total.VideosIngested += status.VideosIngested
		total.VideosSkipped += status.VideosSkipped
		total.CacheHits += status.CacheHits
		total.ExtractionCacheHits += status.ExtractionCacheHits
		total.Errors = append(total.Errors, status.Errors...)
	}
	return total, nil
}

// IngestVideo runs the pipeline for a single video.
func (s *IngestService) IngestVideo(ctx context.Context, videoID string, force bool) error {
	if videoID == "" {
		return fmt.Errorf("%w: video ID is required", domain.ErrInvalidInput)
	}
	status := &driving.IngestStatus{}
	return s.ingestOne(ctx, videoID, nil, force, status)
}

// Watch ingests videos as transcript files appear in the cache directory.
func (s *IngestService) Watch(ctx context.Context) error {
	events, err := s.cache.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch transcript cache: %w", err)
	}
	logger.Info("watching %s for new transcripts", s.cache.Dir())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case videoID, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.IngestVideo(ctx, videoID, false); err != nil {
				logger.Warn("video %s: %v", videoID, err)
			}
		}
	}
}

// ingestOne runs the full pipeline for one video. channel may be nil;
// it is then fetched from the metadata client when available.
func (s *IngestService) ingestOne(ctx context.Context, videoID string, channel *domain.Channel, force bool, status *driving.IngestStatus) error {
	if !force {
		exists, err := s.videos.Exists(ctx, videoID)
		if err != nil {
			return domain.IngestError{VideoID: videoID, Stage: "store", Err: err}
		}
		if exists {
			logger.Debug("video %s already ingested; skipping", videoID)
			status.VideosSkipped++
			return nil
		}
	}

	video := s.videoMetadata(ctx, videoID, channel)

	segments, fromCache, err := s.obtainTranscript(ctx, videoID)
	if err != nil {
		return domain.IngestError{VideoID: videoID, Stage: "transcript", Err: err}
	}
	if fromCache {
		status.CacheHits++
	}

	analysis, cached, err := s.analyse(ctx, video, segments)
	if err != nil {
		return domain.IngestError{VideoID: videoID, Stage: "analysis", Err: err}
	}
	if cached {
		status.ExtractionCacheHits++
	}

	if err := s.persist(ctx, video, segments, analysis); err != nil {
		return domain.IngestError{VideoID: videoID, Stage: "store", Err: err}
	}

	status.VideosIngested++
	logger.Info("video %s ingested (%d segments)", videoID, len(segments))
	return nil
}

// videoMetadata fetches video details, falling back to a minimal record
// when no metadata client is configured or the fetch fails.
func (s *IngestService) videoMetadata(ctx context.Context, videoID string, channel *domain.Channel) *domain.Video {
	if s.metadata != nil {
		video, err := s.metadata.VideoDetails(ctx, videoID)
		if err == nil {
			if channel != nil {
				video.ChannelID = channel.ID
				video.ChannelName = channel.Title
			}
			return video
		}
		logger.Warn("video %s: metadata fetch failed: %v", videoID, err)
	}

	video := &domain.Video{ID: videoID}
	if channel != nil {
		video.ChannelID = channel.ID
		video.ChannelName = channel.Title
	} else {
		video.ChannelID = "unknown"
	}
	return video
}

// obtainTranscript serves the transcript from cache when possible,
// otherwise tries each provider in order and caches the first success.
func (s *IngestService) obtainTranscript(ctx context.Context, videoID string) ([]domain.TranscriptSegment, bool, error) {
	if segments, ok, err := s.cache.Get(videoID); err != nil {
		logger.Warn("video %s: cache read failed: %v", videoID, err)
	} else if ok {
		logger.Debug("video %s: transcript cache hit (%d segments)", videoID, len(segments))
		return segments, true, nil
	}

	var failures []error
	for _, provider := range s.providers {
		segments, err := provider.Fetch(ctx, videoID)
		switch {
		case err == nil:
			logger.Info("video %s: transcript fetched via %s", videoID, provider.Name())
			if err := s.cache.Put(videoID, segments); err != nil {
				logger.Warn("video %s: cache write failed: %v", videoID, err)
			}
			return segments, false, nil
		case errors.Is(err, domain.ErrNoTranscript):
			logger.Debug("video %s: no transcript via %s", videoID, provider.Name())
		default:
			logger.Warn("video %s: %s failed: %v", videoID, provider.Name(), err)
			failures = append(failures, fmt.Errorf("%s: %w", provider.Name(), err))
		}
	}
	return nil, false, errors.Join(domain.ErrNoTranscript, errors.Join(failures...))
}

// analyse returns the LLM analysis for a transcript, reusing the cached
// extraction when the transcript hash is unchanged. A nil LLM yields a
// nil analysis and the video is stored without one.
func (s *IngestService) analyse(ctx context.Context, video *domain.Video, segments []domain.TranscriptSegment) (*domain.VideoAnalysis, bool, error) {
	if s.llm == nil {
		logger.Debug("video %s: no LLM configured; storing transcript only", video.ID)
		return nil, false, nil
	}

	hash := domain.TranscriptHash(segments)
	if entry, err := s.extractions.Get(ctx, video.ID); err == nil && entry.Matches(hash) {
		logger.Debug("video %s: extraction cache hit", video.ID)
		analysis := entry.Analysis
		return &analysis, true, nil
	}

	analysis, err := s.llm.AnalyseTranscript(ctx, video.Title, video.ChannelName, domain.TranscriptText(segments))
	if err != nil {
		return nil, false, err
	}

	entry := domain.ExtractionCacheEntry{
		VideoID:        video.ID,
		TranscriptHash: hash,
		Analysis:       *analysis,
		UpdatedAt:      time.Now(),
	}
	if err := s.extractions.Put(ctx, entry); err != nil {
		logger.Warn("video %s: extraction cache write failed: %v", video.ID, err)
	}
	return analysis, false, nil
}

// persist writes the video, its segments, and the entities and mentions
// surfaced by the analysis.
func (s *IngestService) persist(ctx context.Context, video *domain.Video, segments []domain.TranscriptSegment, analysis *domain.VideoAnalysis) error {
	if analysis != nil {
		video.Summary = analysis.Summary
		video.Sentiment = domain.ParseSentiment(analysis.Sentiment)
		video.Topics = analysis.Topics
		video.Brands = analysis.Brands
		video.Sponsors = analysis.Sponsors
		video.Products = video.Products[:0]
		for _, p := range analysis.Products {
			video.Products = append(video.Products, p.Product)
		}
	}
	video.UpdatedAt = time.Now()

	if err := s.videos.Save(ctx, *video); err != nil {
		return fmt.Errorf("save video: %w", err)
	}
	if err := s.videos.SaveSegments(ctx, video.ID, segments); err != nil {
		return fmt.Errorf("save segments: %w", err)
	}
	if analysis == nil {
		return nil
	}

	transcript := strings.ToLower(domain.TranscriptText(segments))
	score := domain.ParseSentiment(analysis.Sentiment).Score()

	record := func(kind domain.EntityKind, name string, brandID int64) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}
		entityID, err := s.entities.Upsert(ctx, domain.Entity{
			Kind:           kind,
			Name:           name,
			NormalisedName: domain.NormaliseName(name),
			BrandID:        brandID,
		})
		if err != nil {
			return fmt.Errorf("upsert %s %q: %w", kind, name, err)
		}
		count := strings.Count(transcript, domain.NormaliseName(name))
		if count == 0 {
			count = 1
		}
		mention := domain.Mention{
			ID:             uuid.NewString(),
			EntityID:       entityID,
			Kind:           kind,
			VideoID:        video.ID,
			ChannelID:      video.ChannelID,
			Count:          count,
			SentimentScore: score,
			FirstSeen:      time.Now(),
		}
		if err := s.mentions.Save(ctx, mention); err != nil {
			return fmt.Errorf("save mention of %s %q: %w", kind, name, err)
		}
		return nil
	}

	for _, brand := range analysis.Brands {
		if err := record(domain.EntityBrand, brand, 0); err != nil {
			return err
		}
	}
	for _, product := range analysis.Products {
		var brandID int64
		if product.Brand != "" {
			if brand, err := s.entities.GetByName(ctx, domain.EntityBrand, domain.NormaliseName(product.Brand)); err == nil {
				brandID = brand.ID
			}
		}
		if err := record(domain.EntityProduct, product.Product, brandID); err != nil {
			return err
		}
	}
	for _, sponsor := range analysis.Sponsors {
		if err := record(domain.EntitySponsor, sponsor, 0); err != nil {
			return err
		}
	}
	return nil
}

func (s *IngestService) acquire(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[channelID] {
		return false
	}
	s.active[channelID] = true
	return true
}

func (s *IngestService) release(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, channelID)
}
