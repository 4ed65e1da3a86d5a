package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit caps video and segment hits when the caller does
// not set one.
const defaultSearchLimit = 10

// SearchService runs keyword search over ingested videos and transcript
// segments, logs queries for autocomplete, and optionally synthesises an
// answer with the LLM.
type SearchService struct {
	videos    driven.VideoStore
	entities  driven.EntityStore
	searchLog driven.SearchLogStore
	llm       driven.LLMService
}

// NewSearchService creates a new search service. llm may be nil, which
// disables answer synthesis.
func NewSearchService(
	videos driven.VideoStore,
	entities driven.EntityStore,
	searchLog driven.SearchLogStore,
	llm driven.LLMService,
) *SearchService {
	return &SearchService{
		videos:    videos,
		entities:  entities,
		searchLog: searchLog,
		llm:       llm,
	}
}

// Search runs a query against video metadata and transcript segments.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	logger.Section("Search")
	logger.Debug("query %q (limit %d, channels %v)", query, limit, opts.ChannelIDs)

	queryType := s.classify(ctx, query)
	if err := s.searchLog.Record(ctx, query, queryType, time.Now()); err != nil {
		logger.Warn("query log failed: %v", err)
	}

	videos, err := s.videos.SearchVideos(ctx, query, opts.ChannelIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	segments, err := s.videos.SearchSegments(ctx, query, opts.ChannelIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("search segments: %w", err)
	}

	result := &domain.SearchResult{
		Query:    query,
		Videos:   scoreVideos(query, videos),
		Segments: segments,
	}
	logger.Info("matched %d videos, %d segments", len(result.Videos), len(result.Segments))

	if opts.Answer && s.llm != nil && !result.IsEmpty() {
		answer, err := s.llm.AnswerQuery(ctx, query, answerContext(result))
		if err != nil {
			logger.Warn("answer synthesis failed: %v", err)
		} else {
			result.Answer = answer
		}
	}
	return result, nil
}

// Suggest blends entity names with popular past queries, highest weight
// first. An empty prefix returns trending queries only.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	prefix = strings.TrimSpace(prefix)

	var suggestions []domain.Suggestion
	seen := make(map[string]bool)

	add := func(text string, queryType domain.QueryType, weight int) {
		key := strings.ToLower(text)
		if text == "" || seen[key] {
			return
		}
		seen[key] = true
		suggestions = append(suggestions, domain.Suggestion{Text: text, Type: queryType, Weight: weight})
	}

	if prefix == "" {
		trending, err := s.searchLog.Trending(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("trending queries: %w", err)
		}
		for _, q := range trending {
			add(q.Query, q.Type, q.Count)
		}
		return capSuggestions(suggestions, limit), nil
	}

	// Entity names rank above logged queries: a known brand is a better
	// completion than a past free-text search.
	for _, kind := range []domain.EntityKind{domain.EntityBrand, domain.EntityProduct, domain.EntitySponsor} {
		names, err := s.entities.SuggestNames(ctx, kind, prefix, limit)
		if err != nil {
			return nil, fmt.Errorf("suggest %s names: %w", kind, err)
		}
		for _, name := range names {
			add(name, domain.QueryType(kind), 1000)
		}
	}

	logged, err := s.searchLog.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest queries: %w", err)
	}
	for _, q := range logged {
		add(q.Query, q.Type, q.Count)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Weight > suggestions[j].Weight
	})
	return capSuggestions(suggestions, limit), nil
}

// classify maps a query onto a known entity kind when the store has an
// exact name match, otherwise logs it as free text.
func (s *SearchService) classify(ctx context.Context, query string) domain.QueryType {
	normalised := domain.NormaliseName(query)
	for _, kind := range []domain.EntityKind{domain.EntityBrand, domain.EntityProduct, domain.EntitySponsor} {
		if _, err := s.entities.GetByName(ctx, kind, normalised); err == nil {
			return domain.QueryType(kind)
		}
	}
	return domain.QueryFree
}

// scoreVideos ranks title matches above summary-only matches, keeping
// the store's recency order within each band.
func scoreVideos(query string, videos []domain.Video) []domain.VideoHit {
	q := strings.ToLower(query)
	hits := make([]domain.VideoHit, 0, len(videos))
	for _, v := range videos {
		score := 1.0
		if strings.Contains(strings.ToLower(v.Title), q) {
			score = 2.0
		}
		hits = append(hits, domain.VideoHit{Video: v, Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits
}

// answerContext flattens hits into the plain-text context block handed
// to the LLM for answer synthesis.
func answerContext(result *domain.SearchResult) string {
	var b strings.Builder
	for _, hit := range result.Videos {
		fmt.Fprintf(&b, "Video: %s (channel: %s, sentiment: %s)\n", hit.Video.Title, hit.Video.ChannelName, hit.Video.Sentiment)
		if hit.Video.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", hit.Video.Summary)
		}
	}
	for _, hit := range result.Segments {
		fmt.Fprintf(&b, "Transcript (%s, %.0fs): %s\n", hit.ChannelName, hit.Segment.Start, hit.Segment.Text)
	}
	return b.String()
}

func capSuggestions(suggestions []domain.Suggestion, limit int) []domain.Suggestion {
	if len(suggestions) > limit {
		return suggestions[:limit]
	}
	return suggestions
}
