package domain

import "time"

// QueryType classifies a logged search query for autocomplete weighting.
type QueryType string

// Available query types.
const (
	QueryBrand   QueryType = "brand"
	QuerySponsor QueryType = "sponsor"
	QueryChannel QueryType = "channel"
	QueryProduct QueryType = "product"
	QueryTopic   QueryType = "topic"
	QueryFree    QueryType = "free"
)

// IsValid returns true if the query type is recognised.
func (t QueryType) IsValid() bool {
	switch t {
	case QueryBrand, QuerySponsor, QueryChannel, QueryProduct, QueryTopic, QueryFree:
		return true
	default:
		return false
	}
}

// SearchOptions configures a search request.
type SearchOptions struct {
	// Limit caps the number of video and segment hits (default 10 each).
	Limit int

	// ChannelIDs restricts results to the given channels when non-empty.
	ChannelIDs []string

	// Answer requests an LLM-synthesised answer over the hits.
	Answer bool
}

// VideoHit is a video matched by a search.
type VideoHit struct {
	Video Video

	// Score is a simple relevance score (title matches rank above
	// summary-only matches).
	Score float64
}

// SegmentHit is a transcript segment matched by a search.
type SegmentHit struct {
	VideoID     string
	ChannelName string
	Segment     TranscriptSegment
}

// SearchResult is the combined outcome of one search.
type SearchResult struct {
	Query    string
	Videos   []VideoHit
	Segments []SegmentHit

	// Answer is the LLM-synthesised answer, when requested and available.
	Answer string
}

// IsEmpty reports whether the search matched nothing.
func (r SearchResult) IsEmpty() bool {
	return len(r.Videos) == 0 && len(r.Segments) == 0
}

// SearchQuery is a logged query, kept for autocomplete and trending lists.
type SearchQuery struct {
	ID       int64
	Query    string
	Type     QueryType
	Count    int
	LastUsed time.Time
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	// Text is the suggested completion.
	Text string

	// Type says what kind of thing the suggestion names.
	Type QueryType

	// Weight orders suggestions; higher is better.
	Weight int
}
