package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"the search query, e.g. a brand or product name"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum results to return (default 10)"`
	ChannelIDs []string `json:"channel_ids,omitempty" jsonschema:"restrict results to these channel IDs"`
	Answer     bool     `json:"answer,omitempty" jsonschema:"synthesise a short answer from the hits"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Videos   []VideoHitOutput   `json:"videos"`
	Segments []SegmentHitOutput `json:"segments"`
	Answer   string             `json:"answer,omitempty"`
}

// VideoHitOutput represents a matched video.
type VideoHitOutput struct {
	VideoID     string   `json:"video_id"`
	Title       string   `json:"title"`
	ChannelName string   `json:"channel_name"`
	Summary     string   `json:"summary,omitempty"`
	Sentiment   string   `json:"sentiment,omitempty"`
	Brands      []string `json:"brands,omitempty"`
	Sponsors    []string `json:"sponsors,omitempty"`
	Score       float64  `json:"score"`
}

// SegmentHitOutput represents a matched transcript segment.
type SegmentHitOutput struct {
	VideoID     string  `json:"video_id"`
	ChannelName string  `json:"channel_name,omitempty"`
	Start       float64 `json:"start_seconds"`
	Text        string  `json:"text"`
}

// EntityInsightsInput is the input schema for the insights tools.
type EntityInsightsInput struct {
	Name string `json:"name" jsonschema:"the entity name, e.g. a brand name as it appears in transcripts"`
}

// EntityInsightsOutput is the output schema for the insights tools.
type EntityInsightsOutput struct {
	Name             string               `json:"name"`
	Kind             string               `json:"kind"`
	TotalMentions    int                  `json:"total_mentions"`
	VideoCount       int                  `json:"video_count"`
	ChannelCount     int                  `json:"channel_count"`
	AverageSentiment float64              `json:"average_sentiment"`
	TopChannels      []ChannelCountOutput `json:"top_channels,omitempty"`
}

// ChannelCountOutput pairs a channel with its mention volume.
type ChannelCountOutput struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name,omitempty"`
	Mentions    int    `json:"mentions"`
}

// ChannelInsightsInput is the input schema for the channel_insights tool.
type ChannelInsightsInput struct {
	ChannelID string `json:"channel_id" jsonschema:"the YouTube channel ID, e.g. UC..."`
}

// ChannelInsightsOutput is the output schema for the channel_insights tool.
type ChannelInsightsOutput struct {
	ChannelID      string              `json:"channel_id"`
	Title          string              `json:"title"`
	VideosIngested int                 `json:"videos_ingested"`
	TopBrands      []EntityCountOutput `json:"top_brands,omitempty"`
	TopProducts    []EntityCountOutput `json:"top_products,omitempty"`
	TopSponsors    []EntityCountOutput `json:"top_sponsors,omitempty"`
	Sentiment      map[string]int      `json:"sentiment_breakdown,omitempty"`
}

// EntityCountOutput pairs an entity name with its mention volume.
type EntityCountOutput struct {
	Name     string `json:"name"`
	Mentions int    `json:"mentions"`
}

// ListChannelsOutput is the output schema for the list_channels tool.
type ListChannelsOutput struct {
	Channels []ChannelOutput `json:"channels"`
}

// ChannelOutput represents one tracked channel.
type ChannelOutput struct {
	ChannelID   string `json:"channel_id"`
	Title       string `json:"title"`
	Subscribers int64  `json:"subscribers,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search ingested video transcripts, summaries and extracted entities",
	}, s.handleSearch)

	if s.ports.Insights != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "brand_insights",
			Description: "Aggregated mention counts and sentiment for a brand",
		}, s.entityInsightsHandler(domain.EntityBrand))

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "sponsor_insights",
			Description: "Aggregated mention counts and sentiment for a video sponsor",
		}, s.entityInsightsHandler(domain.EntitySponsor))

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "channel_insights",
			Description: "Top mentioned entities and sentiment breakdown for a tracked channel",
		}, s.handleChannelInsights)
	}

	if s.ports.Channels != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_channels",
			Description: "List all tracked channels",
		}, s.handleListChannels)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{
		Limit:      limit,
		ChannelIDs: input.ChannelIDs,
		Answer:     input.Answer,
	}
	result, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Videos:   make([]VideoHitOutput, len(result.Videos)),
		Segments: make([]SegmentHitOutput, len(result.Segments)),
		Answer:   result.Answer,
	}
	for i, hit := range result.Videos {
		output.Videos[i] = VideoHitOutput{
			VideoID:     hit.Video.ID,
			Title:       hit.Video.Title,
			ChannelName: hit.Video.ChannelName,
			Summary:     hit.Video.Summary,
			Sentiment:   string(hit.Video.Sentiment),
			Brands:      hit.Video.Brands,
			Sponsors:    hit.Video.Sponsors,
			Score:       hit.Score,
		}
	}
	for i, hit := range result.Segments {
		output.Segments[i] = SegmentHitOutput{
			VideoID:     hit.VideoID,
			ChannelName: hit.ChannelName,
			Start:       hit.Segment.Start,
			Text:        hit.Segment.Text,
		}
	}

	return nil, output, nil
}

// entityInsightsHandler builds an insights handler bound to one entity kind.
func (s *Server) entityInsightsHandler(kind domain.EntityKind) func(
	context.Context, *mcp.CallToolRequest, EntityInsightsInput,
) (*mcp.CallToolResult, EntityInsightsOutput, error) {
	return func(
		ctx context.Context,
		_ *mcp.CallToolRequest,
		input EntityInsightsInput,
	) (*mcp.CallToolResult, EntityInsightsOutput, error) {
		insights, err := s.ports.Insights.EntityInsights(ctx, kind, input.Name)
		if err != nil {
			return nil, EntityInsightsOutput{}, err
		}

		output := EntityInsightsOutput{
			Name:             insights.Entity.Name,
			Kind:             string(kind),
			TotalMentions:    insights.TotalMentions,
			VideoCount:       insights.VideoCount,
			ChannelCount:     insights.ChannelCount,
			AverageSentiment: insights.AverageSentiment,
		}
		for _, ch := range insights.TopChannels {
			output.TopChannels = append(output.TopChannels, ChannelCountOutput{
				ChannelID:   ch.ChannelID,
				ChannelName: ch.ChannelName,
				Mentions:    ch.Mentions,
			})
		}

		return nil, output, nil
	}
}

// handleChannelInsights handles the channel_insights tool invocation.
func (s *Server) handleChannelInsights(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChannelInsightsInput,
) (*mcp.CallToolResult, ChannelInsightsOutput, error) {
	if input.ChannelID == "" {
		return nil, ChannelInsightsOutput{}, fmt.Errorf("channel_id is required")
	}

	insights, err := s.ports.Insights.ChannelInsights(ctx, input.ChannelID)
	if err != nil {
		return nil, ChannelInsightsOutput{}, err
	}

	output := ChannelInsightsOutput{
		ChannelID:      insights.Channel.ID,
		Title:          insights.Channel.Title,
		VideosIngested: insights.VideosIngested,
		TopBrands:      entityCounts(insights.TopBrands),
		TopProducts:    entityCounts(insights.TopProducts),
		TopSponsors:    entityCounts(insights.TopSponsors),
	}
	if len(insights.SentimentBreakdown) > 0 {
		output.Sentiment = make(map[string]int, len(insights.SentimentBreakdown))
		for sentiment, count := range insights.SentimentBreakdown {
			output.Sentiment[string(sentiment)] = count
		}
	}

	return nil, output, nil
}

// handleListChannels handles the list_channels tool invocation.
func (s *Server) handleListChannels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListChannelsOutput, error) {
	channels, err := s.ports.Channels.List(ctx)
	if err != nil {
		return nil, ListChannelsOutput{}, err
	}

	output := ListChannelsOutput{
		Channels: make([]ChannelOutput, len(channels)),
	}
	for i, ch := range channels {
		output.Channels[i] = ChannelOutput{
			ChannelID:   ch.ID,
			Title:       ch.Title,
			Subscribers: ch.SubscriberCount,
		}
	}

	return nil, output, nil
}

func entityCounts(entities []domain.EntityMentionCount) []EntityCountOutput {
	if len(entities) == 0 {
		return nil
	}
	out := make([]EntityCountOutput, len(entities))
	for i, e := range entities {
		out[i] = EntityCountOutput{
			Name:     e.Entity.Name,
			Mentions: e.Mentions,
		}
	}
	return out
}
