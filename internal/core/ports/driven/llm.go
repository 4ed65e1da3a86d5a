package driven

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// LLMService provides language model operations over transcripts.
// This is an optional service - when nil, ingestion stores transcripts
// without analysis and search degrades to keyword-only results.
//
// Implementations may include:
//   - OpenAI (chat completions)
//   - Gemini (generateContent)
type LLMService interface {
	// AnalyseTranscript produces the full analysis of one transcript:
	// summary, overall sentiment, topics, and the entities it names.
	// The transcript is supplied as flattened plain text together with
	// the video title and channel name for context.
	AnalyseTranscript(ctx context.Context, title, channel, transcript string) (*domain.VideoAnalysis, error)

	// ExtractEntities runs the strict extraction-only prompt: literal
	// brand/product/sponsor names, no inference.
	ExtractEntities(ctx context.Context, transcript string) (*domain.ExtractionResult, error)

	// AnswerQuery synthesises a short answer to a user query from
	// database context assembled by the search service.
	AnswerQuery(ctx context.Context, query, context string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
