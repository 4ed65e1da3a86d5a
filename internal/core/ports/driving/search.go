package driving

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// SearchService provides search over ingested videos and transcripts.
type SearchService interface {
	// Search runs a query against video metadata, extracted entities and
	// transcript segments. The query is logged for autocomplete.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)

	// Suggest returns autocomplete suggestions for a partial query,
	// blending known entity names with popular past queries.
	Suggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error)
}
