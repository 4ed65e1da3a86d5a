package mcp

import (
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides transcript and entity search.
	Search driving.SearchService

	// Insights provides aggregated mention data.
	Insights driving.InsightsService

	// Channels lists tracked channels.
	Channels driving.ChannelService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Insights and Channels are optional; their tools degrade gracefully.
	return nil
}
