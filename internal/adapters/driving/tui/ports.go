// Package tui provides an interactive terminal user interface for
// ClipSight. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search and autocomplete.
	Search driving.SearchService

	// Insights provides aggregated mention data for the detail pane.
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
	// Insights and Channels are optional; related panes hide without them.
	return nil
}
