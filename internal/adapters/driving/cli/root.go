// Package cli implements the clipsight command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands run against, injected by main before Execute.
var (
	channelService     driving.ChannelService
	ingestOrchestrator driving.IngestOrchestrator
	resetService       driving.ResetService
	searchService      driving.SearchService
	insightsService    driving.InsightsService
	settingsService    driving.SettingsService
)

// Paths the commands need that are resolved during startup, not stored
// in any service.
var (
	databasePath string
	cacheDir     string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clipsight",
	Short: "Transcript insights for YouTube channels",
	Long: `ClipSight ingests YouTube video transcripts, extracts the brands,
products and sponsors they mention, and makes the results searchable.

Track channels, ingest their uploads, then search and aggregate what
creators actually said.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services aggregates everything the CLI needs from the composition root.
type Services struct {
	Channels driving.ChannelService
	Ingest   driving.IngestOrchestrator
	Reset    driving.ResetService
	Search   driving.SearchService
	Insights driving.InsightsService
	Settings driving.SettingsService

	// DatabasePath and CacheDir are the resolved on-disk locations,
	// reported by status output and used by the reset command.
	DatabasePath string
	CacheDir     string
}

// SetServices injects the application services into the command tree.
func SetServices(s Services) {
	channelService = s.Channels
	ingestOrchestrator = s.Ingest
	resetService = s.Reset
	searchService = s.Search
	insightsService = s.Insights
	settingsService = s.Settings
	databasePath = s.DatabasePath
	cacheDir = s.CacheDir
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
