package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

var (
	resetChannelID      string
	resetSkipCacheCheck bool
	resetYes            bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the database, preserving cached transcripts",
	Long: `Deletes the derived database and re-initialises an empty schema.

The transcript cache is never touched: cached transcripts survive every
reset and the next ingest rebuilds the database from them at zero
re-fetch cost. Tracked channels and analysis results are lost and must
be re-ingested.

With --channel, only that channel's derived rows (videos, segments,
mentions, cached extractions) are removed; the database file and all
other channels stay as they are.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&resetChannelID, "channel", "", "reset a single channel instead of the whole database")
	resetCmd.Flags().BoolVar(&resetSkipCacheCheck, "skip-cache-check", false, "skip the advisory transcript cache probe")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if resetService == nil {
		return errors.New("reset service not configured")
	}

	if resetChannelID != "" {
		return runChannelReset(cmd, resetChannelID)
	}

	if !resetYes && !confirm(cmd, "This deletes the database and all analysis results. Continue? [y/N] ") {
		cmd.Println("Aborted.")
		return nil
	}

	report, err := resetService.Reset(cmd.Context(), domain.ResetOptions{
		CacheDir:     cacheDir,
		DatabasePath: databasePath,
		CheckCache:   !resetSkipCacheCheck,
	})
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	printResetReport(cmd, report)
	return nil
}

func runChannelReset(cmd *cobra.Command, channelID string) error {
	if !resetYes && !confirm(cmd, fmt.Sprintf("This removes all derived data for channel %s. Continue? [y/N] ", channelID)) {
		cmd.Println("Aborted.")
		return nil
	}

	report, err := resetService.ResetChannel(cmd.Context(), channelID)
	if err != nil {
		return fmt.Errorf("channel reset failed: %w", err)
	}

	cmd.Printf("Channel %s reset.\n", report.ChannelID)
	cmd.Printf("  Videos removed:      %d\n", report.VideosRemoved)
	cmd.Printf("  Segments removed:    %d\n", report.SegmentsRemoved)
	cmd.Printf("  Mentions removed:    %d\n", report.MentionsRemoved)
	cmd.Printf("  Extractions removed: %d\n", report.CacheRowsRemoved)
	return nil
}

func printResetReport(cmd *cobra.Command, report *domain.ResetReport) {
	cmd.Println("Database reset complete.")

	switch {
	case !report.CacheChecked:
		cmd.Println("  Transcript cache:  not checked")
	case report.CacheFound:
		cmd.Println("  Transcript cache:  present (transcripts preserved)")
	default:
		cmd.Println("  Transcript cache:  not found (nothing to preserve)")
	}

	if report.DatabaseRemoved {
		cmd.Println("  Database file:     removed")
	} else {
		cmd.Println("  Database file:     not present")
	}

	if report.SchemaInitialised {
		cmd.Println("  Schema:            initialised")
	}
	cmd.Printf("  State:             %s\n", report.State())
}
