package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
)

var (
	ingestLimit int
	ingestVideo string
	ingestForce bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [channel-id]",
	Short: "Ingest video transcripts and analyse them",
	Long: `Fetches recent uploads, obtains transcripts and runs LLM analysis.

With a channel ID, only that channel is ingested. Without arguments all
tracked channels are ingested. Videos already in the database are
skipped; cached transcripts are reused without re-fetching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVarP(&ingestLimit, "limit", "n", 10, "maximum videos per channel")
	ingestCmd.Flags().StringVar(&ingestVideo, "video", "", "ingest a single video by ID")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "re-ingest even if the video already exists")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch the transcript cache and ingest new files as they appear")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()

	if ingestWatch {
		cmd.Println("Watching transcript cache. Press Ctrl+C to stop.")
		return ingestOrchestrator.Watch(ctx)
	}

	if ingestVideo != "" {
		cmd.Printf("Ingesting video %s...\n", ingestVideo)
		if err := ingestOrchestrator.IngestVideo(ctx, ingestVideo, ingestForce); err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		cmd.Println("Done.")
		return nil
	}

	var (
		status *driving.IngestStatus
		err    error
	)
	if len(args) > 0 {
		cmd.Printf("Ingesting channel %s...\n", args[0])
		status, err = ingestOrchestrator.IngestChannel(ctx, args[0], ingestLimit)
	} else {
		cmd.Println("Ingesting all tracked channels...")
		status, err = ingestOrchestrator.IngestAll(ctx, ingestLimit)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printIngestStatus(cmd, status)
	return nil
}

func printIngestStatus(cmd *cobra.Command, status *driving.IngestStatus) {
	cmd.Printf("Ingest complete: %d seen, %d ingested, %d skipped\n",
		status.VideosSeen, status.VideosIngested, status.VideosSkipped)
	cmd.Printf("  Transcript cache hits: %d\n", status.CacheHits)
	cmd.Printf("  Extraction cache hits: %d\n", status.ExtractionCacheHits)

	if len(status.Errors) > 0 {
		cmd.Printf("  Errors: %d\n", len(status.Errors))
		for _, e := range status.Errors {
			cmd.Printf("    %s (%s): %v\n", e.VideoID, e.Stage, e.Err)
		}
	}
}
