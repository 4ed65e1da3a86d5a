package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchChannels []string
	searchAnswer   bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested videos and transcripts",
	Long: `Searches video titles, summaries, extracted entities and transcript
segments. With --answer, an LLM synthesises a short answer from the hits.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Show autocomplete suggestions for a query prefix",
	Long: `Shows what the search box would suggest for a partial query.
With no prefix, trending queries are shown instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchChannels, "channel", nil, "restrict to channel IDs (repeatable)")
	searchCmd.Flags().BoolVar(&searchAnswer, "answer", false, "synthesise an answer with the LLM")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum number of suggestions")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:      searchLimit,
		ChannelIDs: searchChannels,
		Answer:     searchAnswer,
	}

	result, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printSearchResult(cmd, result)
	return nil
}

func printSearchResult(cmd *cobra.Command, result *domain.SearchResult) {
	if result.IsEmpty() {
		cmd.Println("No results found.")
		return
	}

	if result.Answer != "" {
		cmd.Println(result.Answer)
		cmd.Println()
	}

	if len(result.Videos) > 0 {
		cmd.Println("Videos:")
		for i, hit := range result.Videos {
			cmd.Printf("  [%d] %s - %s (%.1f)\n", i+1, hit.Video.Title, hit.Video.ChannelName, hit.Score)
			if hit.Video.Summary != "" {
				cmd.Printf("      %s\n", hit.Video.Summary)
			}
		}
		cmd.Println()
	}

	if len(result.Segments) > 0 {
		cmd.Println("Transcript segments:")
		for _, hit := range result.Segments {
			cmd.Printf("  [%s @ %.0fs] %s\n", hit.VideoID, hit.Segment.Start, hit.Segment.Text)
		}
	}
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	suggestions, err := searchService.Suggest(cmd.Context(), prefix, suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}

	for _, s := range suggestions {
		cmd.Printf("  %-30s (%s)\n", s.Text, s.Type)
	}
	return nil
}
