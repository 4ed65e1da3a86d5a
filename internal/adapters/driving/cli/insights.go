package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Aggregated mention insights",
}

var insightsBrandCmd = &cobra.Command{
	Use:   "brand [name]",
	Short: "Show insights for a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntityInsights(cmd, domain.EntityBrand, args[0])
	},
}

var insightsProductCmd = &cobra.Command{
	Use:   "product [name]",
	Short: "Show insights for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntityInsights(cmd, domain.EntityProduct, args[0])
	},
}

var insightsSponsorCmd = &cobra.Command{
	Use:   "sponsor [name]",
	Short: "Show insights for a sponsor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntityInsights(cmd, domain.EntitySponsor, args[0])
	},
}

var insightsChannelCmd = &cobra.Command{
	Use:   "channel [channel-id]",
	Short: "Show insights for a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannelInsights,
}

func init() {
	insightsCmd.AddCommand(insightsBrandCmd)
	insightsCmd.AddCommand(insightsProductCmd)
	insightsCmd.AddCommand(insightsSponsorCmd)
	insightsCmd.AddCommand(insightsChannelCmd)
	rootCmd.AddCommand(insightsCmd)
}

func runEntityInsights(cmd *cobra.Command, kind domain.EntityKind, name string) error {
	if insightsService == nil {
		return errors.New("insights service not configured")
	}

	insights, err := insightsService.EntityInsights(cmd.Context(), kind, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No data for %s %q.\n", kind, name)
			return nil
		}
		return fmt.Errorf("insights failed: %w", err)
	}

	cmd.Printf("%s: %s\n", kind.Description(), insights.Entity.Name)
	cmd.Printf("  Mentions:       %d across %d videos on %d channels\n",
		insights.TotalMentions, insights.VideoCount, insights.ChannelCount)
	cmd.Printf("  Avg sentiment:  %.0f/100\n", insights.AverageSentiment)
	if !insights.FirstSeen.IsZero() {
		cmd.Printf("  First seen:     %s\n", insights.FirstSeen.Format("2006-01-02"))
	}

	if len(insights.TopChannels) > 0 {
		cmd.Println("  Top channels:")
		for _, ch := range insights.TopChannels {
			name := ch.ChannelName
			if name == "" {
				name = ch.ChannelID
			}
			cmd.Printf("    %-30s %d mentions\n", name, ch.Mentions)
		}
	}
	return nil
}

func runChannelInsights(cmd *cobra.Command, args []string) error {
	if insightsService == nil {
		return errors.New("insights service not configured")
	}

	insights, err := insightsService.ChannelInsights(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("Channel %q is not tracked.\n", args[0])
			return nil
		}
		return fmt.Errorf("insights failed: %w", err)
	}

	cmd.Printf("Channel: %s\n", insights.Channel.Title)
	cmd.Printf("  Videos ingested: %d\n", insights.VideosIngested)

	printTopEntities(cmd, "Top brands", insights.TopBrands)
	printTopEntities(cmd, "Top products", insights.TopProducts)
	printTopEntities(cmd, "Top sponsors", insights.TopSponsors)

	if len(insights.SentimentBreakdown) > 0 {
		cmd.Println("  Sentiment:")
		for _, s := range []domain.Sentiment{domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative} {
			if count := insights.SentimentBreakdown[s]; count > 0 {
				cmd.Printf("    %-10s %d videos\n", s, count)
			}
		}
	}
	return nil
}

func printTopEntities(cmd *cobra.Command, label string, entities []domain.EntityMentionCount) {
	if len(entities) == 0 {
		return
	}
	cmd.Printf("  %s:\n", label)
	for _, e := range entities {
		cmd.Printf("    %-30s %d mentions\n", e.Entity.Name, e.Mentions)
	}
}
