package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Manage tracked channels",
	RunE:  runChannelsList,
}

var channelsTrackCmd = &cobra.Command{
	Use:   "track [channel-id]",
	Short: "Track a channel",
	Long: `Adds a YouTube channel to the tracked set, fetching its metadata.
Tracking an already-tracked channel refreshes its metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: runChannelsTrack,
}

var channelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked channels",
	RunE:  runChannelsList,
}

func init() {
	channelsCmd.AddCommand(channelsTrackCmd)
	channelsCmd.AddCommand(channelsListCmd)
	rootCmd.AddCommand(channelsCmd)
}

func runChannelsTrack(cmd *cobra.Command, args []string) error {
	if channelService == nil {
		return errors.New("channel service not configured")
	}

	channel, err := channelService.Track(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("track failed: %w", err)
	}

	cmd.Printf("Tracking %s (%s)\n", channel.Title, channel.ID)
	if channel.SubscriberCount > 0 {
		cmd.Printf("  Subscribers: %d\n", channel.SubscriberCount)
	}
	if channel.VideoCount > 0 {
		cmd.Printf("  Videos:      %d\n", channel.VideoCount)
	}
	return nil
}

func runChannelsList(cmd *cobra.Command, _ []string) error {
	if channelService == nil {
		return errors.New("channel service not configured")
	}

	channels, err := channelService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing channels: %w", err)
	}

	if len(channels) == 0 {
		cmd.Println("No channels tracked. Use 'clipsight channels track <id>' to add one.")
		return nil
	}

	cmd.Println("Tracked channels:")
	for _, ch := range channels {
		cmd.Printf("  %s  %s\n", ch.ID, ch.Title)
	}
	return nil
}
