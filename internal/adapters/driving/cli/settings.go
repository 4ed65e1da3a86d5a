package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, transcript API and YouTube API.

API keys are prompted for without echo and stored in the config file
with restricted permissions.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider]",
	Short: "Configure the analysis LLM provider",
	Long: `Set the LLM provider used for transcript analysis.

Available providers:
  openai - OpenAI chat completions (default model gpt-4o-mini)
  gemini - Google Gemini (default model gemini-1.5-flash)`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLLM,
}

var settingsTranscriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Set the captions API key",
	RunE:  runSettingsTranscript,
}

var settingsYouTubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Set the YouTube Data API key",
	RunE:  runSettingsYouTube,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long:  `Checks settings are complete and pings the configured LLM provider.`,
	RunE:  runSettingsValidate,
}

var settingsLLMModel string

func init() {
	settingsLLMCmd.Flags().StringVar(&settingsLLMModel, "model", "", "model name (provider default when empty)")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsTranscriptCmd)
	settingsCmd.AddCommand(settingsYouTubeCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model:    %s\n", settings.LLM.Model)
	printKey(cmd, settings.LLM.APIKey)
	cmd.Println()

	cmd.Println("[Transcript]")
	cmd.Printf("  RapidAPI host: %s\n", settings.Transcript.RapidAPIHost)
	printKey(cmd, settings.Transcript.RapidAPIKey)
	if settings.Transcript.CookiesFile != "" {
		cmd.Printf("  Cookies file:  %s\n", settings.Transcript.CookiesFile)
	}
	cmd.Println()

	cmd.Println("[YouTube]")
	if settings.YouTube.APIKey != "" {
		printKey(cmd, settings.YouTube.APIKey)
	} else {
		cmd.Printf("  Service account: %s\n", settings.YouTube.ServiceAccountFile)
	}
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Data dir:  %s\n", settings.Paths.DataDir)
	cmd.Printf("  Cache dir: %s\n", settings.Paths.CacheDir)
	return nil
}

func printKey(cmd *cobra.Command, key string) {
	if key != "" {
		cmd.Printf("  API key:  %s\n", maskAPIKey(key))
	} else {
		cmd.Println("  API key:  (not set)")
	}
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(args[0])
	if !provider.IsValid() {
		return fmt.Errorf("unknown provider %q (use openai or gemini)", args[0])
	}

	model := settingsLLMModel
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	cmd.Printf("Enter %s API key: ", provider)
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("saving LLM settings: %w", err)
	}

	cmd.Printf("LLM provider set to %s (%s).\n", provider, model)

	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("Warning: provider validation failed: %v\n", err)
	} else {
		cmd.Println("Provider validated.")
	}
	return nil
}

func runSettingsTranscript(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Enter RapidAPI captions key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	if err := settingsService.SetTranscriptAPIKey(apiKey); err != nil {
		return fmt.Errorf("saving transcript settings: %w", err)
	}
	cmd.Println("Captions API key saved.")
	return nil
}

func runSettingsYouTube(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Enter YouTube Data API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	if err := settingsService.SetYouTubeAPIKey(apiKey); err != nil {
		return fmt.Errorf("saving YouTube settings: %w", err)
	}
	cmd.Println("YouTube API key saved.")
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("settings incomplete: %w", err)
	}
	cmd.Println("Settings are complete.")

	if err := settingsService.ValidateLLMConfig(); err != nil {
		return fmt.Errorf("LLM validation failed: %w", err)
	}
	cmd.Println("LLM provider reachable.")
	return nil
}
