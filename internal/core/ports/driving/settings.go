package driving

import "github.com/clipsight-labs/clipsight-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the analysis LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetTranscriptAPIKey stores the captions API key.
	SetTranscriptAPIKey(key string) error

	// SetYouTubeAPIKey stores the data API key.
	SetYouTubeAPIKey(key string) error

	// Validate checks if current settings are complete enough to ingest.
	Validate() error

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
