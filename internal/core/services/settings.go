package services

import (
	"fmt"
	"os"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider        = "llm.provider"
	keyLLMModel           = "llm.model"
	keyLLMBaseURL         = "llm.base_url"
	keyLLMAPIKey          = "llm.api_key"
	keyRapidAPIKey        = "transcript.rapidapi_key"
	keyRapidAPIHost       = "transcript.rapidapi_host"
	keyCookiesFile        = "transcript.cookies_file"
	keyProxyURL           = "transcript.proxy_url"
	keyYouTubeAPIKey      = "youtube.api_key"
	keyYouTubeServiceFile = "youtube.service_account_file"
	keyDataDir            = "paths.data_dir"
	keyCacheDir           = "paths.cache_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty means the provider's public endpoint
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Transcript: domain.TranscriptSettings{
			RapidAPIKey:  s.configStore.GetString(keyRapidAPIKey),
			RapidAPIHost: s.getString(keyRapidAPIHost, defaults.Transcript.RapidAPIHost),
			CookiesFile:  s.configStore.GetString(keyCookiesFile),
			ProxyURL:     s.configStore.GetString(keyProxyURL),
		},
		YouTube: domain.YouTubeSettings{
			APIKey:             s.configStore.GetString(keyYouTubeAPIKey),
			ServiceAccountFile: s.getString(keyYouTubeServiceFile, defaults.YouTube.ServiceAccountFile),
		},
		Paths: domain.PathSettings{
			DataDir:  s.configStore.GetString(keyDataDir),
			CacheDir: s.configStore.GetString(keyCacheDir),
		},
	}
	applyEnvOverrides(settings)

	return settings, nil
}

// applyEnvOverrides lets environment variables supply API keys without
// writing them to the config file. A set variable wins over the stored
// value.
func applyEnvOverrides(settings *domain.AppSettings) {
	llmKeyVars := map[domain.AIProvider]string{
		domain.AIProviderOpenAI: "OPENAI_API_KEY",
		domain.AIProviderGemini: "GEMINI_API_KEY",
	}
	if name, ok := llmKeyVars[settings.LLM.Provider]; ok {
		if v := os.Getenv(name); v != "" {
			settings.LLM.APIKey = v
		}
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		settings.Transcript.RapidAPIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		settings.YouTube.APIKey = v
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if settings.Transcript.RapidAPIKey != "" {
		if err := s.configStore.Set(keyRapidAPIKey, settings.Transcript.RapidAPIKey); err != nil {
			return fmt.Errorf("save rapidapi key: %w", err)
		}
	}
	if err := s.configStore.Set(keyRapidAPIHost, settings.Transcript.RapidAPIHost); err != nil {
		return fmt.Errorf("save rapidapi host: %w", err)
	}
	if err := s.configStore.Set(keyCookiesFile, settings.Transcript.CookiesFile); err != nil {
		return fmt.Errorf("save cookies file: %w", err)
	}
	if err := s.configStore.Set(keyProxyURL, settings.Transcript.ProxyURL); err != nil {
		return fmt.Errorf("save proxy url: %w", err)
	}

	if settings.YouTube.APIKey != "" {
		if err := s.configStore.Set(keyYouTubeAPIKey, settings.YouTube.APIKey); err != nil {
			return fmt.Errorf("save youtube api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyYouTubeServiceFile, settings.YouTube.ServiceAccountFile); err != nil {
		return fmt.Errorf("save service account file: %w", err)
	}

	if err := s.configStore.Set(keyDataDir, settings.Paths.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	if err := s.configStore.Set(keyCacheDir, settings.Paths.CacheDir); err != nil {
		return fmt.Errorf("save cache dir: %w", err)
	}

	return nil
}

// SetLLMProvider configures the analysis LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetTranscriptAPIKey stores the captions API key.
func (s *SettingsService) SetTranscriptAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyRapidAPIKey, key)
}

// SetYouTubeAPIKey stores the data API key.
func (s *SettingsService) SetYouTubeAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyYouTubeAPIKey, key)
}

// Validate checks if current settings are complete enough to ingest.
// Transcript fetching needs either the captions API key or the yt-dlp
// fallback (always available); metadata needs a key or service account.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}
	if settings.YouTube.APIKey == "" && settings.YouTube.ServiceAccountFile == "" {
		return fmt.Errorf("youtube api_key or service_account_file must be configured")
	}
	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return *domain.DefaultAppSettings()
}

// getString retrieves a string with a fallback default.
func (s *SettingsService) getString(key, defaultValue string) string {
	if value := s.configStore.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// getProvider retrieves an AI provider with a fallback default.
func (s *SettingsService) getProvider(key string, defaultValue domain.AIProvider) domain.AIProvider {
	if value := s.configStore.GetString(key); value != "" {
		if provider := domain.AIProvider(value); provider.IsValid() {
			return provider
		}
	}
	return defaultValue
}
