package domain

// AIProvider identifies an LLM provider for transcript analysis.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGemini:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// DefaultLLMModels returns the default model per provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderGemini: "gemini-1.5-flash",
	}
}

// LLMSettings configures the analysis provider.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether enough is set to create an LLM service.
// Both supported providers are cloud APIs and require a key.
func (s LLMSettings) IsConfigured() bool {
	return s.Provider.IsValid() && s.APIKey != ""
}

// TranscriptSettings configures transcript fetching.
type TranscriptSettings struct {
	// RapidAPIKey and RapidAPIHost configure the primary captions API.
	RapidAPIKey  string
	RapidAPIHost string

	// CookiesFile and ProxyURL are passed through to the yt-dlp fallback.
	CookiesFile string
	ProxyURL    string
}

// YouTubeSettings configures the metadata client.
type YouTubeSettings struct {
	// APIKey authenticates Data API calls when set.
	APIKey string

	// ServiceAccountFile is a Google service-account JSON path, used
	// when no API key is configured.
	ServiceAccountFile string
}

// PathSettings holds the two well-known on-disk locations: the derived
// database and the durable transcript cache.
type PathSettings struct {
	DataDir  string
	CacheDir string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	LLM        LLMSettings
	Transcript TranscriptSettings
	YouTube    YouTubeSettings
	Paths      PathSettings
}

// DefaultAppSettings returns settings with sensible defaults applied.
// API keys are intentionally left empty; they come from the config store
// or environment.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		Transcript: TranscriptSettings{
			RapidAPIHost: "youtube-captions-transcript-subtitles-video-combiner.p.rapidapi.com",
		},
		YouTube: YouTubeSettings{
			ServiceAccountFile: "account.json",
		},
		Paths: PathSettings{},
	}
}
