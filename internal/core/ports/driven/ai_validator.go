package driven

import "github.com/clipsight-labs/clipsight-cli/internal/core/domain"

// AIConfigValidator validates LLM provider configurations.
// Implementations verify that configurations are valid by testing
// connectivity to the underlying AI services.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
