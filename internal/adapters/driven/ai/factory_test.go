package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name: "missing API key returns nil",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o-mini",
			},
			wantNil: true,
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
			},
		},
		{
			name: "gemini provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
				Model:    "gemini-1.5-flash",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.NotEmpty(t, svc.ModelName())
		})
	}
}

func TestCreateLLMService_DefaultsModel(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestConfigValidator_Unconfigured(t *testing.T) {
	v := NewConfigValidator()
	assert.NoError(t, v.ValidateLLM(nil))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{}))
}
