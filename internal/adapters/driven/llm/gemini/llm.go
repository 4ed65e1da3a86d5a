// Package gemini provides an LLM service adapter using the Google
// Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/llm/prompts"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/ratelimit"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel      = "gemini-1.5-flash"
	DefaultLLMTimeout = 120 * time.Second
)

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL. Overridable for testing.
	BaseURL string

	// Model is the model to use (default: gemini-1.5-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides transcript analysis using the Gemini API.
type LLMService struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	baseURL string
	apiKey  string
	model   string
}

// generateContentRequest is the Gemini generateContent request format.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateContentResponse is the Gemini generateContent response format.
type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.New(ratelimit.ServiceLLM),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// AnalyseTranscript runs the full analysis prompt over one transcript.
func (s *LLMService) AnalyseTranscript(ctx context.Context, title, channel, transcript string) (*domain.VideoAnalysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return &domain.VideoAnalysis{Sentiment: string(domain.SentimentNeutral)}, nil
	}

	raw, err := s.generate(ctx, prompts.Analysis(title, channel, transcript))
	if err != nil {
		return nil, fmt.Errorf("analyse transcript: %w", err)
	}

	var analysis domain.VideoAnalysis
	if err := prompts.ParseJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("analyse transcript: %w", err)
	}
	if analysis.Sentiment == "" {
		analysis.Sentiment = string(domain.SentimentNeutral)
	}
	return &analysis, nil
}

// ExtractEntities runs the strict extraction-only prompt.
func (s *LLMService) ExtractEntities(ctx context.Context, transcript string) (*domain.ExtractionResult, error) {
	if strings.TrimSpace(transcript) == "" {
		return &domain.ExtractionResult{}, nil
	}

	raw, err := s.generate(ctx, prompts.Extraction(transcript))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	var result domain.ExtractionResult
	if err := prompts.ParseJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}
	return &result, nil
}

// AnswerQuery synthesises an answer from assembled database context.
func (s *LLMService) AnswerQuery(ctx context.Context, query, dbContext string) (string, error) {
	raw, err := s.generate(ctx, prompts.Answer(query, dbContext))
	if err != nil {
		return "", fmt.Errorf("answer query: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// generate sends a single-turn generateContent request and returns the
// first candidate's text.
func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		s.limiter.RecordRateLimitError(0)
		return "", fmt.Errorf("%w: gemini", domain.ErrRateLimited)
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the API key by fetching the model's metadata.
func (s *LLMService) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/models/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: failed to create ping request: %w", err)
	}
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("gemini: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("gemini: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
