package cli

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
)

// setupTestServices wires mock services into the command tree and
// returns a cleanup that restores whatever was there before.
func setupTestServices() func() {
	oldChannels := channelService
	oldIngest := ingestOrchestrator
	oldReset := resetService
	oldSearch := searchService
	oldInsights := insightsService
	oldSettings := settingsService
	oldDBPath := databasePath
	oldCacheDir := cacheDir

	channelService = &mockChannelService{}
	ingestOrchestrator = &mockIngestOrchestrator{}
	resetService = &mockResetService{}
	searchService = &mockSearchService{}
	insightsService = &mockInsightsService{}
	settingsService = &mockSettingsService{}
	databasePath = "/tmp/clipsight-test/clipsight.db"
	cacheDir = "/tmp/clipsight-test/transcripts"

	return func() {
		channelService = oldChannels
		ingestOrchestrator = oldIngest
		resetService = oldReset
		searchService = oldSearch
		insightsService = oldInsights
		settingsService = oldSettings
		databasePath = oldDBPath
		cacheDir = oldCacheDir
	}
}

type mockChannelService struct {
	channels []domain.Channel
	err      error
}

func (m *mockChannelService) Track(_ context.Context, channelID string) (*domain.Channel, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Channel{ID: channelID, Title: "Mock Channel", SubscriberCount: 1000}, nil
}

func (m *mockChannelService) Get(_ context.Context, channelID string) (*domain.Channel, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Channel{ID: channelID, Title: "Mock Channel"}, nil
}

func (m *mockChannelService) List(_ context.Context) ([]domain.Channel, error) {
	return m.channels, m.err
}

type mockIngestOrchestrator struct {
	status *driving.IngestStatus
	err    error
}

func (m *mockIngestOrchestrator) IngestChannel(_ context.Context, _ string, _ int) (*driving.IngestStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &driving.IngestStatus{}, nil
}

func (m *mockIngestOrchestrator) IngestVideo(_ context.Context, _ string, _ bool) error {
	return m.err
}

func (m *mockIngestOrchestrator) IngestAll(_ context.Context, _ int) (*driving.IngestStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &driving.IngestStatus{}, nil
}

func (m *mockIngestOrchestrator) Watch(_ context.Context) error {
	return m.err
}

type mockResetService struct {
	report        *domain.ResetReport
	channelReport *domain.ChannelResetReport
	err           error

	lastOpts domain.ResetOptions
}

func (m *mockResetService) Reset(_ context.Context, opts domain.ResetOptions) (*domain.ResetReport, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.ResetReport{
		CacheChecked:      opts.CheckCache,
		CacheFound:        opts.CheckCache,
		DatabaseRemoved:   true,
		SchemaInitialised: true,
	}, nil
}

func (m *mockResetService) ResetChannel(_ context.Context, channelID string) (*domain.ChannelResetReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.channelReport != nil {
		return m.channelReport, nil
	}
	return &domain.ChannelResetReport{ChannelID: channelID, VideosRemoved: 3}, nil
}

type mockSearchService struct {
	result      *domain.SearchResult
	suggestions []domain.Suggestion
	err         error
}

func (m *mockSearchService) Search(_ context.Context, query string, _ domain.SearchOptions) (*domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.SearchResult{
		Query: query,
		Videos: []domain.VideoHit{
			{Video: domain.Video{Title: "Mock Video", ChannelName: "Mock Channel"}, Score: 2},
		},
	}, nil
}

func (m *mockSearchService) Suggest(_ context.Context, _ string, _ int) ([]domain.Suggestion, error) {
	return m.suggestions, m.err
}

type mockInsightsService struct {
	entity  *domain.EntityInsights
	channel *domain.ChannelInsights
	err     error
}

func (m *mockInsightsService) EntityInsights(_ context.Context, kind domain.EntityKind, name string) (*domain.EntityInsights, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.entity != nil {
		return m.entity, nil
	}
	return &domain.EntityInsights{Entity: domain.Entity{Kind: kind, Name: name}}, nil
}

func (m *mockInsightsService) ChannelInsights(_ context.Context, channelID string) (*domain.ChannelInsights, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.channel != nil {
		return m.channel, nil
	}
	return &domain.ChannelInsights{Channel: domain.Channel{ID: channelID}}, nil
}

func (m *mockInsightsService) Dashboard(_ context.Context, _ domain.DashboardKind, _ string) (*domain.DashboardEntry, error) {
	return nil, m.err
}

type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	return domain.DefaultAppSettings(), nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error { return m.err }

func (m *mockSettingsService) SetTranscriptAPIKey(_ string) error { return m.err }

func (m *mockSettingsService) SetYouTubeAPIKey(_ string) error { return m.err }

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return *domain.DefaultAppSettings() }
