package mcp

import (
	"context"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result      *domain.SearchResult
	suggestions []domain.Suggestion
	err         error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.SearchResult{Query: query}, nil
	}
	return m.result, nil
}

func (m *mockSearchService) Suggest(_ context.Context, _ string, _ int) ([]domain.Suggestion, error) {
	return m.suggestions, m.err
}

// mockInsightsService is a mock implementation of driving.InsightsService.
type mockInsightsService struct {
	entity  *domain.EntityInsights
	channel *domain.ChannelInsights
	err     error

	lastKind domain.EntityKind
	lastName string
}

func (m *mockInsightsService) EntityInsights(
	_ context.Context,
	kind domain.EntityKind,
	name string,
) (*domain.EntityInsights, error) {
	m.lastKind = kind
	m.lastName = name
	return m.entity, m.err
}

func (m *mockInsightsService) ChannelInsights(_ context.Context, _ string) (*domain.ChannelInsights, error) {
	return m.channel, m.err
}

func (m *mockInsightsService) Dashboard(
	_ context.Context,
	_ domain.DashboardKind,
	_ string,
) (*domain.DashboardEntry, error) {
	return nil, m.err
}

// mockChannelService is a mock implementation of driving.ChannelService.
type mockChannelService struct {
	channels []domain.Channel
	err      error
}

func (m *mockChannelService) Track(_ context.Context, _ string) (*domain.Channel, error) {
	return nil, m.err
}

func (m *mockChannelService) Get(_ context.Context, _ string) (*domain.Channel, error) {
	return nil, m.err
}

func (m *mockChannelService) List(_ context.Context) ([]domain.Channel, error) {
	return m.channels, m.err
}
