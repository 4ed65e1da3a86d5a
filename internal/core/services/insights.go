package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure InsightsService implements the interface.
var _ driving.InsightsService = (*InsightsService)(nil)

// dashboardTTL is how long a cached dashboard payload stays fresh.
const dashboardTTL = time.Hour

// topEntityLimit caps per-kind entity lists in channel insights.
const topEntityLimit = 5

// InsightsService aggregates mentions into entity and channel views and
// maintains the dashboard cache.
type InsightsService struct {
	channels  driven.ChannelStore
	videos    driven.VideoStore
	entities  driven.EntityStore
	mentions  driven.MentionStore
	dashboard driven.DashboardCacheStore
}

// NewInsightsService creates a new insights service.
func NewInsightsService(
	channels driven.ChannelStore,
	videos driven.VideoStore,
	entities driven.EntityStore,
	mentions driven.MentionStore,
	dashboard driven.DashboardCacheStore,
) *InsightsService {
	return &InsightsService{
		channels:  channels,
		videos:    videos,
		entities:  entities,
		mentions:  mentions,
		dashboard: dashboard,
	}
}

// EntityInsights aggregates everything known about one named entity.
func (s *InsightsService) EntityInsights(ctx context.Context, kind domain.EntityKind, name string) (*domain.EntityInsights, error) {
	if !kind.IsValid() || name == "" {
		return nil, fmt.Errorf("%w: valid kind and name are required", domain.ErrInvalidInput)
	}

	entity, err := s.entities.GetByName(ctx, kind, domain.NormaliseName(name))
	if err != nil {
		return nil, fmt.Errorf("look up %s %q: %w", kind, name, err)
	}
	insights, err := s.mentions.InsightsFor(ctx, entity.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate mentions of %q: %w", name, err)
	}
	insights.Entity = *entity
	return insights, nil
}

// ChannelInsights aggregates a channel's analysed output.
func (s *InsightsService) ChannelInsights(ctx context.Context, channelID string) (*domain.ChannelInsights, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel ID is required", domain.ErrInvalidInput)
	}

	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("look up channel %s: %w", channelID, err)
	}
	videos, err := s.videos.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list videos for %s: %w", channelID, err)
	}

	insights := &domain.ChannelInsights{
		Channel:            *channel,
		VideosIngested:     len(videos),
		SentimentBreakdown: make(map[domain.Sentiment]int),
	}
	for _, v := range videos {
		if v.Sentiment != "" {
			insights.SentimentBreakdown[v.Sentiment]++
		}
	}

	for kind, dest := range map[domain.EntityKind]*[]domain.EntityMentionCount{
		domain.EntityBrand:   &insights.TopBrands,
		domain.EntityProduct: &insights.TopProducts,
		domain.EntitySponsor: &insights.TopSponsors,
	} {
		top, err := s.mentions.TopForChannel(ctx, channelID, kind, topEntityLimit)
		if err != nil {
			return nil, fmt.Errorf("top %ss for %s: %w", kind, channelID, err)
		}
		*dest = top
	}
	return insights, nil
}

// Dashboard returns the cached dashboard payload for an entity,
// recomputing it on a miss or when the cached copy has gone stale.
func (s *InsightsService) Dashboard(ctx context.Context, kind domain.DashboardKind, name string) (*domain.DashboardEntry, error) {
	key := domain.DashboardKey(kind, name)

	if entry, err := s.dashboard.Get(ctx, key); err == nil {
		if time.Since(entry.UpdatedAt) < dashboardTTL {
			logger.Debug("dashboard cache hit for %s", key)
			return entry, nil
		}
		logger.Debug("dashboard cache stale for %s", key)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("read dashboard cache %s: %w", key, err)
	}

	payload, err := s.computeDashboard(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	entry := &domain.DashboardEntry{
		Key:       key,
		Kind:      kind,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	if err := s.dashboard.Put(ctx, *entry); err != nil {
		logger.Warn("dashboard cache write failed for %s: %v", key, err)
	}
	return entry, nil
}

// computeDashboard builds the JSON payload for a dashboard key.
func (s *InsightsService) computeDashboard(ctx context.Context, kind domain.DashboardKind, name string) ([]byte, error) {
	var view any
	switch kind {
	case domain.DashboardChannel:
		insights, err := s.ChannelInsights(ctx, name)
		if err != nil {
			return nil, err
		}
		view = insights
	case domain.DashboardBrand, domain.DashboardProduct, domain.DashboardSponsor:
		insights, err := s.EntityInsights(ctx, domain.EntityKind(kind), name)
		if err != nil {
			return nil, err
		}
		view = insights
	default:
		return nil, fmt.Errorf("%w: unknown dashboard kind %q", domain.ErrInvalidInput, kind)
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("encode dashboard payload: %w", err)
	}
	return payload, nil
}
