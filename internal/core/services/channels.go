package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driving"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure ChannelService implements the interface.
var _ driving.ChannelService = (*ChannelService)(nil)

// ChannelService manages the set of tracked channels.
type ChannelService struct {
	metadata driven.MetadataClient
	channels driven.ChannelStore
}

// NewChannelService creates a new channel service. metadata may be nil,
// which limits Track to storing a bare channel record.
func NewChannelService(metadata driven.MetadataClient, channels driven.ChannelStore) *ChannelService {
	return &ChannelService{
		metadata: metadata,
		channels: channels,
	}
}

// Track adds a channel by ID, fetching its metadata from the platform.
// Tracking an already-tracked channel refreshes its metadata.
func (s *ChannelService) Track(ctx context.Context, channelID string) (*domain.Channel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel ID is required", domain.ErrInvalidInput)
	}

	channel := &domain.Channel{ID: channelID, Platform: domain.PlatformYouTube}
	if s.metadata != nil {
		fetched, err := s.metadata.ChannelDetails(ctx, channelID)
		if err != nil {
			return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
		}
		channel = fetched
	} else {
		logger.Warn("no metadata client configured; tracking channel %s without details", channelID)
	}

	channel.UpdatedAt = time.Now()
	if err := s.channels.Save(ctx, *channel); err != nil {
		return nil, fmt.Errorf("save channel %s: %w", channelID, err)
	}
	return channel, nil
}

// Get retrieves a tracked channel by ID.
func (s *ChannelService) Get(ctx context.Context, channelID string) (*domain.Channel, error) {
	return s.channels.Get(ctx, channelID)
}

// List returns all tracked channels.
func (s *ChannelService) List(ctx context.Context) ([]domain.Channel, error) {
	return s.channels.List(ctx)
}
