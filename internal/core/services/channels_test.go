package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

type channelsMockMetadata struct {
	channel *domain.Channel
	err     error
}

func (m *channelsMockMetadata) ChannelDetails(_ context.Context, channelID string) (*domain.Channel, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.channel != nil {
		return m.channel, nil
	}
	return &domain.Channel{ID: channelID, Title: "Fetched Title", SubscriberCount: 5000}, nil
}

func (m *channelsMockMetadata) LatestVideoIDs(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, m.err
}

func (m *channelsMockMetadata) VideoDetails(_ context.Context, videoID string) (*domain.Video, error) {
	return &domain.Video{ID: videoID}, m.err
}

type channelsMockStore struct {
	saved    map[string]domain.Channel
	saveErr  error
	channels []domain.Channel
}

func newChannelsMockStore() *channelsMockStore {
	return &channelsMockStore{saved: make(map[string]domain.Channel)}
}

func (m *channelsMockStore) Save(_ context.Context, channel domain.Channel) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[channel.ID] = channel
	return nil
}

func (m *channelsMockStore) Get(_ context.Context, id string) (*domain.Channel, error) {
	ch, ok := m.saved[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ch, nil
}

func (m *channelsMockStore) List(_ context.Context) ([]domain.Channel, error) {
	return m.channels, nil
}

func TestChannelService_Track(t *testing.T) {
	store := newChannelsMockStore()
	svc := NewChannelService(&channelsMockMetadata{}, store)

	channel, err := svc.Track(context.Background(), "UC123")

	require.NoError(t, err)
	assert.Equal(t, "Fetched Title", channel.Title)
	assert.False(t, channel.UpdatedAt.IsZero())

	saved, ok := store.saved["UC123"]
	require.True(t, ok, "channel should be persisted")
	assert.Equal(t, "Fetched Title", saved.Title)
}

func TestChannelService_Track_EmptyID(t *testing.T) {
	svc := NewChannelService(&channelsMockMetadata{}, newChannelsMockStore())

	_, err := svc.Track(context.Background(), "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChannelService_Track_WithoutMetadataClient(t *testing.T) {
	store := newChannelsMockStore()
	svc := NewChannelService(nil, store)

	channel, err := svc.Track(context.Background(), "UC123")

	require.NoError(t, err)
	assert.Equal(t, "UC123", channel.ID)
	assert.Equal(t, domain.PlatformYouTube, channel.Platform)
	assert.Contains(t, store.saved, "UC123")
}

func TestChannelService_Track_FetchFails(t *testing.T) {
	meta := &channelsMockMetadata{err: errors.New("quota exceeded")}
	store := newChannelsMockStore()
	svc := NewChannelService(meta, store)

	_, err := svc.Track(context.Background(), "UC123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, store.saved, "nothing should be persisted on fetch failure")
}

func TestChannelService_Track_SaveFails(t *testing.T) {
	store := newChannelsMockStore()
	store.saveErr = errors.New("disk full")
	svc := NewChannelService(&channelsMockMetadata{}, store)

	_, err := svc.Track(context.Background(), "UC123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestChannelService_GetAndList(t *testing.T) {
	store := newChannelsMockStore()
	store.saved["UC123"] = domain.Channel{ID: "UC123", Title: "GlowUp"}
	store.channels = []domain.Channel{{ID: "UC123"}, {ID: "UC456"}}
	svc := NewChannelService(nil, store)

	channel, err := svc.Get(context.Background(), "UC123")
	require.NoError(t, err)
	assert.Equal(t, "GlowUp", channel.Title)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	channels, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, channels, 2)
}
