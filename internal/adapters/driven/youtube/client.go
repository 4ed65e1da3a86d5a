// Package youtube implements the metadata client against the YouTube
// Data API v3. It authenticates with either an API key or a Google
// service account and rate limits all calls to stay inside quota.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	yt "google.golang.org/api/youtube/v3"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/ratelimit"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Client talks to the YouTube Data API.
type Client struct {
	service *yt.Service
	limiter *ratelimit.Limiter
}

var _ driven.MetadataClient = (*Client)(nil)

// New creates a metadata client from YouTube settings. An API key takes
// precedence; otherwise the service-account JSON file is used for a
// read-only JWT token source. Returns domain.ErrMetadataUnavailable when
// neither credential is configured.
func New(ctx context.Context, settings domain.YouTubeSettings) (*Client, error) {
	opt, err := clientOption(ctx, settings)
	if err != nil {
		return nil, err
	}
	service, err := yt.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}
	return &Client{
		service: service,
		limiter: ratelimit.New(ratelimit.ServiceYouTubeData),
	}, nil
}

func clientOption(ctx context.Context, settings domain.YouTubeSettings) (option.ClientOption, error) {
	if settings.APIKey != "" {
		return option.WithAPIKey(settings.APIKey), nil
	}
	if settings.ServiceAccountFile == "" {
		return nil, domain.ErrMetadataUnavailable
	}
	data, err := os.ReadFile(settings.ServiceAccountFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: service account file %s not found",
				domain.ErrMetadataUnavailable, settings.ServiceAccountFile)
		}
		return nil, fmt.Errorf("reading service account file: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(data, yt.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account file: %w", err)
	}
	return option.WithTokenSource(cfg.TokenSource(ctx)), nil
}

// ChannelDetails fetches a channel's snippet and statistics.
func (c *Client) ChannelDetails(ctx context.Context, channelID string) (*domain.Channel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: empty channel ID", domain.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "channel "+channelID)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: channel %s", domain.ErrNotFound, channelID)
	}

	item := resp.Items[0]
	ch := &domain.Channel{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Platform:    domain.PlatformYouTube,
	}
	if item.Snippet.PublishedAt != "" {
		ch.CreationDate = item.Snippet.PublishedAt
	}
	if thumb := bestThumbnail(item.Snippet.Thumbnails); thumb != "" {
		ch.ThumbnailURL = thumb
		ch.AvatarURL = thumb
	}
	if item.Statistics != nil {
		ch.SubscriberCount = int64(item.Statistics.SubscriberCount)
		ch.VideoCount = int64(item.Statistics.VideoCount)
		ch.ViewCount = int64(item.Statistics.ViewCount)
	}
	return ch, nil
}

// LatestVideoIDs returns up to limit recent upload IDs, newest first.
// It resolves the channel's uploads playlist and pages through it.
func (c *Client) LatestVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: empty channel ID", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 10
	}

	playlistID, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, limit)
	pageToken := ""
	for len(ids) < limit {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		pageSize := int64(limit - len(ids))
		if pageSize > 50 {
			pageSize = 50
		}
		resp, err := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).MaxResults(pageSize).
			PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return nil, wrapAPIError(err, "uploads for channel "+channelID)
		}
		for _, item := range resp.Items {
			ids = append(ids, item.ContentDetails.VideoId)
		}
		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}
	logger.Debug("channel %s: resolved %d upload IDs", channelID, len(ids))
	return ids, nil
}

// VideoDetails fetches a video's snippet, duration and statistics.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*domain.Video, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video ID", domain.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "video "+videoID)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNotFound, videoID)
	}

	item := resp.Items[0]
	video := &domain.Video{
		ID:          item.Id,
		ChannelID:   item.Snippet.ChannelId,
		ChannelName: item.Snippet.ChannelTitle,
		Title:       item.Snippet.Title,
		UploadDate:  item.Snippet.PublishedAt,
		Category:    item.Snippet.CategoryId,
	}
	if item.ContentDetails != nil {
		video.Duration = parseISODuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
	}
	if thumb := bestThumbnail(item.Snippet.Thumbnails); thumb != "" {
		video.ThumbnailURL = thumb
	}
	return video, nil
}

// uploadsPlaylist resolves the channel's auto-generated uploads playlist ID.
func (c *Client) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError(err, "channel "+channelID)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil {
		return "", fmt.Errorf("%w: channel %s", domain.ErrNotFound, channelID)
	}
	playlistID := resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if playlistID == "" {
		return "", fmt.Errorf("%w: channel %s has no uploads playlist", domain.ErrNotFound, channelID)
	}
	return playlistID, nil
}

// wrapAPIError converts googleapi errors into domain errors where a
// caller can act on them.
func wrapAPIError(err error, subject string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, subject)
		case http.StatusTooManyRequests, http.StatusForbidden:
			// 403 is how the Data API reports exhausted quota.
			return fmt.Errorf("%w: %s: %s", domain.ErrRateLimited, subject, gerr.Message)
		}
	}
	return fmt.Errorf("fetching %s: %w", subject, err)
}

// bestThumbnail picks the highest-resolution thumbnail available.
func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*yt.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// parseISODuration converts an ISO 8601 duration like "PT1H2M3S" to
// seconds. Malformed input yields zero rather than an error; duration
// is display metadata only.
func parseISODuration(s string) int64 {
	s = strings.TrimPrefix(s, "P")
	s, _ = strings.CutPrefix(s, "T")
	if idx := strings.Index(s, "T"); idx >= 0 {
		// Day component before the T, e.g. "1DT2H".
		s = s[:idx] + s[idx+1:]
	}

	var total int64
	num := ""
	for _, r := range s {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0
		}
		num = ""
		switch r {
		case 'D':
			total += n * 86400
		case 'H':
			total += n * 3600
		case 'M':
			total += n * 60
		case 'S':
			total += n
		default:
			return 0
		}
	}
	return total
}
