package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/ratelimit"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := yt.NewService(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return &Client{
		service: service,
		limiter: ratelimit.New(ratelimit.ServiceYouTubeData),
	}
}

func TestChannelDetails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "channels")
		assert.Equal(t, "UCabc", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items":[{
			"id":"UCabc",
			"snippet":{"title":"Tech Reviews","description":"Honest reviews","publishedAt":"2015-03-01T00:00:00Z",
				"thumbnails":{"high":{"url":"https://img.example/high.jpg"}}},
			"statistics":{"subscriberCount":"120000","videoCount":"340","viewCount":"9000000"}
		}]}`)
	}))

	ch, err := c.ChannelDetails(context.Background(), "UCabc")
	require.NoError(t, err)
	assert.Equal(t, "UCabc", ch.ID)
	assert.Equal(t, "Tech Reviews", ch.Title)
	assert.Equal(t, int64(120000), ch.SubscriberCount)
	assert.Equal(t, int64(340), ch.VideoCount)
	assert.Equal(t, "https://img.example/high.jpg", ch.ThumbnailURL)
	assert.Equal(t, domain.PlatformYouTube, ch.Platform)
}

func TestChannelDetails_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))

	_, err := c.ChannelDetails(context.Background(), "UCmissing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChannelDetails_QuotaExceeded(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quotaExceeded"}}`)
	}))

	_, err := c.ChannelDetails(context.Background(), "UCabc")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestLatestVideoIDs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "channels"):
			fmt.Fprint(w, `{"items":[{"contentDetails":{"relatedPlaylists":{"uploads":"UUabc"}}}]}`)
		case strings.Contains(r.URL.Path, "playlistItems"):
			assert.Equal(t, "UUabc", r.URL.Query().Get("playlistId"))
			if r.URL.Query().Get("pageToken") == "" {
				fmt.Fprint(w, `{"nextPageToken":"p2","items":[
					{"contentDetails":{"videoId":"vid1"}},
					{"contentDetails":{"videoId":"vid2"}}]}`)
			} else {
				fmt.Fprint(w, `{"items":[{"contentDetails":{"videoId":"vid3"}}]}`)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ids, err := c.LatestVideoIDs(context.Background(), "UCabc", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"vid1", "vid2", "vid3"}, ids)
}

func TestLatestVideoIDs_StopsAtLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "channels") {
			fmt.Fprint(w, `{"items":[{"contentDetails":{"relatedPlaylists":{"uploads":"UUabc"}}}]}`)
			return
		}
		assert.Equal(t, "2", r.URL.Query().Get("maxResults"))
		fmt.Fprint(w, `{"nextPageToken":"more","items":[
			{"contentDetails":{"videoId":"vid1"}},
			{"contentDetails":{"videoId":"vid2"}}]}`)
	}))

	ids, err := c.LatestVideoIDs(context.Background(), "UCabc", 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestVideoDetails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "videos")
		fmt.Fprint(w, `{"items":[{
			"id":"vid1",
			"snippet":{"channelId":"UCabc","channelTitle":"Tech Reviews","title":"Aeron Review",
				"publishedAt":"2026-08-01T09:00:00Z","categoryId":"28"},
			"contentDetails":{"duration":"PT14M52S"},
			"statistics":{"viewCount":"51234","likeCount":"2300"}
		}]}`)
	}))

	v, err := c.VideoDetails(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Equal(t, "vid1", v.ID)
	assert.Equal(t, "UCabc", v.ChannelID)
	assert.Equal(t, "Tech Reviews", v.ChannelName)
	assert.Equal(t, int64(14*60+52), v.Duration)
	assert.Equal(t, int64(51234), v.ViewCount)
}

func TestVideoDetails_EmptyID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	_, err := c.VideoDetails(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientOption_NoCredentials(t *testing.T) {
	_, err := clientOption(context.Background(), domain.YouTubeSettings{})
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestClientOption_MissingServiceAccountFile(t *testing.T) {
	_, err := clientOption(context.Background(), domain.YouTubeSettings{
		ServiceAccountFile: "/nonexistent/account.json",
	})
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PT14M52S", 14*60 + 52},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"P1DT2H", 86400 + 7200},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseISODuration(tt.in), "input %q", tt.in)
	}
}

func TestBestThumbnail(t *testing.T) {
	assert.Equal(t, "", bestThumbnail(nil))
	assert.Equal(t, "max", bestThumbnail(&yt.ThumbnailDetails{
		Maxres: &yt.Thumbnail{Url: "max"},
		High:   &yt.Thumbnail{Url: "high"},
	}))
	assert.Equal(t, "default", bestThumbnail(&yt.ThumbnailDetails{
		Default: &yt.Thumbnail{Url: "default"},
	}))
}
