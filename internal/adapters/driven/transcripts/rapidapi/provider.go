// Package rapidapi implements the primary transcript provider, a hosted
// captions service behind the RapidAPI gateway that returns SRT for a
// video ID.
package rapidapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/ratelimit"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/transcripts/subtitle"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.TranscriptProvider = (*Provider)(nil)

// maxResponseSize caps caption downloads at 10 MiB.
const maxResponseSize = 10 << 20

// Provider fetches SRT captions from the RapidAPI captions service.
type Provider struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	scheme  string
	host    string
	apiKey  string
	lang    string
}

// New creates a captions provider for the given RapidAPI host and key.
func New(host, apiKey string) *Provider {
	return &Provider{
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: ratelimit.New(ratelimit.ServiceCaptions),
		scheme:  "https",
		host:    host,
		apiKey:  apiKey,
		lang:    "en",
	}
}

// Name identifies the provider in logs and cache filenames.
func (p *Provider) Name() string {
	return "rapidapi"
}

// Fetch downloads and parses the SRT captions for a video.
func (p *Provider) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: captions API key not configured", domain.ErrNoTranscript)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := url.URL{
		Scheme:   p.scheme,
		Host:     p.host,
		Path:     "/download-srt/" + videoID,
		RawQuery: url.Values{"language": {p.lang}}.Encode(),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building captions request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", p.apiKey)
	req.Header.Set("x-rapidapi-host", p.host)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching captions: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusNotFound:
		return nil, domain.ErrNoTranscript
	case http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		p.limiter.RecordRateLimitError(retryAfter)
		logger.Warn("captions API rate limited; backing off")
		return nil, fmt.Errorf("%w: captions API", domain.ErrRateLimited)
	default:
		return nil, fmt.Errorf("captions API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading captions response: %w", err)
	}

	segments, err := subtitle.ParseSRT(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing captions for %s: %w", videoID, err)
	}
	return segments, nil
}
