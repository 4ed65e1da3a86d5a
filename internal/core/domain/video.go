package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Video is an ingested video together with its analysis results.
type Video struct {
	// ID is the platform video identifier.
	ID string

	// ChannelID links the video to its channel.
	ChannelID string

	// ChannelName is denormalised for display and search.
	ChannelName string

	// Title is the video title.
	Title string

	// UploadDate is the platform publish date (RFC 3339 or YYYYMMDD as
	// returned by the metadata client).
	UploadDate string

	// Duration is the video length in seconds.
	Duration int64

	// Summary is the LLM-produced transcript summary.
	Summary string

	// Sentiment is the overall transcript sentiment.
	Sentiment Sentiment

	// Topics, Brands, Products and Sponsors are the analysis outputs,
	// denormalised onto the video row for cheap display.
	Topics   []string
	Brands   []string
	Products []string
	Sponsors []string

	ViewCount    int64
	LikeCount    int64
	ThumbnailURL string
	Category     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the video has the minimum required fields.
func (v Video) Validate() error {
	if v.ID == "" || v.ChannelID == "" {
		return ErrInvalidInput
	}
	return nil
}

// TranscriptSegment is a timed slice of transcript text.
type TranscriptSegment struct {
	// Start is the segment start offset in seconds.
	Start float64

	// Duration is the segment length in seconds.
	Duration float64

	// Text is the spoken text of the segment.
	Text string
}

// End returns the segment end offset in seconds.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Duration
}

// TranscriptText flattens segments into newline-joined plain text,
// the form handed to the LLM.
func TranscriptText(segments []TranscriptSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// TranscriptHash computes a stable content hash over segments.
// The hash covers start:end:text lines, so it changes only when the
// transcript itself changes. Used to decide whether a cached extraction
// is still valid.
func TranscriptHash(segments []TranscriptSegment) string {
	h := sha256.New()
	for i, seg := range segments {
		if i > 0 {
			h.Write([]byte{'\n'})
		}
		fmt.Fprintf(h, "%g:%g:%s", seg.Start, seg.End(), strings.TrimSpace(seg.Text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
