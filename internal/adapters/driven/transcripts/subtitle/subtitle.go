// Package subtitle parses SRT and WebVTT caption files into transcript
// segments. Both formats arrive from transcript providers: the captions
// API returns SRT, yt-dlp writes VTT.
package subtitle

import (
	"fmt"
	"strings"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// ParseSRT parses SubRip captions.
//
// Blocks look like:
//
//	1
//	00:00:01,000 --> 00:00:04,200
//	first caption line
//	second caption line
func ParseSRT(data string) ([]domain.TranscriptSegment, error) {
	var segments []domain.TranscriptSegment

	for _, block := range splitBlocks(data) {
		lines := strings.Split(block, "\n")
		// Skip the numeric counter line when present.
		idx := 0
		if len(lines) > 1 && !strings.Contains(lines[0], "-->") && strings.Contains(lines[1], "-->") {
			idx = 1
		}
		if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
			continue
		}

		start, end, err := parseTimeRange(lines[idx], ",")
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(strings.Join(lines[idx+1:], "\n"))
		if text == "" {
			continue
		}
		segments = append(segments, domain.TranscriptSegment{
			Start:    start,
			Duration: end - start,
			Text:     text,
		})
	}

	if len(segments) == 0 {
		return nil, domain.ErrNoTranscript
	}
	return segments, nil
}

// ParseVTT parses WebVTT captions, ignoring the header, NOTE and STYLE
// blocks, cue identifiers, cue settings and inline markup tags.
func ParseVTT(data string) ([]domain.TranscriptSegment, error) {
	var segments []domain.TranscriptSegment
	var lastText string

	for _, block := range splitBlocks(data) {
		lines := strings.Split(block, "\n")
		if strings.HasPrefix(lines[0], "WEBVTT") ||
			strings.HasPrefix(lines[0], "NOTE") ||
			strings.HasPrefix(lines[0], "STYLE") {
			continue
		}

		idx := 0
		if !strings.Contains(lines[0], "-->") {
			// Cue identifier line.
			idx = 1
		}
		if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
			continue
		}

		// Cue settings may follow the time range on the same line.
		timeLine := lines[idx]
		if fields := strings.Fields(timeLine); len(fields) >= 3 && fields[1] == "-->" {
			timeLine = fields[0] + " --> " + fields[2]
		}

		start, end, err := parseTimeRange(timeLine, ".")
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(stripTags(strings.Join(lines[idx+1:], "\n")))
		if text == "" {
			continue
		}
		// Auto-generated captions repeat the previous cue's text as a
		// rolling window; drop exact repeats.
		if text == lastText {
			continue
		}
		lastText = text

		segments = append(segments, domain.TranscriptSegment{
			Start:    start,
			Duration: end - start,
			Text:     text,
		})
	}

	if len(segments) == 0 {
		return nil, domain.ErrNoTranscript
	}
	return segments, nil
}

// splitBlocks splits caption data into blank-line separated blocks.
func splitBlocks(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	var blocks []string
	for _, block := range strings.Split(data, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// parseTimeRange parses "HH:MM:SS<sep>mmm --> HH:MM:SS<sep>mmm".
func parseTimeRange(line, msSep string) (start, end float64, err error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed time range %q", line)
	}
	if start, err = parseTimestamp(strings.TrimSpace(parts[0]), msSep); err != nil {
		return 0, 0, err
	}
	if end, err = parseTimestamp(strings.TrimSpace(parts[1]), msSep); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp parses "HH:MM:SS<sep>mmm" or "MM:SS<sep>mmm" into seconds.
func parseTimestamp(ts, msSep string) (float64, error) {
	var millis int
	main := ts
	if i := strings.LastIndex(ts, msSep); i >= 0 {
		main = ts[:i]
		if _, err := fmt.Sscanf(ts[i+1:], "%d", &millis); err != nil {
			return 0, fmt.Errorf("malformed timestamp %q", ts)
		}
	}

	var hours, minutes, seconds int
	switch strings.Count(main, ":") {
	case 2:
		if _, err := fmt.Sscanf(main, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
			return 0, fmt.Errorf("malformed timestamp %q", ts)
		}
	case 1:
		if _, err := fmt.Sscanf(main, "%d:%d", &minutes, &seconds); err != nil {
			return 0, fmt.Errorf("malformed timestamp %q", ts)
		}
	default:
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000, nil
}

// stripTags removes inline VTT markup like <c>, </c> and <00:00:01.000>.
func stripTags(text string) string {
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
