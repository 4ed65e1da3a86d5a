// Package ytdlp fetches transcripts by shelling out to yt-dlp. It is the
// fallback provider for videos the captions API cannot serve, downloading
// subtitle tracks only and never the media itself.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/transcripts/subtitle"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

const binaryName = "yt-dlp"

// Provider runs the yt-dlp binary to download subtitle tracks.
type Provider struct {
	cookiesFile string
	proxyURL    string

	// run executes the subtitle download into dir. Replaced in tests.
	run func(ctx context.Context, dir string, args []string) error
}

var _ driven.TranscriptProvider = (*Provider)(nil)

// New creates a yt-dlp provider. Cookies and proxy settings are passed
// through to the binary when set.
func New(settings domain.TranscriptSettings) *Provider {
	p := &Provider{
		cookiesFile: settings.CookiesFile,
		proxyURL:    settings.ProxyURL,
	}
	p.run = p.runBinary
	return p
}

// Name identifies this provider in logs and ingest reports.
func (p *Provider) Name() string {
	return binaryName
}

// Fetch downloads the English subtitle track for a video and parses it.
// A missing binary, a failed download, or an absent subtitle track all
// report domain.ErrNoTranscript so the caller treats them as a soft miss.
func (p *Provider) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video ID", domain.ErrInvalidInput)
	}

	dir, err := os.MkdirTemp("", "clipsight-subs-*")
	if err != nil {
		return nil, fmt.Errorf("creating subtitle workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", "en.*",
		"--sub-format", "vtt",
		"--no-progress",
		"-o", filepath.Join(dir, "%(id)s"),
	}
	if p.cookiesFile != "" {
		args = append(args, "--cookies", p.cookiesFile)
	}
	if p.proxyURL != "" {
		args = append(args, "--proxy", p.proxyURL)
	}
	args = append(args, "https://www.youtube.com/watch?v="+videoID)

	if err := p.run(ctx, dir, args); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Debug("yt-dlp failed for %s: %v", videoID, err)
		return nil, fmt.Errorf("%w: yt-dlp: %v", domain.ErrNoTranscript, err)
	}

	data, err := readSubtitleFile(dir)
	if err != nil {
		return nil, err
	}
	return subtitle.ParseVTT(string(data))
}

// runBinary invokes yt-dlp from PATH.
func (p *Provider) runBinary(ctx context.Context, _ string, args []string) error {
	bin, err := exec.LookPath(binaryName)
	if err != nil {
		return fmt.Errorf("%s not installed", binaryName)
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%v: %s", err, lastLine(out))
	}
	return nil
}

// readSubtitleFile returns the contents of the first VTT file yt-dlp
// produced, preferring a manually-authored track over an auto-generated
// one when both exist. Manual English tracks end in ".en.vtt"; auto
// captions carry variant suffixes like ".en-orig.vtt".
func readSubtitleFile(dir string) ([]byte, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return nil, fmt.Errorf("scanning subtitle workspace: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no subtitle track available", domain.ErrNoTranscript)
	}
	path := files[0]
	for _, f := range files {
		if strings.HasSuffix(filepath.Base(f), ".en.vtt") {
			path = f
			break
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading subtitle file: %w", err)
	}
	return data, nil
}

// lastLine extracts the final non-empty line of command output for a
// compact error message.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return "no output"
	}
	return last
}
