// Command clipsight is the ClipSight command line interface.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/ai"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/config/file"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/transcriptcache"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/transcripts/rapidapi"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/transcripts/ytdlp"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driven/youtube"
	"github.com/clipsight-labs/clipsight-cli/internal/adapters/driving/cli"
	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
	"github.com/clipsight-labs/clipsight-cli/internal/core/services"
	"github.com/clipsight-labs/clipsight-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	cache, err := transcriptcache.New(settings.Paths.CacheDir)
	if err != nil {
		return fmt.Errorf("opening transcript cache: %w", err)
	}

	// Transcript providers in fallback order: the captions API when a
	// key is configured, yt-dlp always.
	var providers []driven.TranscriptProvider
	if settings.Transcript.RapidAPIKey != "" {
		providers = append(providers,
			rapidapi.New(settings.Transcript.RapidAPIHost, settings.Transcript.RapidAPIKey))
	}
	providers = append(providers, ytdlp.New(settings.Transcript))

	// Metadata and analysis are both optional at startup. Without
	// metadata, ingestion is limited to cached videos; without an LLM,
	// transcripts are stored unanalysed.
	var metadata driven.MetadataClient
	ytClient, err := youtube.New(context.Background(), settings.YouTube)
	switch {
	case errors.Is(err, domain.ErrMetadataUnavailable):
		logger.Warn("YouTube Data API not configured; channel ingestion disabled")
	case err != nil:
		return fmt.Errorf("creating YouTube client: %w", err)
	default:
		metadata = ytClient
	}

	var llm driven.LLMService
	llmService, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, analysis disabled: %v", err)
	} else if llmService != nil {
		llm = llmService
		defer llm.Close()
	}

	ingestService := services.NewIngestService(
		metadata,
		cache,
		providers,
		llm,
		store.ChannelStore(),
		store.VideoStore(),
		store.EntityStore(),
		store.MentionStore(),
		store.ExtractionCacheStore(),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Channels: services.NewChannelService(metadata, store.ChannelStore()),
		Ingest:   ingestService,
		Reset:    services.NewResetService(sqlite.NewInitializer(), store),
		Search:   services.NewSearchService(store.VideoStore(), store.EntityStore(), store.SearchLogStore(), llm),
		Insights: services.NewInsightsService(store.ChannelStore(), store.VideoStore(), store.EntityStore(), store.MentionStore(), store.DashboardCacheStore()),
		Settings: settingsService,

		DatabasePath: store.Path(),
		CacheDir:     cache.Dir(),
	})

	return cli.Execute()
}
