package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/ytsort/internal/enricher"
	"github.com/desertthunder/ytsort/internal/reorder"
	"github.com/desertthunder/ytsort/internal/repositories"
	"github.com/desertthunder/ytsort/internal/services"
	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/desertthunder/ytsort/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	youtube := services.NewYouTubeService(config.YouTube.ProxyURL, nil)
	if config.YouTube.HeadersPath != "" {
		if err := youtube.Authenticate(config.YouTube.HeadersPath); err != nil {
			logger.Warn("invalid headers path in config", "error", err)
		}
	}

	apiService := services.NewAPIService(config.YouTube.ProxyURL, nil)

	var lastfm *services.LastFmService
	if config.LastFm.APIKey != "" {
		lastfm = services.NewLastFmService(config.LastFm.APIKey, "")
	}

	var cache enricher.AlbumCache
	if config.Database.Path != "" {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			if err := shared.RunMigrations(db); err == nil {
				cache = repositories.NewAlbumRepository(db, 7*24*time.Hour)
			} else {
				logger.Warn("album cache unavailable", "error", err)
				db.Close()
			}
		} else {
			logger.Warn("album cache unavailable", "error", err)
		}
	}

	enr := enricher.New(enricher.Opts{
		Catalog:        youtube,
		Cache:          cache,
		Logger:         logger,
		MaxConcurrency: config.Enrichment.MaxConcurrency,
		RateLimit:      config.Enrichment.RateLimit,
	})
	applier := reorder.NewApplier(youtube, logger)
	engine := tasks.NewPlaylistEngine(youtube, lastfm, enr, applier, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtube,
		API:     apiService,
		LastFm:  lastfm,
		Engine:  engine,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytsort",
		Usage:    "Sort YouTube Music playlists by album, artist, release date & more",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
