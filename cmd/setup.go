package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the album cache database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupHeaders converts a captured browser request into the headers file
// the proxy consumes and optionally uploads it.
//
// Accepts a cURL command (--curl / --curl-file) or a raw header block
// (--headers-file) and writes browser.json.
func (r *Runner) SetupHeaders(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	headersFile := cmd.String("headers-file")
	outputPath := cmd.String("output")

	sources := 0
	for _, s := range []string{curlCmd, curlFile, headersFile} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("%w: one of --curl, --curl-file, or --headers-file is required", shared.ErrMissingArgument)
	}
	if sources > 1 {
		return fmt.Errorf("%w: --curl, --curl-file, and --headers-file are mutually exclusive", shared.ErrInvalidArgument)
	}

	var (
		parsed *shared.BrowserHeaders
		err    error
	)

	switch {
	case curlCmd != "":
		parsed, err = shared.ParseCurlCommand([]byte(curlCmd))
	case curlFile != "":
		parsed, err = shared.ParseCurlFile(curlFile)
	default:
		var raw []byte
		if raw, err = os.ReadFile(headersFile); err == nil {
			parsed, err = shared.ParseRawHeaders(string(raw))
		}
	}
	if err != nil {
		return fmt.Errorf("failed to parse headers: %w", err)
	}

	payload, err := json.MarshalIndent(map[string]string{
		"headers_raw": parsed.ToHeadersRaw(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	if err := os.WriteFile(outputPath, payload, 0600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}
	r.logger.Info("headers file written", "path", outputPath)

	if cmd.Bool("upload") {
		resp, err := r.api.UploadJSON(ctx, "/auth/upload", payload)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: status %d, body: %s", shared.ErrAuthFailed, resp.StatusCode, string(resp.Body))
		}
		r.logger.Info("headers uploaded to proxy")
	}

	return r.writePlain("✓ Headers saved to %s\n", outputPath)
}
