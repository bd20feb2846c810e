package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthTest probes the proxy session and prints the account identity.
func (r *Runner) AuthTest(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("testing youtube music session")

	identity, err := r.catalog.AccountIdentity(ctx)
	if err != nil {
		r.writePlain("✗ Authentication failed\n")
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Authentication successful\n")
	r.writePlain("Account: %s\n", identity)
	return nil
}

// AuthStatus checks proxy availability by calling the /health endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking proxy status")

	resp, err := r.api.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	if resp.IsJSON {
		if healthData, ok := resp.JSONData.(map[string]any); ok {
			if status, ok := healthData["status"].(string); ok {
				return r.writePlain("✓ Proxy is reachable\nStatus: %s\n", status)
			}
		}
	}

	return r.writePlain("✓ Proxy is reachable\n")
}

// Playlists lists the authenticated user's library playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	limit := int(cmd.Int("limit"))
	playlists, err := r.catalog.LibraryPlaylists(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists\n\n", len(playlists))
	for _, pl := range playlists {
		r.writePlain("%s  %s (%d tracks)\n", pl.ID, pl.Title, pl.TrackCount)
	}

	return nil
}
