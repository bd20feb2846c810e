package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/ytsort/internal/formatter"
	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/desertthunder/ytsort/internal/sorting"
	"github.com/desertthunder/ytsort/internal/tasks"
	"github.com/urfave/cli/v3"
)

// buildSortContext assembles favourite-artist rankings from --favourites
// or, when absent, from the configured Last.fm user.
func (r *Runner) buildSortContext(ctx context.Context, cmd *cli.Command, levels []models.SortLevel, progress chan<- tasks.ProgressUpdate) (models.SortContext, error) {
	needsRankings := false
	for _, level := range levels {
		if level.Attribute == models.AttrFavouriteArtists {
			needsRankings = true
			break
		}
	}

	if !needsRankings {
		return models.SortContext{}, nil
	}

	if favourites := cmd.String("favourites"); favourites != "" {
		var names []string
		for _, name := range strings.Split(favourites, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		return models.NewSortContext(names), nil
	}

	config := r.resolveConfig(cmd)

	username := cmd.String("lastfm-user")
	if username == "" {
		username = config.LastFm.Username
	}
	if username == "" {
		return models.SortContext{}, fmt.Errorf("%w: favourite_artists sorting needs --favourites or a lastfm user", shared.ErrMissingArgument)
	}

	period := cmd.String("lastfm-period")
	if period == "" {
		period = config.LastFm.Period
	}

	return r.engine.FavouriteArtists(ctx, progress, username, period, int(cmd.Int("lastfm-limit")))
}

// SortRun sorts a playlist and writes the order back.
func (r *Runner) SortRun(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlist-id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	levels, err := resolveLevels(cmd.String("preset"), cmd.String("by"))
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		r.drainProgress(progress)
		close(done)
	}()

	sortCtx, err := r.buildSortContext(ctx, cmd, levels, progress)
	if err != nil {
		close(progress)
		<-done
		return err
	}

	result, err := r.engine.Run(ctx, progress, playlistID, levels, sortCtx)
	close(progress)
	<-done

	if err != nil {
		switch {
		case errors.Is(err, shared.ErrSessionExpired):
			r.writePlain("✗ Session expired. Re-upload your browser headers and try again.\n")
			return err
		case errors.Is(err, shared.ErrRestoreFailed):
			r.writePlain("✗ Sort failed, but the original order was restored. The playlist is intact.\n")
			return err
		case errors.Is(err, shared.ErrReorderFatal):
			r.writePlain("✗ CRITICAL: sort failed and restoring the original order also failed.\n")
			r.writePlain("  Inspect the playlist manually; both orders were logged.\n")
			return err
		}
		return err
	}

	if result.Outcome != nil && result.ItemsChanged == 0 {
		r.writePlain("✓ Playlist already in the requested order (%d tracks, nothing to do)\n", len(result.Original))
		return nil
	}

	r.writePlain("✓ Playlist sorted\n")
	r.writePlain("Tracks reordered: %d\n", result.ItemsChanged)
	return nil
}

// SortPreview computes the sorted order without writing anything back.
func (r *Runner) SortPreview(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlist-id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	levels, err := resolveLevels(cmd.String("preset"), cmd.String("by"))
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		r.drainProgress(progress)
		close(done)
	}()

	sortCtx, err := r.buildSortContext(ctx, cmd, levels, progress)
	if err != nil {
		close(progress)
		<-done
		return err
	}

	result, err := r.engine.Preview(ctx, progress, playlistID, levels, sortCtx)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		format := cmd.String("format")
		if err := formatter.WriteExport(playlistID, result.Sorted, format, output); err != nil {
			return err
		}
		r.writePlain("✓ Preview written to %s\n", output)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Sorted, cmd.Bool("pretty"))
	}

	if !result.WouldWrite {
		r.writePlain("Playlist is already in this order.\n\n")
	}

	for i, track := range result.Sorted {
		line := fmt.Sprintf("%3d. %s - %s", i+1, track.Artist, track.Title)
		if track.ReleaseDate != "" && track.ReleaseDate != models.UnknownReleaseDate {
			line += fmt.Sprintf(" (%s)", track.ReleaseDate)
		}
		r.writePlain("%s\n", line)
	}

	return nil
}

// Presets lists the available sort presets and their level lists.
func (r *Runner) Presets(ctx context.Context, cmd *cli.Command) error {
	for _, name := range sorting.PresetNames() {
		levels := sorting.Preset(name)
		parts := make([]string, len(levels))
		for i, level := range levels {
			parts[i] = fmt.Sprintf("%s:%s", level.Attribute, level.Direction)
		}
		r.writePlain("%-18s %s\n", name, strings.Join(parts, ", "))
	}
	return nil
}
