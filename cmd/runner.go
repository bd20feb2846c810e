package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/services"
	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/desertthunder/ytsort/internal/sorting"
	"github.com/desertthunder/ytsort/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	youtube    *services.YouTubeService
	api        *services.APIService
	lastfm     *services.LastFmService
	engine     tasks.SortEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	YouTube    *services.YouTubeService
	API        *services.APIService
	LastFm     *services.LastFmService
	Engine     tasks.SortEngine
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.YouTube,
		youtube:    opts.YouTube,
		api:        opts.API,
		lastfm:     opts.LastFm,
		engine:     opts.Engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// resolveConfig loads the file named by --config when it exists, so a
// flagged path overrides the startup config for that invocation.
func (r *Runner) resolveConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}

	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping startup config", "path", path, "error", err)
		return r.config
	}

	return config
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// drainProgress consumes progress updates and logs their messages until
// the channel closes.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate) {
	for update := range progress {
		r.logger.Info(update.Message, "phase", update.Phase.String())
	}
}

// ParseSortLevels parses a comma-separated "attribute:direction" list
// into sort levels and enforces the combination rules the composer
// itself does not check:
//   - every attribute must be known, none may repeat
//   - favourite_artists only makes sense as the primary level
//   - track_number needs a preceding album_name or album_release_date
//     level to be meaningful
//   - album attributes may not appear after track_number
func ParseSortLevels(spec string) ([]models.SortLevel, error) {
	parts := strings.Split(spec, ",")

	var levels []models.SortLevel
	seen := make(map[models.SortAttribute]bool)
	albumContext := false
	trackNumberAt := -1

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		attrName, dirName, hasDir := strings.Cut(part, ":")
		attr := models.SortAttribute(strings.TrimSpace(attrName))
		if !attr.Valid() {
			return nil, fmt.Errorf("%w: unknown attribute %q", shared.ErrInvalidSortLevels, attrName)
		}

		dir := models.Ascending
		if hasDir {
			switch strings.TrimSpace(dirName) {
			case "asc", "":
				dir = models.Ascending
			case "desc":
				dir = models.Descending
			default:
				return nil, fmt.Errorf("%w: unknown direction %q", shared.ErrInvalidSortLevels, dirName)
			}
		}

		if seen[attr] {
			return nil, fmt.Errorf("%w: duplicate attribute %q", shared.ErrInvalidSortLevels, attr)
		}
		seen[attr] = true

		switch attr {
		case models.AttrFavouriteArtists:
			if len(levels) > 0 {
				return nil, fmt.Errorf("%w: favourite_artists must be the first sort level", shared.ErrInvalidSortLevels)
			}
		case models.AttrAlbumName, models.AttrAlbumReleaseDate:
			if trackNumberAt >= 0 {
				return nil, fmt.Errorf("%w: %q cannot appear after track_number", shared.ErrInvalidSortLevels, attr)
			}
			albumContext = true
		case models.AttrTrackNumber:
			if !albumContext {
				return nil, fmt.Errorf("%w: track_number requires a preceding album_name or album_release_date level", shared.ErrInvalidSortLevels)
			}
			trackNumberAt = len(levels)
		}

		levels = append(levels, models.SortLevel{Attribute: attr, Direction: dir})
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no levels given", shared.ErrInvalidSortLevels)
	}

	return levels, nil
}

// resolveLevels picks the sort levels from --preset or --by, preset
// taking precedence.
func resolveLevels(preset, by string) ([]models.SortLevel, error) {
	if preset != "" {
		levels := sorting.Preset(preset)
		if levels == nil {
			return nil, fmt.Errorf("%w: unknown preset %q (available: %s)",
				shared.ErrInvalidArgument, preset, strings.Join(sorting.PresetNames(), ", "))
		}
		return levels, nil
	}

	if by == "" {
		return nil, fmt.Errorf("%w: either --preset or --by is required", shared.ErrMissingArgument)
	}

	return ParseSortLevels(by)
}
