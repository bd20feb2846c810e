package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsort/internal/enricher"
	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/reorder"
	"github.com/desertthunder/ytsort/internal/services"
	"github.com/desertthunder/ytsort/internal/shared"
	"github.com/desertthunder/ytsort/internal/sorting"
)

// SortRunResult contains all data from a full sort-and-apply operation.
type SortRunResult struct {
	RunID        string           // Correlation id for this run's log lines
	PlaylistID   string           // Playlist operated on
	Original     []models.Track   // Enriched tracks in original order
	Sorted       []models.Track   // Tracks in computed order
	Outcome      *reorder.Outcome // Write-back outcome
	ItemsChanged int              // Items placed by the write-back, 0 for no-op
}

// PreviewResult contains a dry-run sort with no external write.
type PreviewResult struct {
	PlaylistID string
	Original   []models.Track
	Sorted     []models.Track
	WouldWrite bool // False when the playlist is already in target order
}

// SortEngine defines the playlist sorting operations.
type SortEngine interface {
	// Run sorts a playlist and writes the order back to the catalog.
	Run(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, levels []models.SortLevel, sortCtx models.SortContext) (*SortRunResult, error)

	// Preview sorts a playlist without writing anything back.
	Preview(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, levels []models.SortLevel, sortCtx models.SortContext) (*PreviewResult, error)

	// FavouriteArtists builds a SortContext from a Last.fm user's top artists.
	FavouriteArtists(ctx context.Context, progress chan<- ProgressUpdate, username, period string, limit int) (models.SortContext, error)
}

// PlaylistEngine implements SortEngine.
// Contains dependencies on the catalog, the enricher, and the applier.
type PlaylistEngine struct {
	catalog  services.Catalog
	lastfm   *services.LastFmService
	enricher *enricher.Enricher
	applier  *reorder.Applier
	logger   *log.Logger
}

// NewPlaylistEngine creates a PlaylistEngine with the provided dependencies.
// The lastfm service may be nil when favourite-artist sorting is unused.
func NewPlaylistEngine(catalog services.Catalog, lastfm *services.LastFmService, enr *enricher.Enricher, applier *reorder.Applier, logger *log.Logger) *PlaylistEngine {
	if logger == nil {
		logger = log.Default()
	}

	return &PlaylistEngine{
		catalog:  catalog,
		lastfm:   lastfm,
		enricher: enr,
		applier:  applier,
		logger:   logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// fetchAndSort runs the read-only half of the pipeline: browse, enrich, sort.
func (e *PlaylistEngine) fetchAndSort(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, levels []models.SortLevel, sortCtx models.SortContext) (original, sorted []models.Track, err error) {
	if e.catalog == nil {
		return nil, nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchTracksUpdate(playlistID))

	raw, err := e.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to fetch playlist tracks: %v", shared.ErrPlaylistNotFound, err)
	}

	e.sendProgress(progress, fetchedTracksUpdate(len(raw)))
	e.sendProgress(progress, enrichUpdate(countAlbums(raw)))

	original = e.enricher.Enrich(ctx, raw)

	e.sendProgress(progress, sortUpdate(levels))
	sorted = sorting.Sort(original, levels, sortCtx)

	return original, sorted, nil
}

// Run sorts the playlist and applies the computed order.
//
// The returned result is non-nil whenever the pipeline reached the apply
// step, even if the apply failed; callers inspect Outcome for the
// restored and fatal cases alongside the returned error.
func (e *PlaylistEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, levels []models.SortLevel, sortCtx models.SortContext) (*SortRunResult, error) {
	runID := shared.GenerateID()
	e.logger.Info("starting sort run", "run", runID, "playlist", playlistID, "levels", len(levels))

	original, sorted, err := e.fetchAndSort(ctx, progress, playlistID, levels, sortCtx)
	if err != nil {
		return nil, err
	}

	result := &SortRunResult{
		RunID:      runID,
		PlaylistID: playlistID,
		Original:   original,
		Sorted:     sorted,
	}

	if len(original) == 0 {
		result.Outcome = &reorder.Outcome{Status: reorder.StatusNoOp}
		return result, nil
	}

	e.sendProgress(progress, applyUpdate(len(sorted)))

	outcome, err := e.applier.Apply(ctx, playlistID, original, sorted)
	if outcome != nil {
		result.Outcome = outcome
		result.ItemsChanged = outcome.ItemsChanged
	}
	if err != nil {
		return result, err
	}

	return result, nil
}

// Preview sorts the playlist without touching the catalog's state.
func (e *PlaylistEngine) Preview(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, levels []models.SortLevel, sortCtx models.SortContext) (*PreviewResult, error) {
	original, sorted, err := e.fetchAndSort(ctx, progress, playlistID, levels, sortCtx)
	if err != nil {
		return nil, err
	}

	wouldWrite := false
	for i := range original {
		if original[i].InstanceID != sorted[i].InstanceID {
			wouldWrite = true
			break
		}
	}

	return &PreviewResult{
		PlaylistID: playlistID,
		Original:   original,
		Sorted:     sorted,
		WouldWrite: wouldWrite,
	}, nil
}

// FavouriteArtists fetches a Last.fm user's top artists and builds the
// rankings consulted by the favourite-artists sort attribute.
func (e *PlaylistEngine) FavouriteArtists(ctx context.Context, progress chan<- ProgressUpdate, username, period string, limit int) (models.SortContext, error) {
	if e.lastfm == nil {
		return models.SortContext{}, fmt.Errorf("%w: lastfm not configured", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchArtistsUpdate(username))

	artists, err := e.lastfm.TopArtists(ctx, username, period, limit)
	if err != nil {
		return models.SortContext{}, fmt.Errorf("%w: failed to fetch top artists: %v", shared.ErrAPIRequest, err)
	}

	e.logger.Info("fetched favourite artists", "user", username, "period", period, "count", len(artists))
	return models.NewSortContext(artists), nil
}

func countAlbums(raw []models.RawTrack) int {
	seen := make(map[string]bool)
	for _, rt := range raw {
		if rt.Album != nil && rt.Album.ID != "" {
			seen[rt.Album.ID] = true
		}
	}
	return len(seen)
}
