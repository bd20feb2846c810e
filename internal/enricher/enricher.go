package enricher

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/services"
	"golang.org/x/time/rate"
)

// DefaultMaxConcurrency bounds in-flight catalog calls during enrichment.
const DefaultMaxConcurrency = 10

// AlbumCache is an optional read-through cache for album metadata.
//
// Implemented by repositories.AlbumRepository. Lookup misses and write
// failures are both non-fatal: the enricher falls back to the catalog.
type AlbumCache interface {
	Get(albumID string) (*models.AlbumMetadata, bool)
	Put(meta models.AlbumMetadata) error
}

// Opts contains configuration for creating an Enricher.
type Opts struct {
	Catalog        services.Catalog
	Cache          AlbumCache // Optional
	Logger         *log.Logger
	MaxConcurrency int     // Defaults to DefaultMaxConcurrency
	RateLimit      float64 // Requests per second, 0 disables limiting
}

// Enricher turns raw playlist entries into sortable tracks by fetching
// album detail from the catalog with bounded concurrency.
type Enricher struct {
	catalog        services.Catalog
	cache          AlbumCache
	logger         *log.Logger
	maxConcurrency int
	limiter        *rate.Limiter
}

// New creates an Enricher with the provided options.
func New(opts Opts) *Enricher {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Enricher{
		catalog:        opts.Catalog,
		cache:          opts.Cache,
		logger:         opts.Logger,
		maxConcurrency: opts.MaxConcurrency,
		limiter:        limiter,
	}
}

type albumResult struct {
	albumID string
	meta    *models.AlbumMetadata
}

// Enrich resolves album metadata for every entry and returns a
// same-length, same-order track list.
//
// Album detail is fetched at most once per distinct album id. A failed
// album fetch is swallowed: that album's tracks keep an empty release
// date and the unknown-position sentinel, and other albums are
// unaffected. The call blocks until every album task has finished.
func (e *Enricher) Enrich(ctx context.Context, raw []models.RawTrack) []models.Track {
	albums := e.fetchAlbumData(ctx, raw)

	tracks := make([]models.Track, len(raw))
	for i, rt := range raw {
		track := models.Track{
			ItemID:      rt.ItemID,
			InstanceID:  rt.InstanceID,
			Title:       rt.Title,
			Artist:      rt.Artist,
			TrackNumber: models.UnknownTrackNumber,
			Duration:    rt.Duration,
		}

		if rt.Album != nil {
			track.AlbumName = rt.Album.Name
			if meta, ok := albums[rt.Album.ID]; ok {
				track.ReleaseDate = meta.ReleaseDate
				track.TrackNumber = resolvePosition(meta, rt.ItemID, rt.Title)
			}
		}

		tracks[i] = track
	}

	return tracks
}

// fetchAlbumData fans out one task per distinct album id, bounded by the
// worker count and the shared rate limiter. Each task owns a disjoint
// result key, so the only synchronization needed is the collection loop.
func (e *Enricher) fetchAlbumData(ctx context.Context, raw []models.RawTrack) map[string]*models.AlbumMetadata {
	albums := make(map[string]*models.AlbumMetadata)

	var pending []string
	seen := make(map[string]bool)
	for _, rt := range raw {
		if rt.Album == nil || rt.Album.ID == "" || seen[rt.Album.ID] {
			continue
		}
		seen[rt.Album.ID] = true

		if e.cache != nil {
			if meta, ok := e.cache.Get(rt.Album.ID); ok {
				albums[rt.Album.ID] = meta
				continue
			}
		}
		pending = append(pending, rt.Album.ID)
	}

	if len(pending) == 0 {
		return albums
	}

	e.logger.Debug("fetching album metadata", "albums", len(pending), "cached", len(albums))

	jobs := make(chan string, len(pending))
	results := make(chan albumResult, len(pending))

	workers := e.maxConcurrency
	if workers > len(pending) {
		workers = len(pending)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go e.albumWorker(ctx, &wg, jobs, results)
	}

	for _, albumID := range pending {
		jobs <- albumID
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.meta == nil {
			continue
		}
		albums[res.albumID] = res.meta

		if e.cache != nil {
			// Cache writes are best-effort
			if err := e.cache.Put(*res.meta); err != nil {
				e.logger.Debug("album cache write failed", "album", res.albumID, "error", err)
			}
		}
	}

	return albums
}

func (e *Enricher) albumWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan string, results chan<- albumResult) {
	defer wg.Done()

	for albumID := range jobs {
		if err := e.limiter.Wait(ctx); err != nil {
			results <- albumResult{albumID: albumID}
			continue
		}

		meta, err := e.fetchAlbum(ctx, albumID)
		if err != nil {
			e.logger.Debug("album fetch failed", "album", albumID, "error", err)
			results <- albumResult{albumID: albumID}
			continue
		}

		results <- albumResult{albumID: albumID, meta: meta}
	}
}

// fetchAlbum fetches one album and builds its metadata, including the
// id and normalized-title position maps.
func (e *Enricher) fetchAlbum(ctx context.Context, albumID string) (*models.AlbumMetadata, error) {
	album, err := e.catalog.Album(ctx, albumID)
	if err != nil {
		return nil, err
	}

	meta := &models.AlbumMetadata{
		AlbumID:         albumID,
		ReleaseDate:     e.resolveReleaseDate(ctx, album),
		PositionByID:    make(map[string]int, len(album.Tracks)),
		PositionByTitle: make(map[string]int, len(album.Tracks)),
	}

	for idx, track := range album.Tracks {
		position := idx + 1
		if track.ItemID != "" {
			meta.PositionByID[track.ItemID] = position
		}
		if track.Title != "" {
			meta.PositionByTitle[NormalizeTitle(track.Title)] = position
		}
	}

	return meta, nil
}

// resolveReleaseDate applies the fallback chain, first success wins:
// structured release date, first-track upload date, bare year, sentinel.
func (e *Enricher) resolveReleaseDate(ctx context.Context, album *services.AlbumDetail) string {
	if album.ReleaseDate != nil && album.ReleaseDate.Year > 0 {
		month := album.ReleaseDate.Month
		day := album.ReleaseDate.Day
		if month <= 0 {
			month = 1
		}
		if day <= 0 {
			day = 1
		}
		return fmt.Sprintf("%04d-%02d-%02d", album.ReleaseDate.Year, month, day)
	}

	if len(album.Tracks) > 0 && album.Tracks[0].ItemID != "" {
		if err := e.limiter.Wait(ctx); err == nil {
			detail, err := e.catalog.TrackDetail(ctx, album.Tracks[0].ItemID)
			if err == nil && detail.UploadDate != "" {
				return detail.UploadDate
			}
			if err != nil {
				e.logger.Debug("track detail fetch failed", "item", album.Tracks[0].ItemID, "error", err)
			}
		}
	}

	if year, err := strconv.Atoi(strings.TrimSpace(album.Year)); err == nil && year > 0 {
		return fmt.Sprintf("%04d-01-01", year)
	}

	return models.UnknownReleaseDate
}

// resolvePosition looks up the track's album position by item id, then
// by normalized title, then gives up with the sentinel.
func resolvePosition(meta *models.AlbumMetadata, itemID, title string) int {
	if pos, ok := meta.PositionByID[itemID]; ok {
		return pos
	}
	if pos, ok := meta.PositionByTitle[NormalizeTitle(title)]; ok {
		return pos
	}
	return models.UnknownTrackNumber
}

// NormalizeTitle lowercases and trims a title for fallback matching.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
