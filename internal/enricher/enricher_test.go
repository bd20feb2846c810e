package enricher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/services"
	ytest "github.com/desertthunder/ytsort/internal/testing"
)

func rawTrack(itemID, title string, album *models.AlbumRef) models.RawTrack {
	return models.RawTrack{
		ItemID:     itemID,
		InstanceID: "set-" + itemID,
		Title:      title,
		Album:      album,
	}
}

// countingCatalog counts Album calls on top of the shared mock.
type countingCatalog struct {
	ytest.MockCatalog

	mu         sync.Mutex
	albumCalls map[string]int
}

func (c *countingCatalog) Album(ctx context.Context, albumID string) (*services.AlbumDetail, error) {
	c.mu.Lock()
	if c.albumCalls == nil {
		c.albumCalls = make(map[string]int)
	}
	c.albumCalls[albumID]++
	c.mu.Unlock()
	return c.MockCatalog.Album(ctx, albumID)
}

// memoryCache is an in-memory AlbumCache for tests.
type memoryCache struct {
	store  map[string]models.AlbumMetadata
	putErr error
	puts   int
}

func (m *memoryCache) Get(albumID string) (*models.AlbumMetadata, bool) {
	meta, ok := m.store[albumID]
	if !ok {
		return nil, false
	}
	return &meta, true
}

func (m *memoryCache) Put(meta models.AlbumMetadata) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	if m.store == nil {
		m.store = make(map[string]models.AlbumMetadata)
	}
	m.store[meta.AlbumID] = meta
	return nil
}

func TestEnrich(t *testing.T) {
	albumA := &models.AlbumRef{ID: "alb-a", Name: "First Album"}
	albumB := &models.AlbumRef{ID: "alb-b", Name: "Second Album"}

	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb-a": {
				ID:          "alb-a",
				Title:       "First Album",
				ReleaseDate: &services.ReleaseDate{Year: 2016, Month: 11, Day: 18},
				Tracks: []services.AlbumTrack{
					{ItemID: "t1", Title: "Opener"},
					{ItemID: "t2", Title: "Closer"},
				},
			},
			"alb-b": {
				ID:    "alb-b",
				Title: "Second Album",
				Year:  "2003",
				Tracks: []services.AlbumTrack{
					{ItemID: "other-id", Title: "Lone Song"},
				},
			},
		},
	}

	e := New(Opts{Catalog: catalog})

	raw := []models.RawTrack{
		rawTrack("t2", "Closer", albumA),
		rawTrack("t1", "Opener", albumA),
		rawTrack("t3", "Lone Song", albumB),
		rawTrack("t4", "No Album Here", nil),
	}

	tracks := e.Enrich(context.Background(), raw)

	if len(tracks) != len(raw) {
		t.Fatalf("got %d tracks, want %d", len(tracks), len(raw))
	}
	for i := range raw {
		if tracks[i].ItemID != raw[i].ItemID {
			t.Fatalf("position %d: order not preserved, got %q want %q", i, tracks[i].ItemID, raw[i].ItemID)
		}
	}

	if tracks[0].ReleaseDate != "2016-11-18" {
		t.Errorf("structured date: got %q, want %q", tracks[0].ReleaseDate, "2016-11-18")
	}
	if tracks[0].TrackNumber != 2 {
		t.Errorf("position by id: got %d, want 2", tracks[0].TrackNumber)
	}
	if tracks[1].TrackNumber != 1 {
		t.Errorf("position by id: got %d, want 1", tracks[1].TrackNumber)
	}

	// alb-b has no structured date and no matching item id; the year
	// fallback and the normalized-title fallback both kick in.
	if tracks[2].ReleaseDate != "2003-01-01" {
		t.Errorf("year fallback: got %q, want %q", tracks[2].ReleaseDate, "2003-01-01")
	}
	if tracks[2].TrackNumber != 1 {
		t.Errorf("position by title: got %d, want 1", tracks[2].TrackNumber)
	}

	if tracks[3].AlbumName != "" || tracks[3].ReleaseDate != "" {
		t.Errorf("albumless track gained album data: %+v", tracks[3])
	}
	if tracks[3].TrackNumber != models.UnknownTrackNumber {
		t.Errorf("albumless track number: got %d, want sentinel", tracks[3].TrackNumber)
	}
}

func TestEnrich_UploadDateFallback(t *testing.T) {
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb": {
				ID:     "alb",
				Tracks: []services.AlbumTrack{{ItemID: "t1", Title: "Single"}},
			},
		},
		Details: map[string]*services.TrackDetail{
			"t1": {ItemID: "t1", UploadDate: "2021-07-09"},
		},
	}

	e := New(Opts{Catalog: catalog})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "Single", &models.AlbumRef{ID: "alb", Name: "Single EP"}),
	})

	if tracks[0].ReleaseDate != "2021-07-09" {
		t.Errorf("got %q, want upload date %q", tracks[0].ReleaseDate, "2021-07-09")
	}
}

func TestEnrich_SentinelWhenAllFallbacksFail(t *testing.T) {
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb": {
				ID:     "alb",
				Year:   "not a year",
				Tracks: []services.AlbumTrack{{ItemID: "t1", Title: "Single"}},
			},
		},
		DetailErr: errors.New("404 not found"),
	}

	e := New(Opts{Catalog: catalog})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "Single", &models.AlbumRef{ID: "alb", Name: "Mystery"}),
	})

	if tracks[0].ReleaseDate != models.UnknownReleaseDate {
		t.Errorf("got %q, want sentinel %q", tracks[0].ReleaseDate, models.UnknownReleaseDate)
	}
}

func TestEnrich_AlbumFetchFailureIsIsolated(t *testing.T) {
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"good": {
				ID:          "good",
				ReleaseDate: &services.ReleaseDate{Year: 1999, Month: 3, Day: 1},
				Tracks:      []services.AlbumTrack{{ItemID: "t1", Title: "Fine"}},
			},
			// "bad" is absent, so its fetch fails.
		},
	}

	e := New(Opts{Catalog: catalog})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "Fine", &models.AlbumRef{ID: "good", Name: "Good Album"}),
		rawTrack("t2", "Broken", &models.AlbumRef{ID: "bad", Name: "Bad Album"}),
	})

	if tracks[0].ReleaseDate != "1999-03-01" || tracks[0].TrackNumber != 1 {
		t.Errorf("healthy album affected by neighbour failure: %+v", tracks[0])
	}
	if tracks[1].ReleaseDate != "" {
		t.Errorf("failed album release date: got %q, want empty", tracks[1].ReleaseDate)
	}
	if tracks[1].TrackNumber != models.UnknownTrackNumber {
		t.Errorf("failed album track number: got %d, want sentinel", tracks[1].TrackNumber)
	}
	if tracks[1].AlbumName != "Bad Album" {
		t.Errorf("album name from the raw entry should survive: got %q", tracks[1].AlbumName)
	}
}

func TestEnrich_DedupesAlbumFetches(t *testing.T) {
	album := &models.AlbumRef{ID: "alb", Name: "Shared"}
	catalog := &countingCatalog{
		MockCatalog: ytest.MockCatalog{
			Albums: map[string]*services.AlbumDetail{
				"alb": {
					ID:          "alb",
					ReleaseDate: &services.ReleaseDate{Year: 2010},
					Tracks: []services.AlbumTrack{
						{ItemID: "t1", Title: "One"},
						{ItemID: "t2", Title: "Two"},
						{ItemID: "t3", Title: "Three"},
					},
				},
			},
		},
	}

	e := New(Opts{Catalog: catalog})
	e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "One", album),
		rawTrack("t2", "Two", album),
		rawTrack("t3", "Three", album),
	})

	if got := catalog.albumCalls["alb"]; got != 1 {
		t.Errorf("album fetched %d times, want 1", got)
	}
}

func TestEnrich_PartialDateDefaultsMonthAndDay(t *testing.T) {
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb": {
				ID:          "alb",
				ReleaseDate: &services.ReleaseDate{Year: 2018},
				Tracks:      []services.AlbumTrack{{ItemID: "t1", Title: "Single"}},
			},
		},
	}

	e := New(Opts{Catalog: catalog})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "Single", &models.AlbumRef{ID: "alb", Name: "Album"}),
	})

	if tracks[0].ReleaseDate != "2018-01-01" {
		t.Errorf("got %q, want %q", tracks[0].ReleaseDate, "2018-01-01")
	}
}

func TestEnrich_CacheReadThrough(t *testing.T) {
	cache := &memoryCache{
		store: map[string]models.AlbumMetadata{
			"alb": {
				AlbumID:      "alb",
				ReleaseDate:  "1990-06-01",
				PositionByID: map[string]int{"t1": 4},
			},
		},
	}
	catalog := &countingCatalog{}

	e := New(Opts{Catalog: catalog, Cache: cache})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "Cached", &models.AlbumRef{ID: "alb", Name: "Old Album"}),
	})

	if len(catalog.albumCalls) != 0 {
		t.Errorf("catalog was hit despite cache: %v", catalog.albumCalls)
	}
	if tracks[0].ReleaseDate != "1990-06-01" || tracks[0].TrackNumber != 4 {
		t.Errorf("cached metadata not applied: %+v", tracks[0])
	}
}

func TestEnrich_CacheMissPopulatesCache(t *testing.T) {
	cache := &memoryCache{}
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb": {
				ID:          "alb",
				ReleaseDate: &services.ReleaseDate{Year: 2022, Month: 2, Day: 2},
				Tracks:      []services.AlbumTrack{{ItemID: "t1", Title: "New"}},
			},
		},
	}

	e := New(Opts{Catalog: catalog, Cache: cache})
	e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "New", &models.AlbumRef{ID: "alb", Name: "New Album"}),
	})

	if cache.puts != 1 {
		t.Fatalf("got %d cache writes, want 1", cache.puts)
	}
	meta, ok := cache.Get("alb")
	if !ok || meta.ReleaseDate != "2022-02-02" {
		t.Errorf("cache entry missing or wrong: %+v", meta)
	}
}

func TestEnrich_CacheWriteFailureIsNonFatal(t *testing.T) {
	cache := &memoryCache{putErr: errors.New("disk full")}
	catalog := &ytest.MockCatalog{
		Albums: map[string]*services.AlbumDetail{
			"alb": {
				ID:          "alb",
				ReleaseDate: &services.ReleaseDate{Year: 2022, Month: 2, Day: 2},
				Tracks:      []services.AlbumTrack{{ItemID: "t1", Title: "New"}},
			},
		},
	}

	e := New(Opts{Catalog: catalog, Cache: cache})
	tracks := e.Enrich(context.Background(), []models.RawTrack{
		rawTrack("t1", "New", &models.AlbumRef{ID: "alb", Name: "New Album"}),
	})

	if tracks[0].ReleaseDate != "2022-02-02" {
		t.Errorf("enrichment failed on cache write error: %+v", tracks[0])
	}
}

func TestEnrich_Empty(t *testing.T) {
	e := New(Opts{Catalog: &ytest.MockCatalog{}})
	tracks := e.Enrich(context.Background(), nil)
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"ALREADY", "already"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(Opts{Catalog: &ytest.MockCatalog{}})
	if e.maxConcurrency != DefaultMaxConcurrency {
		t.Errorf("got %d, want default %d", e.maxConcurrency, DefaultMaxConcurrency)
	}
	if e.logger == nil {
		t.Error("logger not defaulted")
	}
}
