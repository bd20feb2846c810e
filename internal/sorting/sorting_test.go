package sorting

import (
	"testing"

	"github.com/desertthunder/ytsort/internal/models"
)

func track(title, artist, album, date string, num int) models.Track {
	return models.Track{
		ItemID:      "id-" + title,
		InstanceID:  "inst-" + title,
		Title:       title,
		Artist:      artist,
		AlbumName:   album,
		ReleaseDate: date,
		TrackNumber: num,
	}
}

func titles(tracks []models.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Title
	}
	return out
}

func assertOrder(t *testing.T, got []models.Track, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q (full order: %v)", i, got[i].Title, title, titles(got))
			return
		}
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []models.Track
		levels    []models.SortLevel
		ctx       models.SortContext
		wantOrder []string
	}{
		{
			name: "single level ascending by artist",
			tracks: []models.Track{
				track("B", "Nina", "", "", 0),
				track("A", "Miles", "", "", 0),
				track("C", "Ella", "", "", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrArtistName, Direction: models.Ascending}},
			wantOrder: []string{"C", "A", "B"},
		},
		{
			name: "single level descending by artist",
			tracks: []models.Track{
				track("B", "Nina", "", "", 0),
				track("A", "Miles", "", "", 0),
				track("C", "Ella", "", "", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrArtistName, Direction: models.Descending}},
			wantOrder: []string{"B", "A", "C"},
		},
		{
			name: "string comparison is case insensitive",
			tracks: []models.Track{
				track("B", "nina", "", "", 0),
				track("A", "Miles", "", "", 0),
				track("C", "ELLA", "", "", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrArtistName, Direction: models.Ascending}},
			wantOrder: []string{"C", "A", "B"},
		},
		{
			name: "release date descending with tie broken by album name",
			tracks: []models.Track{
				track("A", "", "Zebra", "2016-11-18", 0),
				track("B", "", "Apple", "2020-01-01", 0),
				track("C", "", "Apple", "2016-11-18", 0),
			},
			levels: []models.SortLevel{
				{Attribute: models.AttrAlbumReleaseDate, Direction: models.Descending},
				{Attribute: models.AttrAlbumName, Direction: models.Ascending},
			},
			wantOrder: []string{"B", "C", "A"},
		},
		{
			name: "missing release date sorts last ascending",
			tracks: []models.Track{
				track("A", "", "", "", 0),
				track("B", "", "", "2001-05-01", 0),
				track("C", "", "", "1999-12-31", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrAlbumReleaseDate, Direction: models.Ascending}},
			wantOrder: []string{"C", "B", "A"},
		},
		{
			name: "missing release date sorts last descending",
			tracks: []models.Track{
				track("A", "", "", "", 0),
				track("B", "", "", "2001-05-01", 0),
				track("C", "", "", "1999-12-31", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrAlbumReleaseDate, Direction: models.Descending}},
			wantOrder: []string{"B", "C", "A"},
		},
		{
			name: "track number ascending with unknown sentinel last",
			tracks: []models.Track{
				track("A", "", "X", "", models.UnknownTrackNumber),
				track("B", "", "X", "", 2),
				track("C", "", "X", "", 1),
			},
			levels: []models.SortLevel{
				{Attribute: models.AttrAlbumName, Direction: models.Ascending},
				{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
			},
			wantOrder: []string{"C", "B", "A"},
		},
		{
			name: "track number descending negates sentinel so unknown sorts first",
			tracks: []models.Track{
				track("A", "", "X", "", models.UnknownTrackNumber),
				track("B", "", "X", "", 2),
				track("C", "", "X", "", 1),
			},
			levels: []models.SortLevel{
				{Attribute: models.AttrAlbumName, Direction: models.Ascending},
				{Attribute: models.AttrTrackNumber, Direction: models.Descending},
			},
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name: "album release then album name then track number",
			tracks: []models.Track{
				track("A", "", "Second", "2010-01-01", 1),
				track("B", "", "First", "2005-06-01", 2),
				track("C", "", "First", "2005-06-01", 1),
				track("D", "", "Second", "2010-01-01", 2),
			},
			levels: []models.SortLevel{
				{Attribute: models.AttrAlbumReleaseDate, Direction: models.Ascending},
				{Attribute: models.AttrAlbumName, Direction: models.Ascending},
				{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
			},
			wantOrder: []string{"C", "B", "A", "D"},
		},
		{
			name: "favourite artists ascending ranks favourites first",
			tracks: []models.Track{
				track("A", "Unknown Act", "", "", 0),
				track("B", "Second Pick", "", "", 0),
				track("C", "Top Pick", "", "", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrFavouriteArtists, Direction: models.Ascending}},
			ctx:       models.NewSortContext([]string{"Top Pick", "Second Pick"}),
			wantOrder: []string{"C", "B", "A"},
		},
		{
			name: "favourite artists descending still keeps unranked last",
			tracks: []models.Track{
				track("A", "Unknown Act", "", "", 0),
				track("B", "Second Pick", "", "", 0),
				track("C", "Top Pick", "", "", 0),
			},
			levels:    []models.SortLevel{{Attribute: models.AttrFavouriteArtists, Direction: models.Descending}},
			ctx:       models.NewSortContext([]string{"Top Pick", "Second Pick"}),
			wantOrder: []string{"B", "C", "A"},
		},
		{
			name: "zero levels returns input order",
			tracks: []models.Track{
				track("B", "Nina", "", "", 0),
				track("A", "Miles", "", "", 0),
			},
			levels:    nil,
			wantOrder: []string{"B", "A"},
		},
		{
			name: "unknown attribute falls through to next level",
			tracks: []models.Track{
				track("B", "Nina", "", "", 0),
				track("A", "Miles", "", "", 0),
			},
			levels: []models.SortLevel{
				{Attribute: models.SortAttribute("bogus"), Direction: models.Ascending},
				{Attribute: models.AttrArtistName, Direction: models.Ascending},
			},
			wantOrder: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(tt.tracks, tt.levels, tt.ctx)
			assertOrder(t, got, tt.wantOrder)
		})
	}
}

func TestSortStability(t *testing.T) {
	tracks := []models.Track{
		track("First", "Same", "", "", 0),
		track("Second", "Same", "", "", 0),
		track("Third", "Same", "", "", 0),
	}
	levels := []models.SortLevel{{Attribute: models.AttrArtistName, Direction: models.Ascending}}

	got := Sort(tracks, levels, models.SortContext{})
	assertOrder(t, got, []string{"First", "Second", "Third"})
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tracks := []models.Track{
		track("B", "Nina", "", "", 0),
		track("A", "Miles", "", "", 0),
	}
	levels := []models.SortLevel{{Attribute: models.AttrArtistName, Direction: models.Ascending}}

	Sort(tracks, levels, models.SortContext{})

	if tracks[0].Title != "B" || tracks[1].Title != "A" {
		t.Errorf("input slice was mutated: %v", titles(tracks))
	}
}

func TestSortIsDeterministic(t *testing.T) {
	tracks := []models.Track{
		track("D", "Nina", "Baltimore", "1978-01-01", 2),
		track("C", "Nina", "Baltimore", "1978-01-01", 1),
		track("B", "Miles", "Kind of Blue", "1959-08-17", 1),
		track("A", "Ella", "", "", models.UnknownTrackNumber),
	}
	levels := []models.SortLevel{
		{Attribute: models.AttrArtistName, Direction: models.Ascending},
		{Attribute: models.AttrAlbumReleaseDate, Direction: models.Ascending},
		{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
	}

	first := Sort(tracks, levels, models.SortContext{})
	for i := 0; i < 5; i++ {
		again := Sort(tracks, levels, models.SortContext{})
		for j := range first {
			if again[j].ItemID != first[j].ItemID {
				t.Fatalf("run %d diverged at position %d: got %q, want %q", i, j, again[j].Title, first[j].Title)
			}
		}
	}
}

func TestPreset(t *testing.T) {
	for _, name := range PresetNames() {
		levels := Preset(name)
		if len(levels) == 0 {
			t.Errorf("preset %q has no levels", name)
		}
		for _, level := range levels {
			if !level.Attribute.Valid() {
				t.Errorf("preset %q contains invalid attribute %q", name, level.Attribute)
			}
		}
	}

	if Preset("no-such-preset") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	first := Preset("discography")
	if first == nil {
		t.Fatal("discography preset missing")
	}
	first[0].Direction = models.Descending

	second := Preset("discography")
	if second[0].Direction == models.Descending {
		t.Error("mutating a returned preset leaked into the registry")
	}
}
