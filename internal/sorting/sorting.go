package sorting

import (
	"math"
	"sort"
	"strings"

	"github.com/desertthunder/ytsort/internal/models"
)

// Boundary sentinels for tracks with no release date. The sentinel is
// picked per direction so missing dates land last either way: ascending
// uses a far-future date, descending uses a far-past date under a
// reversed string comparison.
const (
	missingDateAsc  = "9999-12-31"
	missingDateDesc = "0000-01-01"
)

// segment is one level's comparison key for one track. A segment is
// either numeric or string; string segments may carry a reversed
// comparison, which is how descending order is confined to a single
// level without touching the rest of the composite key.
type segment struct {
	num      float64
	str      string
	isString bool
	reversed bool
}

// compare returns -1, 0, or 1 ordering s before, equal to, or after o.
func (s segment) compare(o segment) int {
	if s.isString {
		c := strings.Compare(s.str, o.str)
		if s.reversed {
			c = -c
		}
		return c
	}

	switch {
	case s.num < o.num:
		return -1
	case s.num > o.num:
		return 1
	}
	return 0
}

// keyFunc extracts one track's key segment for a level. The function
// encodes the attribute's own direction and missing-value semantics.
type keyFunc func(t models.Track, dir models.SortDirection, ctx models.SortContext) segment

// registry maps attribute tags to their key extractors. New attributes
// are added here, without subclassing anything.
var registry = map[models.SortAttribute]keyFunc{
	models.AttrTitle:            stringKey(func(t models.Track) string { return t.Title }),
	models.AttrArtistName:       stringKey(func(t models.Track) string { return t.Artist }),
	models.AttrAlbumName:        stringKey(func(t models.Track) string { return t.AlbumName }),
	models.AttrAlbumReleaseDate: releaseDateKey,
	models.AttrTrackNumber:      trackNumberKey,
	models.AttrFavouriteArtists: favouriteArtistKey,
}

// stringKey builds a case-insensitive string extractor. Descending is a
// reversed comparison on the same key, not a byte inversion.
func stringKey(get func(models.Track) string) keyFunc {
	return func(t models.Track, dir models.SortDirection, _ models.SortContext) segment {
		return segment{
			str:      strings.ToLower(get(t)),
			isString: true,
			reversed: dir == models.Descending,
		}
	}
}

// releaseDateKey orders by release date with missing dates always last,
// independent of direction: ascending substitutes a far-future sentinel,
// descending substitutes a far-past sentinel under reversed comparison.
func releaseDateKey(t models.Track, dir models.SortDirection, _ models.SortContext) segment {
	date := t.ReleaseDate

	if dir == models.Descending {
		if date == "" {
			date = missingDateDesc
		}
		return segment{str: date, isString: true, reversed: true}
	}

	if date == "" {
		date = missingDateAsc
	}
	return segment{str: date, isString: true}
}

// trackNumberKey orders by album position; the unknown sentinel is
// negated along with every other value when the level is descending.
func trackNumberKey(t models.Track, dir models.SortDirection, _ models.SortContext) segment {
	n := float64(t.TrackNumber)
	if dir == models.Descending {
		n = -n
	}
	return segment{num: n}
}

// favouriteArtistKey orders by the context's artist rankings. An artist
// absent from the rankings gets positive infinity and sorts after every
// ranked artist in either direction; only ranked artists invert between
// ascending and descending. The asymmetry is intentional product
// behavior: "favourites first" has no mirrored "favourites last".
func favouriteArtistKey(t models.Track, dir models.SortDirection, ctx models.SortContext) segment {
	rank, ok := ctx.ArtistRankings[t.Artist]
	if !ok {
		return segment{num: math.Inf(1)}
	}

	n := float64(rank)
	if dir == models.Descending {
		n = -n
	}
	return segment{num: n}
}

// Sort returns a new slice with the tracks in composite-key order.
//
// Levels apply primary first; the underlying sort is stable, so tracks
// equal on every level keep their relative input order. Zero levels
// returns a copy in the input order. Unknown attribute tags compare
// equal and fall through to later levels; combination legality is the
// request boundary's concern, not this function's.
func Sort(tracks []models.Track, levels []models.SortLevel, ctx models.SortContext) []models.Track {
	sorted := make([]models.Track, len(tracks))
	copy(sorted, tracks)

	if len(levels) == 0 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		for _, level := range levels {
			extract, ok := registry[level.Attribute]
			if !ok {
				continue
			}

			c := extract(sorted[i], level.Direction, ctx).compare(extract(sorted[j], level.Direction, ctx))
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	return sorted
}
