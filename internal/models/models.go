package models

// Sentinel values for attributes the catalog could not resolve.
//
// UnknownTrackNumber marks a track whose position within its album is
// unknown; UnknownReleaseDate marks an album with no usable date. Both
// land after every real value in sorted output.
const (
	UnknownTrackNumber = 9999
	UnknownReleaseDate = "9999-01-01"
)

// AlbumRef is the album reference attached to a raw playlist entry.
type AlbumRef struct {
	ID   string
	Name string
}

// RawTrack is a playlist entry as returned by the catalog's playlist
// browse endpoint, before enrichment.
type RawTrack struct {
	ItemID     string    // Stable content identifier (videoId)
	InstanceID string    // This occurrence within the playlist (setVideoId)
	Title      string
	Artist     string    // First credited artist, may be empty
	Album      *AlbumRef // Nil when the entry has no album context
	Duration   int       // Seconds, 0 when unknown
}

// Track is a playlist entry enriched with album metadata, ready for
// sorting. One Track is produced per RawTrack, in input order.
type Track struct {
	ItemID      string
	InstanceID  string
	Title       string
	Artist      string
	AlbumName   string
	ReleaseDate string // "YYYY-MM-DD", empty when unresolved
	TrackNumber int    // 1-indexed album position, UnknownTrackNumber when unresolved
	Duration    int
}

// Ref returns the (item id, instance id) pair naming this occurrence
// for bulk playlist operations.
func (t Track) Ref() ItemRef {
	return ItemRef{ItemID: t.ItemID, InstanceID: t.InstanceID}
}

// AlbumMetadata holds per-album data resolved during enrichment.
//
// Two position maps are kept because the catalog's playlist-browse and
// album-detail endpoints do not guarantee identical item ids for the
// same recording across album contexts (a song on both a studio album
// and a compilation); normalized title matching is the fallback.
type AlbumMetadata struct {
	AlbumID         string         `json:"album_id"`
	ReleaseDate     string         `json:"release_date"`
	PositionByID    map[string]int `json:"position_by_id"`
	PositionByTitle map[string]int `json:"position_by_title"`
}

// ItemRef names one playlist occurrence for bulk removal. The pair is
// required because the same item id may recur within one playlist.
type ItemRef struct {
	ItemID     string
	InstanceID string
}

// SortAttribute tags a sortable track attribute.
type SortAttribute string

const (
	AttrArtistName       SortAttribute = "artist_name"
	AttrAlbumName        SortAttribute = "album_name"
	AttrAlbumReleaseDate SortAttribute = "album_release_date"
	AttrTrackNumber      SortAttribute = "track_number"
	AttrFavouriteArtists SortAttribute = "favourite_artists"
	AttrTitle            SortAttribute = "title"
)

// Valid reports whether the attribute tag is one the composer supports.
func (a SortAttribute) Valid() bool {
	switch a {
	case AttrArtistName, AttrAlbumName, AttrAlbumReleaseDate,
		AttrTrackNumber, AttrFavouriteArtists, AttrTitle:
		return true
	}
	return false
}

// SortDirection is the direction of a single sort level.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortLevel is one level in a multi-level sort. An ordered list of
// levels, primary first, defines the composite key.
type SortLevel struct {
	Attribute SortAttribute
	Direction SortDirection
}

// SortContext carries per-request configuration consulted by key
// extractors. It is a value type and never mutated after construction.
type SortContext struct {
	// ArtistRankings maps artist name to rank; lower rank means more
	// favoured. Consulted only by the favourite-artists attribute.
	ArtistRankings map[string]int
}

// NewSortContext builds a SortContext from an ordered favourites list,
// first entry most favoured. Repeated names keep their first rank.
func NewSortContext(favouriteArtists []string) SortContext {
	rankings := make(map[string]int, len(favouriteArtists))
	for i, name := range favouriteArtists {
		if _, seen := rankings[name]; !seen {
			rankings[name] = i
		}
	}
	return SortContext{ArtistRankings: rankings}
}

// Playlist is basic playlist metadata from the catalog.
type Playlist struct {
	ID         string
	Title      string
	TrackCount int
}
