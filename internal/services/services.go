package services

import (
	"context"

	"github.com/desertthunder/ytsort/internal/models"
)

// Catalog defines the external music catalog operations the sorter
// consumes. The network protocol behind it is a collaborator; the
// concrete implementation talks to a ytmusicapi proxy.
type Catalog interface {
	// PlaylistTracks fetches the ordered raw entries of a playlist.
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.RawTrack, error)

	// Album fetches album detail (track listing, year, release date).
	Album(ctx context.Context, albumID string) (*AlbumDetail, error)

	// TrackDetail fetches per-track detail including the upload date.
	TrackDetail(ctx context.Context, itemID string) (*TrackDetail, error)

	// AccountIdentity probes the current session and returns the
	// account's channel handle. An error means the credential is no
	// longer valid.
	AccountIdentity(ctx context.Context) (string, error)

	// RemoveItems issues one bulk removal of the named occurrences.
	RemoveItems(ctx context.Context, playlistID string, refs []models.ItemRef) error

	// AddItems issues one bulk insertion of the item ids, permitting
	// duplicates.
	AddItems(ctx context.Context, playlistID string, itemIDs []string) error

	// LibraryPlaylists lists the authenticated user's playlists.
	LibraryPlaylists(ctx context.Context, limit int) ([]models.Playlist, error)

	// Name returns the catalog's display name.
	Name() string
}

// AlbumTrack is one entry of an album's track listing.
type AlbumTrack struct {
	ItemID string
	Title  string
}

// ReleaseDate is the catalog's structured release date. Zero fields
// mean the component was not exposed.
type ReleaseDate struct {
	Year  int
	Month int
	Day   int
}

// AlbumDetail is the catalog's album detail response.
type AlbumDetail struct {
	ID          string
	Title       string
	Year        string       // Bare year string, may be empty
	ReleaseDate *ReleaseDate // Structured date, nil when not exposed
	Tracks      []AlbumTrack // Album order, first track first
}

// TrackDetail is the catalog's per-track detail response.
type TrackDetail struct {
	ItemID     string
	Title      string
	UploadDate string // "YYYY-MM-DD", empty when not exposed
}
