package tasks

import (
	"fmt"

	"github.com/desertthunder/ytsort/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced consumers
}

// Operation phase enumeration
type Phase int

const (
	FetchTracks Phase = iota
	EnrichAlbums
	SortTracks
	ApplyOrder
	FetchArtists
)

func (p Phase) String() string {
	switch p {
	case FetchTracks:
		return "fetch_tracks"
	case EnrichAlbums:
		return "enrich_albums"
	case SortTracks:
		return "sort_tracks"
	case ApplyOrder:
		return "apply_order"
	case FetchArtists:
		return "fetch_artists"
	default:
		return ""
	}
}

func fetchTracksUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s...", playlistID),
	}
}

func fetchedTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d tracks", count),
	}
}

func enrichUpdate(albums int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichAlbums,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving metadata for %d albums...", albums),
	}
}

func sortUpdate(levels []models.SortLevel) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SortTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Sorting by %d levels...", len(levels)),
		Data:    levels,
	}
}

func applyUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyOrder,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing new order (%d tracks)...", count),
	}
}

func fetchArtistsUpdate(username string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching top artists for %s...", username),
	}
}
