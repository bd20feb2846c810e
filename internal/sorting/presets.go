package sorting

import "github.com/desertthunder/ytsort/internal/models"

// Preset names accepted by the CLI.
const (
	PresetDiscography     = "discography"
	PresetLatestReleases  = "latest-releases"
	PresetFavouritesFirst = "favourites-first"
)

// Presets maps preset names to their level lists. Each list is a copy
// source; callers must not mutate the returned slices.
var Presets = map[string][]models.SortLevel{
	// Artist A→Z, then each artist's albums oldest first, in album order.
	PresetDiscography: {
		{Attribute: models.AttrArtistName, Direction: models.Ascending},
		{Attribute: models.AttrAlbumReleaseDate, Direction: models.Ascending},
		{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
	},
	// Newest albums first, in album order.
	PresetLatestReleases: {
		{Attribute: models.AttrAlbumReleaseDate, Direction: models.Descending},
		{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
	},
	// Ranked artists up top, then the discography order within.
	PresetFavouritesFirst: {
		{Attribute: models.AttrFavouriteArtists, Direction: models.Ascending},
		{Attribute: models.AttrArtistName, Direction: models.Ascending},
		{Attribute: models.AttrAlbumReleaseDate, Direction: models.Ascending},
		{Attribute: models.AttrTrackNumber, Direction: models.Ascending},
	},
}

// Preset returns the named preset's levels, or nil when unknown.
func Preset(name string) []models.SortLevel {
	levels, ok := Presets[name]
	if !ok {
		return nil
	}

	out := make([]models.SortLevel, len(levels))
	copy(out, levels)
	return out
}

// PresetNames lists the available preset names in display order.
func PresetNames() []string {
	return []string{PresetDiscography, PresetLatestReleases, PresetFavouritesFirst}
}
