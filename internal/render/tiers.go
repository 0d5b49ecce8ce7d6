// Package render turns fetched top items into display-ready structures.
// Everything here is a pure function of its input.
package render

import (
	"errors"
	"fmt"

	"github.com/justestif/blocify/internal/spotify"
)

// ErrMissingImage is returned when an artist has no image to draw its tile.
var ErrMissingImage = errors.New("artist has no image")

// Tier names.
const (
	TierHalf  = "half"
	TierThird = "third"
	TierFifth = "fifth"
)

// Tier is one row of artist tiles sharing a size.
type Tier struct {
	Name     string
	Offset   int // rank of the first tile in the tier
	FontSize string
	Tiles    []ArtistTile
}

// ArtistTile is a clickable artist image with a rank overlay.
type ArtistTile struct {
	Rank     int
	Name     string
	URL      string
	ImageURL string
}

type tierDef struct {
	name       string
	start, end int
	offset     int
	fontSize   string
}

// tierLayout splits the ranked list into rows of 2, 3 and 5 artists.
var tierLayout = []tierDef{
	{name: TierHalf, start: 0, end: 2, offset: 1, fontSize: "lg"},
	{name: TierThird, start: 2, end: 5, offset: 3, fontSize: "md"},
	{name: TierFifth, start: 5, end: 10, offset: 6, fontSize: "sm"},
}

// ArtistTiers lays artists out in the three size tiers. The overlay rank of
// a tile is its tier offset plus its index within the tier, which gives
// 1-2, 3-5 and 6-10. Tiers are always returned, empty when the list is short;
// artists past the tenth are not shown.
func ArtistTiers(artists []spotify.Artist) ([]Tier, error) {
	tiers := make([]Tier, len(tierLayout))

	for i, def := range tierLayout {
		slice := clampSlice(artists, def.start, def.end)
		tiles := make([]ArtistTile, len(slice))

		for j, a := range slice {
			if len(a.Images) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrMissingImage, a.Name)
			}
			tiles[j] = ArtistTile{
				Rank:     def.offset + j,
				Name:     a.Name,
				URL:      a.URL,
				ImageURL: a.Images[0],
			}
		}

		tiers[i] = Tier{
			Name:     def.name,
			Offset:   def.offset,
			FontSize: def.fontSize,
			Tiles:    tiles,
		}
	}

	return tiers, nil
}

// clampSlice returns s[start:end] with both bounds clamped to len(s).
func clampSlice[T any](s []T, start, end int) []T {
	start = min(start, len(s))
	end = min(end, len(s))
	return s[start:end]
}
