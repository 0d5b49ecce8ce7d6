package render

import (
	"fmt"
	"strings"

	"github.com/justestif/blocify/internal/spotify"
)

// FormatTopItems returns a plain-text summary of the tiers and track list,
// used by the command line.
func FormatTopItems(r spotify.TimeRange, tiers []Tier, tracks []TrackLink) string {
	var sb strings.Builder

	artistCount := 0
	for _, tier := range tiers {
		artistCount += len(tier.Tiles)
	}

	if artistCount == 0 && len(tracks) == 0 {
		sb.WriteString(fmt.Sprintf("No top items for %s\n", strings.ToLower(r.Label())))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Your top artists (%s):\n", r.Label()))
	for _, tier := range tiers {
		if len(tier.Tiles) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  [%s]\n", tier.Name))
		for _, tile := range tier.Tiles {
			sb.WriteString(fmt.Sprintf("  %2d. %s\n", tile.Rank, tile.Name))
		}
	}

	sb.WriteString("\nYour top tracks:\n")
	for _, link := range tracks {
		sb.WriteString(fmt.Sprintf("  %2d. %s", link.Number, link.Name))
		if link.URL != "" {
			sb.WriteString(fmt.Sprintf(" <%s>", link.URL))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
