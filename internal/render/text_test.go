package render

import (
	"strings"
	"testing"

	"github.com/justestif/blocify/internal/spotify"
)

func TestFormatTopItems(t *testing.T) {
	tiers, err := ArtistTiers(makeArtists(6))
	if err != nil {
		t.Fatal(err)
	}
	links := TrackLinks([]spotify.Track{
		{Name: "Roads", URL: "https://open.spotify.com/track/roads"},
		{Name: "Glory Box"},
	})

	tests := []struct {
		name           string
		tiers          []Tier
		links          []TrackLink
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:  "artists and tracks",
			tiers: tiers,
			links: links,
			wantContains: []string{
				"Your top artists (All time):",
				"[half]",
				"   1. Artist 0",
				"   2. Artist 1",
				"[third]",
				"   5. Artist 4",
				"[fifth]",
				"   6. Artist 5",
				"Your top tracks:",
				"   1. Roads <https://open.spotify.com/track/roads>",
				"   2. Glory Box\n",
			},
			wantNotContain: []string{
				"No top items",
				"   7.",
			},
		},
		{
			name:  "nothing",
			tiers: []Tier{{Name: TierHalf}, {Name: TierThird}, {Name: TierFifth}},
			links: nil,
			wantContains: []string{
				"No top items for all time",
			},
			wantNotContain: []string{
				"Your top artists",
				"[half]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTopItems(spotify.LongTerm, tt.tiers, tt.links)

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNotContain {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, got)
				}
			}
		})
	}
}
