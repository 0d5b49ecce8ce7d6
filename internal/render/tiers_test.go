package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/justestif/blocify/internal/spotify"
)

func makeArtists(n int) []spotify.Artist {
	artists := make([]spotify.Artist, n)
	for i := range artists {
		artists[i] = spotify.Artist{
			Name:   fmt.Sprintf("Artist %d", i),
			URL:    fmt.Sprintf("https://open.spotify.com/artist/%d", i),
			Images: []string{fmt.Sprintf("https://i.scdn.co/image/%d", i), "https://i.scdn.co/image/small"},
		}
	}
	return artists
}

func TestArtistTiers_TenArtists(t *testing.T) {
	tiers, err := ArtistTiers(makeArtists(10))
	if err != nil {
		t.Fatalf("ArtistTiers() error = %v", err)
	}

	tests := []struct {
		tier      string
		offset    int
		wantIdx   []int
		wantRanks []int
	}{
		{TierHalf, 1, []int{0, 1}, []int{1, 2}},
		{TierThird, 3, []int{2, 3, 4}, []int{3, 4, 5}},
		{TierFifth, 6, []int{5, 6, 7, 8, 9}, []int{6, 7, 8, 9, 10}},
	}

	if len(tiers) != len(tests) {
		t.Fatalf("got %d tiers, want %d", len(tiers), len(tests))
	}

	for i, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			tier := tiers[i]
			if tier.Name != tt.tier {
				t.Errorf("Name = %q, want %q", tier.Name, tt.tier)
			}
			if tier.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", tier.Offset, tt.offset)
			}
			if len(tier.Tiles) != len(tt.wantIdx) {
				t.Fatalf("got %d tiles, want %d", len(tier.Tiles), len(tt.wantIdx))
			}
			for j, tile := range tier.Tiles {
				wantName := fmt.Sprintf("Artist %d", tt.wantIdx[j])
				if tile.Name != wantName {
					t.Errorf("tile %d Name = %q, want %q", j, tile.Name, wantName)
				}
				if tile.Rank != tt.wantRanks[j] {
					t.Errorf("tile %d Rank = %d, want %d", j, tile.Rank, tt.wantRanks[j])
				}
				wantImg := fmt.Sprintf("https://i.scdn.co/image/%d", tt.wantIdx[j])
				if tile.ImageURL != wantImg {
					t.Errorf("tile %d ImageURL = %q, want first image %q", j, tile.ImageURL, wantImg)
				}
				wantURL := fmt.Sprintf("https://open.spotify.com/artist/%d", tt.wantIdx[j])
				if tile.URL != wantURL {
					t.Errorf("tile %d URL = %q, want %q", j, tile.URL, wantURL)
				}
			}
		})
	}
}

func TestArtistTiers_RanksAreContiguous(t *testing.T) {
	tiers, err := ArtistTiers(makeArtists(10))
	if err != nil {
		t.Fatal(err)
	}

	want := 1
	for _, tier := range tiers {
		for _, tile := range tier.Tiles {
			if tile.Rank != want {
				t.Errorf("%s tile %q Rank = %d, want %d", tier.Name, tile.Name, tile.Rank, want)
			}
			want++
		}
	}
}

func TestArtistTiers_ShortAndLongLists(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantSizes []int
	}{
		{"empty", 0, []int{0, 0, 0}},
		{"one", 1, []int{1, 0, 0}},
		{"three", 3, []int{2, 1, 0}},
		{"seven", 7, []int{2, 3, 2}},
		{"more than ten", 14, []int{2, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers, err := ArtistTiers(makeArtists(tt.count))
			if err != nil {
				t.Fatalf("ArtistTiers() error = %v", err)
			}
			if len(tiers) != 3 {
				t.Fatalf("got %d tiers, want 3", len(tiers))
			}
			for i, want := range tt.wantSizes {
				if got := len(tiers[i].Tiles); got != want {
					t.Errorf("tier %s has %d tiles, want %d", tiers[i].Name, got, want)
				}
			}
		})
	}
}

func TestArtistTiers_MissingImage(t *testing.T) {
	artists := makeArtists(6)
	artists[4].Images = nil

	tiers, err := ArtistTiers(artists)
	if !errors.Is(err, ErrMissingImage) {
		t.Fatalf("ArtistTiers() error = %v, want ErrMissingImage", err)
	}
	if tiers != nil {
		t.Errorf("tiers = %+v, want nil on error", tiers)
	}
}

func TestArtistTiers_DoesNotMutateInput(t *testing.T) {
	artists := makeArtists(10)
	before := fmt.Sprintf("%+v", artists)

	if _, err := ArtistTiers(artists); err != nil {
		t.Fatal(err)
	}

	if after := fmt.Sprintf("%+v", artists); after != before {
		t.Error("ArtistTiers() modified its input")
	}
}
