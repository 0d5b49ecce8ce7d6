package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// TopArtists fetches the current user's top artists for the given range.
func (c *Client) TopArtists(ctx context.Context, r TimeRange, limit int) ([]Artist, error) {
	page, err := c.api.CurrentUsersTopArtists(ctx,
		spotify.Timerange(spotify.Range(r)),
		spotify.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top artists (%s): %w", r, err)
	}

	artists := make([]Artist, len(page.Artists))
	for i, a := range page.Artists {
		artists[i] = convertArtist(a)
	}
	return artists, nil
}

// TopTracks fetches the current user's top tracks for the given range.
func (c *Client) TopTracks(ctx context.Context, r TimeRange, limit int) ([]Track, error) {
	page, err := c.api.CurrentUsersTopTracks(ctx,
		spotify.Timerange(spotify.Range(r)),
		spotify.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks (%s): %w", r, err)
	}

	tracks := make([]Track, len(page.Tracks))
	for i, t := range page.Tracks {
		tracks[i] = convertTrack(t)
	}
	return tracks, nil
}

// convertArtist converts a Spotify FullArtist to Artist.
func convertArtist(a spotify.FullArtist) Artist {
	images := make([]string, len(a.Images))
	for i, img := range a.Images {
		images[i] = img.URL
	}

	return Artist{
		Name:   a.Name,
		URL:    a.ExternalURLs["spotify"],
		Images: images,
	}
}

// convertTrack converts a Spotify FullTrack to Track.
func convertTrack(t spotify.FullTrack) Track {
	return Track{
		Name: t.Name,
		URL:  t.ExternalURLs["spotify"],
	}
}
