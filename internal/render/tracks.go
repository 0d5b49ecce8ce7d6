package render

import "github.com/justestif/blocify/internal/spotify"

// TrackLink is one numbered entry of the top-tracks list.
type TrackLink struct {
	Number int
	Name   string
	URL    string
}

// TrackLinks numbers tracks 1..N in order.
func TrackLinks(tracks []spotify.Track) []TrackLink {
	links := make([]TrackLink, len(tracks))
	for i, t := range tracks {
		links[i] = TrackLink{
			Number: i + 1,
			Name:   t.Name,
			URL:    t.URL,
		}
	}
	return links
}
