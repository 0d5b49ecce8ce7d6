// Package dashboard holds the state behind one rendered page: the active
// token, the selected time range and the fetched top items.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/justestif/blocify/internal/spotify"
)

// Request sizes for the two top-item reads.
const (
	ArtistLimit = 10
	TrackLimit  = 20
)

// Fetcher reads top items for one user.
type Fetcher interface {
	TopArtists(ctx context.Context, r spotify.TimeRange, limit int) ([]spotify.Artist, error)
	TopTracks(ctx context.Context, r spotify.TimeRange, limit int) ([]spotify.Track, error)
}

// FetcherFactory builds a Fetcher that authenticates with token.
type FetcherFactory func(token string) Fetcher

// Snapshot is a point-in-time copy of a Dashboard's displayable state.
type Snapshot struct {
	Authenticated bool
	Range         spotify.TimeRange // last range picked; empty until one is
	Loaded        spotify.TimeRange // range Artists and Tracks were fetched for
	Artists       []spotify.Artist
	Tracks        []spotify.Track
}

// Dashboard is the state of one page view.
//
// The mutex is never held across network calls. Each LoadTopItems call takes
// a generation number, and its result is applied only if no later call has
// started in the meantime.
type Dashboard struct {
	mu         sync.Mutex
	id         string
	token      string
	selected   spotify.TimeRange
	loaded     spotify.TimeRange
	artists    []spotify.Artist
	tracks     []spotify.Track
	generation uint64
	createdAt  time.Time

	newFetcher FetcherFactory
	log        *log.Entry
}

// New creates a Dashboard for a page view authenticated with token, which
// may be empty.
func New(id, token string, newFetcher FetcherFactory) *Dashboard {
	return &Dashboard{
		id:         id,
		token:      token,
		createdAt:  time.Now(),
		newFetcher: newFetcher,
		log:        log.WithFields(log.Fields{"component": "dashboard", "view": id}),
	}
}

// ID returns the page view identifier.
func (d *Dashboard) ID() string {
	return d.id
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	return Snapshot{
		Authenticated: d.token != "",
		Range:         d.selected,
		Loaded:        d.loaded,
		Artists:       d.artists,
		Tracks:        d.tracks,
	}
}

// LoadTopItems fetches top artists and then top tracks for r and replaces
// the stored lists with them.
//
// Without a token it does nothing. On error the previous lists are kept,
// along with the range they were loaded for. If another LoadTopItems call
// started after this one, this call's results and errors are dropped and the
// returned snapshot reflects whatever is current.
func (d *Dashboard) LoadTopItems(ctx context.Context, r spotify.TimeRange) (Snapshot, error) {
	d.mu.Lock()
	if d.token == "" {
		snap := d.snapshotLocked()
		d.mu.Unlock()
		return snap, nil
	}
	d.selected = r
	d.generation++
	gen := d.generation
	fetcher := d.newFetcher(d.token)
	d.mu.Unlock()

	artists, tracks, err := fetchTopItems(ctx, fetcher, r)

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation {
		d.log.WithField("range", r).Debug("Dropping superseded top items response")
		return d.snapshotLocked(), nil
	}
	if err != nil {
		return d.snapshotLocked(), fmt.Errorf("loading top items: %w", err)
	}

	d.loaded = r
	d.artists = artists
	d.tracks = tracks
	d.log.WithFields(log.Fields{
		"range":   r,
		"artists": len(artists),
		"tracks":  len(tracks),
	}).Info("Loaded top items")

	return d.snapshotLocked(), nil
}

func fetchTopItems(ctx context.Context, fetcher Fetcher, r spotify.TimeRange) ([]spotify.Artist, []spotify.Track, error) {
	artists, err := fetcher.TopArtists(ctx, r, ArtistLimit)
	if err != nil {
		return nil, nil, err
	}
	tracks, err := fetcher.TopTracks(ctx, r, TrackLimit)
	if err != nil {
		return nil, nil, err
	}
	return artists, tracks, nil
}

// Logout clears the in-memory token and everything fetched with it.
// In-flight loads started before Logout are discarded.
func (d *Dashboard) Logout() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.token = ""
	d.selected = ""
	d.loaded = ""
	d.artists = nil
	d.tracks = nil
	d.generation++
}

// expired reports whether the view is older than ttl.
func (d *Dashboard) expired(ttl time.Duration) bool {
	return time.Since(d.createdAt) > ttl
}
