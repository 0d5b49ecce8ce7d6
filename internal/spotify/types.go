package spotify

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeRange is returned when a time range selector is not one of
// the values Spotify accepts.
var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange selects the window Spotify computes top items over.
type TimeRange string

const (
	LongTerm   TimeRange = "long_term"   // all time
	MediumTerm TimeRange = "medium_term" // roughly the last 6 months
	ShortTerm  TimeRange = "short_term"  // roughly the last 4 weeks
)

// TimeRanges returns the selectable ranges in display order.
func TimeRanges() []TimeRange {
	return []TimeRange{LongTerm, MediumTerm, ShortTerm}
}

// ParseTimeRange validates a raw selector value.
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(s); r {
	case LongTerm, MediumTerm, ShortTerm:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
}

// Label returns the button caption for the range.
func (r TimeRange) Label() string {
	switch r {
	case LongTerm:
		return "All time"
	case MediumTerm:
		return "6 months"
	case ShortTerm:
		return "Last month"
	default:
		return string(r)
	}
}

// Artist is a top-artist entry as returned by the API.
type Artist struct {
	Name   string
	URL    string   // external Spotify profile
	Images []string // image URLs, largest first
}

// Track is a top-track entry as returned by the API.
type Track struct {
	Name string
	URL  string // external Spotify page
}
