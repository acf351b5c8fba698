// Package media defines shared types for the showflix application.
package media

import (
	"fmt"
	"strings"
)

// Kind represents whether content is a movie or a series.
type Kind int

const (
	Movie Kind = iota
	Series
)

func (k Kind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Series:
		return "series"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case Movie, Series:
		return true
	default:
		return false
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return Movie, nil
	case "series", "tv", "shows":
		return Series, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Category is a named catalog filter. Pattern is a regular expression
// matched against the record's category field by the backend.
type Category struct {
	Name    string `toml:"name" json:"name"`
	Pattern string `toml:"pattern" json:"pattern"`
}

// Summary is a catalog entry as surfaced in browse views.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster,omitempty"`
	Kind      Kind   `json:"kind"`
	Token     Token  `json:"token"`
}

// Detail is the full view of one title.
type Detail struct {
	Summary
	BackdropURL string    `json:"backdrop,omitempty"`
	Rating      *float64  `json:"rating,omitempty"` // 0..MaxRating, nil when unknown
	Plot        string    `json:"plot,omitempty"`
	Tags        []string  `json:"tags"`
	Episodes    []Episode `json:"episodes,omitempty"` // Series only
}

// MaxRating is the upper bound of Detail.Rating.
const MaxRating = 10.0

// Episode is one entry of a flattened season map.
type Episode struct {
	SeasonLabel  string `json:"season_label"`
	SeasonNumber *int   `json:"season,omitempty"` // nil when the label has no number
	Number       int    `json:"episode"`          // 1-based position within the season
	Name         string `json:"name"`
	Link         string `json:"link,omitempty"` // empty when no link is available
	Token        Token  `json:"token"`
}

// Available reports whether the episode slot carries a link.
func (e Episode) Available() bool {
	return e.Link != ""
}

// Page is one page of category summaries.
type Page struct {
	Category string    `json:"category"`
	Number   int       `json:"page"`
	Items    []Summary `json:"items"`
	HasNext  bool      `json:"has_next"`
}

// Stream contains the resolved stream URL.
type Stream struct {
	URL     string `json:"url"`               // empty when no link is available
	Referer string `json:"referer,omitempty"` // Referer expected by the stream host
	Title   string `json:"title"`
}

// Available reports whether a playable URL was found.
func (s *Stream) Available() bool {
	return s != nil && s.URL != ""
}
