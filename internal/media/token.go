package media

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Token is the only state carried between browsing a catalog and resolving
// a stream. It never embeds backend session state, so a decoded token always
// leads to a fresh lookup.
type Token struct {
	ID      string
	Kind    Kind
	Episode *EpisodeRef // Series episode tokens only
}

// EpisodeRef addresses one slot of a series' season map.
type EpisodeRef struct {
	Season string // season label exactly as returned by the backend
	Index  int    // 0-based position within that season
}

// MovieToken returns the token of a movie.
func MovieToken(id string) Token {
	return Token{ID: id, Kind: Movie}
}

// SeriesToken returns the title-level token of a series.
func SeriesToken(id string) Token {
	return Token{ID: id, Kind: Series}
}

// EpisodeToken returns the token of one episode of a series.
func EpisodeToken(id, season string, index int) Token {
	return Token{ID: id, Kind: Series, Episode: &EpisodeRef{Season: season, Index: index}}
}

// Validate checks the token against the schema of its kind.
func (t Token) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedToken)
	}
	if !utf8.ValidString(t.ID) {
		return fmt.Errorf("%w: id is not valid UTF-8", ErrMalformedToken)
	}
	switch t.Kind {
	case Movie:
		if t.Episode != nil {
			return fmt.Errorf("%w: movie token carries an episode", ErrMalformedToken)
		}
	case Series:
		if t.Episode == nil {
			break
		}
		if t.Episode.Index < 0 {
			return fmt.Errorf("%w: negative episode index %d", ErrMalformedToken, t.Episode.Index)
		}
		if !utf8.ValidString(t.Episode.Season) {
			return fmt.Errorf("%w: season label is not valid UTF-8", ErrMalformedToken)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedKind, int(t.Kind))
	}
	return nil
}

// tokenWire is the serialized shape of a Token.
type tokenWire struct {
	ID      *string `json:"id"`
	Kind    *string `json:"kind"`
	Season  *string `json:"season,omitempty"`
	Episode *int    `json:"episode,omitempty"`
}

// EncodeToken serializes a token into its compact JSON form.
func EncodeToken(t Token) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	kind := t.Kind.String()
	w := tokenWire{ID: &t.ID, Kind: &kind}
	if t.Episode != nil {
		season, index := t.Episode.Season, t.Episode.Index
		w.Season = &season
		w.Episode = &index
	}

	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encoding token: %w", err)
	}
	return string(data), nil
}

// DecodeToken parses a string produced by EncodeToken.
func DecodeToken(s string) (Token, error) {
	if !gjson.Valid(s) || !gjson.Parse(s).IsObject() {
		return Token{}, fmt.Errorf("%w: not a JSON object", ErrMalformedToken)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.DisallowUnknownFields()

	var w tokenWire
	if err := dec.Decode(&w); err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Token{}, fmt.Errorf("%w: trailing data", ErrMalformedToken)
	}

	if w.ID == nil || *w.ID == "" {
		return Token{}, fmt.Errorf("%w: missing id", ErrMalformedToken)
	}
	if w.Kind == nil {
		return Token{}, fmt.Errorf("%w: missing kind", ErrMalformedToken)
	}

	var kind Kind
	switch *w.Kind {
	case "movie":
		kind = Movie
	case "series":
		kind = Series
	default:
		return Token{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, *w.Kind)
	}

	t := Token{ID: *w.ID, Kind: kind}
	switch {
	case w.Season == nil && w.Episode == nil:
	case w.Season != nil && w.Episode != nil:
		t.Episode = &EpisodeRef{Season: *w.Season, Index: *w.Episode}
	default:
		return Token{}, fmt.Errorf("%w: season and episode must be given together", ErrMalformedToken)
	}

	if err := t.Validate(); err != nil {
		return Token{}, err
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Token) MarshalText() ([]byte, error) {
	s, err := EncodeToken(t)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Token) UnmarshalText(b []byte) error {
	parsed, err := DecodeToken(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// String returns the encoded token, or a placeholder when it is invalid.
func (t Token) String() string {
	s, err := EncodeToken(t)
	if err != nil {
		return "<invalid token>"
	}
	return s
}
