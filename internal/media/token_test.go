package media

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token Token
	}{
		{"movie", MovieToken("aB3dE5fG7h")},
		{"series title", SeriesToken("Zx9Yw8Vu7T")},
		{"first episode", EpisodeToken("Zx9Yw8Vu7T", "Season 1", 0)},
		{"later episode", EpisodeToken("Zx9Yw8Vu7T", "Season 12", 41)},
		{"non-numeric season", EpisodeToken("Zx9Yw8Vu7T", "Specials", 3)},
		{"empty season label", EpisodeToken("Zx9Yw8Vu7T", "", 0)},
		{"unicode label", EpisodeToken("Zx9Yw8Vu7T", "சீசன் 2", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeToken(tt.token)
			require.NoError(t, err)

			decoded, err := DecodeToken(encoded)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.token, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeTokenFormat(t *testing.T) {
	got, err := EncodeToken(MovieToken("abc123"))
	require.NoError(t, err)
	require.Equal(t, `{"id":"abc123","kind":"movie"}`, got)

	got, err = EncodeToken(EpisodeToken("xyz", "Season 1", 0))
	require.NoError(t, err)
	require.Equal(t, `{"id":"xyz","kind":"series","season":"Season 1","episode":0}`, got)
}

func TestEncodeTokenInvalid(t *testing.T) {
	tests := []struct {
		name    string
		token   Token
		wantErr error
	}{
		{"empty id", Token{Kind: Movie}, ErrMalformedToken},
		{"movie with episode", Token{ID: "a", Kind: Movie, Episode: &EpisodeRef{Season: "Season 1"}}, ErrMalformedToken},
		{"negative index", EpisodeToken("a", "Season 1", -1), ErrMalformedToken},
		{"unknown kind", Token{ID: "a", Kind: Kind(7)}, ErrUnsupportedKind},
		{"season not utf-8", EpisodeToken("abc", "Season \xff1", 0), ErrMalformedToken},
		{"id not utf-8", MovieToken("m\xfe"), ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeToken(tt.token)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty string", "", ErrMalformedToken},
		{"not json", "movie:abc", ErrMalformedToken},
		{"json array", `["abc","movie"]`, ErrMalformedToken},
		{"missing id", `{"kind":"movie"}`, ErrMalformedToken},
		{"empty id", `{"id":"","kind":"movie"}`, ErrMalformedToken},
		{"missing kind", `{"id":"abc"}`, ErrMalformedToken},
		{"id wrong type", `{"id":42,"kind":"movie"}`, ErrMalformedToken},
		{"episode wrong type", `{"id":"a","kind":"series","season":"Season 1","episode":"2"}`, ErrMalformedToken},
		{"fractional episode", `{"id":"a","kind":"series","season":"Season 1","episode":1.5}`, ErrMalformedToken},
		{"season without episode", `{"id":"a","kind":"series","season":"Season 1"}`, ErrMalformedToken},
		{"episode without season", `{"id":"a","kind":"series","episode":0}`, ErrMalformedToken},
		{"negative episode", `{"id":"a","kind":"series","season":"Season 1","episode":-1}`, ErrMalformedToken},
		{"movie with season", `{"id":"a","kind":"movie","season":"Season 1","episode":0}`, ErrMalformedToken},
		{"unknown field", `{"id":"a","kind":"movie","session":"x"}`, ErrMalformedToken},
		{"trailing data", `{"id":"a","kind":"movie"} {"id":"b","kind":"movie"}`, ErrMalformedToken},
		{"unknown kind", `{"id":"a","kind":"anime"}`, ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeToken(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestTokenInJSON(t *testing.T) {
	s := Summary{ID: "abc", Title: "Vikram", Kind: Movie, Token: MovieToken("abc")}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"abc","title":"Vikram","kind":"movie","token":"{\"id\":\"abc\",\"kind\":\"movie\"}"}`, string(data))

	var back Summary
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(s, back); diff != "" {
		t.Errorf("summary JSON round trip (-want +got):\n%s", diff)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"movie", Movie, false},
		{"Movies", Movie, false},
		{"series", Series, false},
		{"tv", Series, false},
		{"anime", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
