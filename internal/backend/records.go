package backend

import (
	"fmt"

	"github.com/tidwall/gjson"

	"showflix/internal/media"
)

// Record is a raw catalog record of either kind.
type Record interface {
	RecordID() string
	Kind() media.Kind
}

var (
	_ Record = (*MovieRecord)(nil)
	_ Record = (*SeriesRecord)(nil)
)

// MovieRecord is a movie as stored in the "movies" class.
type MovieRecord struct {
	ID         string `json:"objectId"`
	Title      string `json:"movieName"`
	Poster     string `json:"poster"`
	Category   string `json:"category"`
	StreamLink string `json:"streamlink"`
	Backdrop   string `json:"backdrop"`
	Rating     Text   `json:"rating"`
	Plot       string `json:"storyline"`
}

func (m *MovieRecord) RecordID() string { return m.ID }
func (m *MovieRecord) Kind() media.Kind { return media.Movie }

// SeriesRecord is a series as stored in the "series" class.
type SeriesRecord struct {
	ID       string  `json:"objectId"`
	Title    string  `json:"seriesName"`
	Poster   string  `json:"seriesPoster"`
	Category string  `json:"seriesCategory"`
	Backdrop string  `json:"seriesBackdrop"`
	Rating   Text    `json:"seriesRating"`
	Plot     string  `json:"seriesStoryline"`
	Seasons  Seasons `json:"Seasons"`
}

func (s *SeriesRecord) RecordID() string { return s.ID }
func (s *SeriesRecord) Kind() media.Kind { return media.Series }

// Season is one entry of a series' season map. Links[i] is episode i+1;
// an empty link means the slot exists but has no stream.
type Season struct {
	Label string
	Links []string
}

// Seasons keeps the season map in the order the backend returned it.
// Duplicate labels are kept as separate entries.
type Seasons []Season

// UnmarshalJSON walks the object in document order, which a Go map would lose.
func (s *Seasons) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*s = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("seasons: expected object, got %s", res.Type)
	}

	out := Seasons{}
	res.ForEach(func(key, value gjson.Result) bool {
		season := Season{Label: key.String(), Links: []string{}}
		if value.IsArray() {
			for _, v := range value.Array() {
				link := ""
				if v.Type == gjson.String {
					link = v.String()
				}
				season.Links = append(season.Links, link)
			}
		}
		out = append(out, season)
		return true
	})

	*s = out
	return nil
}

// Links returns the episode links of the first season with the given label
// and how many seasons carry that label.
func (s Seasons) Links(label string) (links []string, matches int) {
	for _, season := range s {
		if season.Label != label {
			continue
		}
		if matches == 0 {
			links = season.Links
		}
		matches++
	}
	return links, matches
}

// Text is a string field the backend sometimes stores as a number.
type Text string

// UnmarshalJSON accepts strings and numbers; anything else decodes to "".
func (t *Text) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.String, gjson.Number:
		*t = Text(res.String())
	default:
		*t = ""
	}
	return nil
}
