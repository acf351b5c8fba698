// Package episode turns a series' season map into one linear episode list.
package episode

import (
	"fmt"
	"strconv"
	"strings"

	"showflix/internal/backend"
	"showflix/internal/media"
)

// seasonPrefix is stripped from a season label before parsing its number.
const seasonPrefix = "Season "

// Flatten lists every episode of seasons in order: seasons as given, then
// episodes by position. Episode numbers restart at 1 in each season. Each
// episode carries a token addressing its season label and position, so it
// can be resolved later without flattening again.
func Flatten(seriesID string, seasons backend.Seasons) []media.Episode {
	total := 0
	for _, s := range seasons {
		total += len(s.Links)
	}

	episodes := make([]media.Episode, 0, total)
	for _, s := range seasons {
		number := SeasonNumber(s.Label)
		for i, link := range s.Links {
			episodes = append(episodes, media.Episode{
				SeasonLabel:  s.Label,
				SeasonNumber: number,
				Number:       i + 1,
				Name:         DisplayName(s.Label, number, i+1),
				Link:         link,
				Token:        media.EpisodeToken(seriesID, s.Label, i),
			})
		}
	}
	return episodes
}

// SeasonNumber parses labels such as "Season 3" or "3". Any other label
// has no number.
func SeasonNumber(label string) *int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, seasonPrefix))
	if err != nil {
		return nil
	}
	return &n
}

// DisplayName names an episode, falling back to the raw label when the
// season has no number.
func DisplayName(label string, season *int, number int) string {
	if season != nil {
		return fmt.Sprintf("S%02dE%02d", *season, number)
	}
	if label == "" {
		return fmt.Sprintf("Episode %d", number)
	}
	return fmt.Sprintf("%s - Episode %d", label, number)
}
