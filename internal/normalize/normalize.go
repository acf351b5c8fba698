// Package normalize maps raw movie and series records onto the shared
// media model. Field-name differences between the two schemas stop here.
package normalize

import (
	"fmt"
	"strings"

	"showflix/internal/backend"
	"showflix/internal/episode"
	"showflix/internal/media"
)

// Summary builds the browse view of a record.
func Summary(rec backend.Record) (media.Summary, error) {
	switch r := rec.(type) {
	case *backend.MovieRecord:
		return media.Summary{
			ID:        r.ID,
			Title:     strings.TrimSpace(r.Title),
			PosterURL: strings.TrimSpace(r.Poster),
			Kind:      media.Movie,
			Token:     media.MovieToken(r.ID),
		}, nil
	case *backend.SeriesRecord:
		return media.Summary{
			ID:        r.ID,
			Title:     strings.TrimSpace(r.Title),
			PosterURL: strings.TrimSpace(r.Poster),
			Kind:      media.Series,
			Token:     media.SeriesToken(r.ID),
		}, nil
	default:
		return media.Summary{}, fmt.Errorf("%w: record type %T", media.ErrUnsupportedKind, rec)
	}
}

// Summaries builds the browse view of every record, in order.
func Summaries(recs []backend.Record) ([]media.Summary, error) {
	out := make([]media.Summary, 0, len(recs))
	for _, rec := range recs {
		s, err := Summary(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Detail builds the full view of a record. Series details carry the
// flattened episode list.
func Detail(rec backend.Record) (*media.Detail, error) {
	summary, err := Summary(rec)
	if err != nil {
		return nil, err
	}

	switch r := rec.(type) {
	case *backend.MovieRecord:
		return &media.Detail{
			Summary:     summary,
			BackdropURL: strings.TrimSpace(r.Backdrop),
			Rating:      ParseRating(string(r.Rating)),
			Plot:        CleanPlot(r.Plot),
			Tags:        Tags(r.Category),
		}, nil
	case *backend.SeriesRecord:
		return &media.Detail{
			Summary:     summary,
			BackdropURL: strings.TrimSpace(r.Backdrop),
			Rating:      ParseRating(string(r.Rating)),
			Plot:        CleanPlot(r.Plot),
			Tags:        Tags(r.Category),
			Episodes:    episode.Flatten(r.ID, r.Seasons),
		}, nil
	default:
		return nil, fmt.Errorf("%w: record type %T", media.ErrUnsupportedKind, rec)
	}
}

// Tags wraps the record's single category; no category means no tags.
func Tags(category string) []string {
	category = strings.TrimSpace(category)
	if category == "" {
		return []string{}
	}
	return []string{category}
}
