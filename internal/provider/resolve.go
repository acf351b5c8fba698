package provider

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"showflix/internal/backend"
	"showflix/internal/episode"
	"showflix/internal/httputil"
	"showflix/internal/media"
)

// Resolver turns tokens back into records and streams. It holds no state
// between calls; every call queries the backend again.
type Resolver struct {
	backend CatalogBackend
	referer string
	logger  *zap.Logger
}

// NewResolver creates a resolver. referer is attached to every stream.
func NewResolver(b CatalogBackend, referer string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{backend: b, referer: referer, logger: logger}
}

// Lookup fetches the record a token refers to.
func (r *Resolver) Lookup(ctx context.Context, tok media.Token) (backend.Record, error) {
	if err := tok.Validate(); err != nil {
		return nil, err
	}
	if err := httputil.ValidateID(tok.ID); err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrMalformedToken, err)
	}

	if lookup, ok := r.backend.(IDLookup); ok {
		return lookup.QueryByID(ctx, tok.Kind, tok.ID)
	}

	records, err := r.backend.QueryAll(ctx, tok.Kind)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.RecordID() == tok.ID && rec.Kind() == tok.Kind {
			return rec, nil
		}
	}

	if limiter, ok := r.backend.(scanLimiter); ok && len(records) >= limiter.ScanLimit() {
		r.logger.Warn("Catalog scan reached its limit without a match; the record may lie beyond it",
			zap.String("kind", tok.Kind.String()),
			zap.String("id", tok.ID),
			zap.Int("scan_limit", limiter.ScanLimit()))
	}
	return nil, fmt.Errorf("%w: %s %s", media.ErrNotFound, tok.Kind, tok.ID)
}

// Resolve returns the stream a token addresses. A record without a link
// yields a stream with an empty URL rather than an error.
func (r *Resolver) Resolve(ctx context.Context, tok media.Token) (*media.Stream, error) {
	rec, err := r.Lookup(ctx, tok)
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case media.Movie:
		movie, ok := rec.(*backend.MovieRecord)
		if !ok {
			return nil, fmt.Errorf("%w: record %s is %T, not a movie", media.ErrUnsupportedKind, tok.ID, rec)
		}
		return r.stream(movie.StreamLink, strings.TrimSpace(movie.Title)), nil

	case media.Series:
		series, ok := rec.(*backend.SeriesRecord)
		if !ok {
			return nil, fmt.Errorf("%w: record %s is %T, not a series", media.ErrUnsupportedKind, tok.ID, rec)
		}
		if tok.Episode == nil {
			return nil, fmt.Errorf("%w: series token %s names no episode", media.ErrEpisodeOutOfRange, tok.ID)
		}

		label, index := tok.Episode.Season, tok.Episode.Index
		links, matches := series.Seasons.Links(label)
		switch {
		case matches == 0:
			return nil, fmt.Errorf("%w: series %s has no season %q", media.ErrEpisodeOutOfRange, tok.ID, label)
		case matches > 1:
			r.logger.Warn("Season label is not unique; refusing to guess the episode",
				zap.String("id", tok.ID),
				zap.String("season", label),
				zap.Int("matches", matches))
			return nil, fmt.Errorf("%w: series %s has %d seasons labelled %q", media.ErrEpisodeOutOfRange, tok.ID, matches, label)
		}
		if index < 0 || index >= len(links) {
			return nil, fmt.Errorf("%w: season %q of series %s has %d episodes, requested index %d",
				media.ErrEpisodeOutOfRange, label, tok.ID, len(links), index)
		}

		title := strings.TrimSpace(series.Title) + " " + episode.DisplayName(label, episode.SeasonNumber(label), index+1)
		return r.stream(links[index], strings.TrimSpace(title)), nil

	default:
		return nil, fmt.Errorf("%w: %d", media.ErrUnsupportedKind, int(tok.Kind))
	}
}

func (r *Resolver) stream(link, title string) *media.Stream {
	link = strings.TrimSpace(link)
	if link == "" {
		r.logger.Debug("No link available", zap.String("title", title))
		return &media.Stream{Title: title}
	}
	return &media.Stream{URL: link, Referer: r.referer, Title: title}
}
