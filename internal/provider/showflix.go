package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"showflix/internal/backend"
	"showflix/internal/media"
	"showflix/internal/normalize"
)

const (
	// DefaultHomeLimit is the page size of each kind in a category listing.
	DefaultHomeLimit = 10

	// searchLimit bounds the results of each kind in a search.
	searchLimit = 40
)

// Options configures a ShowFlix provider.
type Options struct {
	Categories []media.Category
	HomeLimit  int
	Referer    string

	// Shuffle orders a mixed category page. Nil means a fresh random
	// permutation on every call.
	Shuffle func([]media.Summary)
}

// ShowFlix implements Provider on top of a CatalogBackend.
type ShowFlix struct {
	backend    CatalogBackend
	resolver   *Resolver
	categories []media.Category
	homeLimit  int
	shuffle    func([]media.Summary)
	logger     *zap.Logger
}

// New creates a ShowFlix provider.
func New(b CatalogBackend, opts Options, logger *zap.Logger) (*ShowFlix, error) {
	if b == nil {
		return nil, errors.New("provider: backend is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HomeLimit == 0 {
		opts.HomeLimit = DefaultHomeLimit
	}
	if opts.HomeLimit < 0 {
		return nil, fmt.Errorf("provider: home limit must be positive, got %d", opts.HomeLimit)
	}
	if opts.Shuffle == nil {
		opts.Shuffle = shuffleSummaries
	}

	return &ShowFlix{
		backend:    b,
		resolver:   NewResolver(b, opts.Referer, logger),
		categories: append([]media.Category(nil), opts.Categories...),
		homeLimit:  opts.HomeLimit,
		shuffle:    opts.Shuffle,
		logger:     logger,
	}, nil
}

func shuffleSummaries(items []media.Summary) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Categories returns a copy of the configured categories.
func (s *ShowFlix) Categories() []media.Category {
	return append([]media.Category(nil), s.categories...)
}

// Category resolves a label to a configured category, ignoring case.
// Unknown labels match their own text literally.
func (s *ShowFlix) Category(label string) media.Category {
	label = strings.TrimSpace(label)
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, label) {
			return c
		}
	}
	return media.Category{Name: label, Pattern: regexp.QuoteMeta(label)}
}

// ListCategorySummaries fetches one page of movies and series of a
// category in parallel and returns them shuffled together.
func (s *ShowFlix) ListCategorySummaries(ctx context.Context, category string, page int) (*media.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	cat := s.Category(category)
	if cat.Pattern == "" {
		return nil, errors.New("category cannot be empty")
	}

	result, err := s.CategorySummaries(ctx, cat, page)
	if err != nil {
		return nil, err
	}
	s.shuffle(result.Items)
	return result, nil
}

// CategorySummaries is ListCategorySummaries without the shuffle: movies
// come first, then series, each newest first.
func (s *ShowFlix) CategorySummaries(ctx context.Context, cat media.Category, page int) (*media.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	skip := (page - 1) * s.homeLimit

	movies, series, err := s.fetchBoth(ctx, func(ctx context.Context, kind media.Kind) ([]backend.Record, error) {
		return s.backend.QueryByCategory(ctx, kind, cat.Pattern, s.homeLimit, skip)
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cat.Name, err)
	}

	items, err := normalize.Summaries(slices.Concat(movies, series))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Listed category",
		zap.String("category", cat.Name),
		zap.Int("page", page),
		zap.Int("movies", len(movies)),
		zap.Int("series", len(series)))

	return &media.Page{
		Category: cat.Name,
		Number:   page,
		Items:    items,
		HasNext:  len(movies) == s.homeLimit || len(series) == s.homeLimit,
	}, nil
}

// Search matches query literally against titles of both kinds, ignoring
// case. It needs a backend that implements TitleSearcher.
func (s *ShowFlix) Search(ctx context.Context, query string) ([]media.Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	searcher, ok := s.backend.(TitleSearcher)
	if !ok {
		return nil, errors.New("backend does not support title search")
	}

	pattern := regexp.QuoteMeta(query)
	movies, series, err := s.fetchBoth(ctx, func(ctx context.Context, kind media.Kind) ([]backend.Record, error) {
		return searcher.QueryByTitle(ctx, kind, pattern, searchLimit)
	})
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}
	return normalize.Summaries(slices.Concat(movies, series))
}

// LoadDetail returns the full view of the title a token refers to. An
// episode token loads its whole series.
func (s *ShowFlix) LoadDetail(ctx context.Context, tok media.Token) (*media.Detail, error) {
	rec, err := s.resolver.Lookup(ctx, tok)
	if err != nil {
		return nil, err
	}
	return normalize.Detail(rec)
}

// ResolveStream returns the stream a movie or episode token addresses.
func (s *ShowFlix) ResolveStream(ctx context.Context, tok media.Token) (*media.Stream, error) {
	return s.resolver.Resolve(ctx, tok)
}

// fetchBoth runs fetch for movies and series concurrently and waits for
// both. Errors from either side are combined.
func (s *ShowFlix) fetchBoth(ctx context.Context, fetch func(context.Context, media.Kind) ([]backend.Record, error)) (movies, series []backend.Record, err error) {
	var movieErr, seriesErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		movies, movieErr = fetch(ctx, media.Movie)
	})
	wg.Go(func() {
		series, seriesErr = fetch(ctx, media.Series)
	})
	wg.Wait()

	if err := multierr.Combine(movieErr, seriesErr); err != nil {
		return nil, nil, err
	}
	return movies, series, nil
}
