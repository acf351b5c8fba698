// Package provider defines the catalog capabilities the application needs
// from a backend and the ShowFlix implementation built on them.
package provider

import (
	"context"
	"errors"

	"showflix/internal/backend"
	"showflix/internal/media"
)

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("invalid page")

// Provider is everything a front-end needs to drive the catalog.
type Provider interface {
	// Categories returns the configured category list.
	Categories() []media.Category

	// ListCategorySummaries returns one page of a category, movies and
	// series mixed in random order. Pages start at 1.
	ListCategorySummaries(ctx context.Context, category string, page int) (*media.Page, error)

	// Search returns titles matching query, movies first.
	Search(ctx context.Context, query string) ([]media.Summary, error)

	// LoadDetail returns the full view of the title a token refers to.
	LoadDetail(ctx context.Context, tok media.Token) (*media.Detail, error)

	// ResolveStream returns the stream of a movie token or an episode token.
	ResolveStream(ctx context.Context, tok media.Token) (*media.Stream, error)
}

// CatalogBackend is the query capability every backend offers. The
// category filter is a regular expression; QueryAll scans the whole
// catalog of a kind.
type CatalogBackend interface {
	QueryByCategory(ctx context.Context, kind media.Kind, pattern string, limit, skip int) ([]backend.Record, error)
	QueryAll(ctx context.Context, kind media.Kind) ([]backend.Record, error)
}

// TitleSearcher is implemented by backends that can filter on titles.
type TitleSearcher interface {
	QueryByTitle(ctx context.Context, kind media.Kind, pattern string, limit int) ([]backend.Record, error)
}

// IDLookup is implemented by backends with a direct by-id query. It must
// return an error wrapping media.ErrNotFound when no record has the id.
type IDLookup interface {
	QueryByID(ctx context.Context, kind media.Kind, id string) (backend.Record, error)
}

// scanLimiter reports the result bound of QueryAll.
type scanLimiter interface {
	ScanLimit() int
}

var (
	_ CatalogBackend = (*backend.Client)(nil)
	_ TitleSearcher  = (*backend.Client)(nil)
	_ scanLimiter    = (*backend.Client)(nil)
	_ Provider       = (*ShowFlix)(nil)
)
