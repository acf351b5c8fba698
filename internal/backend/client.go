// Package backend queries the document-store catalog API that holds the
// movie and series records.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"showflix/internal/httputil"
	"showflix/internal/media"
)

// Credentials are the static application fields the backend expects in
// every request body. They are configuration, not secrets we manage.
type Credentials struct {
	ApplicationID  string
	JavaScriptKey  string
	ClientVersion  string
	InstallationID string
}

type ClientOptions struct {
	ServerURL   string
	Referer     string
	Credentials Credentials
	Timeout     time.Duration
	// ScanLimit bounds the wildcard scan used to find a record by id.
	ScanLimit int
	// HTTPClient overrides the hardened default client.
	HTTPClient *http.Client
}

var DefaultClientOpts = ClientOptions{
	ServerURL: "https://parse.showflix.shop/parse",
	Referer:   "https://showflix.xyz/",
	Credentials: Credentials{
		ApplicationID:  "SHOWFLIXAPPID",
		JavaScriptKey:  "SHOWFLIXMASTERKEY",
		ClientVersion:  "js3.4.1",
		InstallationID: "e26c34d7-8f79-4161-92d8-36d19023fc60",
	},
	Timeout:   30 * time.Second,
	ScanLimit: 1000,
}

// Client sends catalog queries. Every method makes exactly one request and
// never retries.
type Client struct {
	serverURL  string
	referer    string
	creds      Credentials
	scanLimit  int
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(opts ClientOptions, logger *zap.Logger) (*Client, error) {
	if err := httputil.ValidateURL(opts.ServerURL); err != nil {
		return nil, fmt.Errorf("opts.ServerURL: %w", err)
	}
	if opts.ScanLimit <= 0 {
		return nil, errors.New("opts.ScanLimit must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httputil.NewClient(opts.Timeout)
	}

	return &Client{
		serverURL:  opts.ServerURL,
		referer:    opts.Referer,
		creds:      opts.Credentials,
		scanLimit:  opts.ScanLimit,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// ScanLimit returns the result bound of QueryAll.
func (c *Client) ScanLimit() int {
	return c.scanLimit
}

// FetchMovies returns the newest movies whose category matches pattern.
func (c *Client) FetchMovies(ctx context.Context, pattern string, limit int) ([]MovieRecord, error) {
	q, err := CategoryQuery(media.Movie, pattern, limit, 0)
	if err != nil {
		return nil, err
	}
	return fetch[MovieRecord](ctx, c, q)
}

// FetchSeries returns the newest series whose category matches pattern.
func (c *Client) FetchSeries(ctx context.Context, pattern string, limit int) ([]SeriesRecord, error) {
	q, err := CategoryQuery(media.Series, pattern, limit, 0)
	if err != nil {
		return nil, err
	}
	return fetch[SeriesRecord](ctx, c, q)
}

// QueryByCategory returns one page of records of the given kind whose
// category matches pattern.
func (c *Client) QueryByCategory(ctx context.Context, kind media.Kind, pattern string, limit, skip int) ([]Record, error) {
	q, err := CategoryQuery(kind, pattern, limit, skip)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, q)
}

// QueryAll scans the whole catalog of a kind, bounded by the scan limit.
func (c *Client) QueryAll(ctx context.Context, kind media.Kind) ([]Record, error) {
	return c.QueryByCategory(ctx, kind, Wildcard, c.scanLimit, 0)
}

// QueryByTitle returns records whose title matches pattern, ignoring case.
func (c *Client) QueryByTitle(ctx context.Context, kind media.Kind, pattern string, limit int) ([]Record, error) {
	q, err := TitleQuery(kind, pattern, limit)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, q)
}

// Query runs q and returns its records.
func (c *Client) Query(ctx context.Context, q Query) ([]Record, error) {
	switch q.Kind {
	case media.Movie:
		movies, err := fetch[MovieRecord](ctx, c, q)
		if err != nil {
			return nil, err
		}
		records := make([]Record, len(movies))
		for i := range movies {
			records[i] = &movies[i]
		}
		return records, nil
	case media.Series:
		series, err := fetch[SeriesRecord](ctx, c, q)
		if err != nil {
			return nil, err
		}
		records := make([]Record, len(series))
		for i := range series {
			records[i] = &series[i]
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: %d", media.ErrUnsupportedKind, int(q.Kind))
	}
}

// results sends q and returns the elements of the response's "results"
// array. A missing or null "results" field yields no elements.
func (c *Client) results(ctx context.Context, q Query) ([]gjson.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	url := httputil.BuildURL(c.serverURL, "classes", q.className())
	logger := c.logger.With(zap.String("class", q.className()), zap.String("field", q.Field), zap.String("pattern", q.Pattern))
	logger.Debug("Querying catalog", zap.Int("limit", q.Limit), zap.Int("skip", q.Skip))

	body, err := httputil.PostJSON(ctx, c.httpClient, url, c.referer, q.body(c.creds))
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", media.ErrBackendUnavailable, q.className(), err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON response from %s", media.ErrBackendUnavailable, q.className())
	}
	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() {
		return nil, fmt.Errorf("%w: %s: %s (code %d)", media.ErrBackendUnavailable, q.className(), apiErr.String(), gjson.GetBytes(body, "code").Int())
	}

	results := gjson.GetBytes(body, "results")
	switch {
	case !results.Exists(), results.Type == gjson.Null:
		logger.Debug("Response has no results field")
		return nil, nil
	case !results.IsArray():
		return nil, fmt.Errorf("%w: %s: results is not an array", media.ErrBackendUnavailable, q.className())
	}

	items := results.Array()
	logger.Debug("Catalog query finished", zap.Int("results", len(items)))
	return items, nil
}

// fetch decodes each result into T. Records that fail to decode or lack an
// id are skipped.
func fetch[T MovieRecord | SeriesRecord](ctx context.Context, c *Client, q Query) ([]T, error) {
	items, err := c.results(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(items))
	for i, item := range items {
		var rec T
		if err := json.Unmarshal([]byte(item.Raw), &rec); err != nil {
			c.logger.Warn("Skipping undecodable record", zap.String("class", q.className()), zap.Int("index", i), zap.Error(err))
			continue
		}
		if item.Get("objectId").String() == "" {
			c.logger.Warn("Skipping record without objectId", zap.String("class", q.className()), zap.Int("index", i))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
