package backend

import (
	"fmt"

	"showflix/internal/media"
)

const (
	// Wildcard matches every category.
	Wildcard = ".*"

	// orderNewestFirst sorts by creation time, descending.
	orderNewestFirst = "-createdAt"
)

// Query is one catalog request. It is built per fetch and never mutated.
type Query struct {
	Kind    media.Kind
	Field   string // record field the regex filter applies to
	Pattern string
	Options string // regex options, e.g. "i"
	Limit   int
	Skip    int
}

// CategoryQuery filters by the kind's category field.
func CategoryQuery(kind media.Kind, pattern string, limit, skip int) (Query, error) {
	var field string
	switch kind {
	case media.Movie:
		field = "category"
	case media.Series:
		field = "seriesCategory"
	default:
		return Query{}, fmt.Errorf("%w: %d", media.ErrUnsupportedKind, int(kind))
	}
	q := Query{Kind: kind, Field: field, Pattern: pattern, Limit: limit, Skip: skip}
	return q, q.Validate()
}

// TitleQuery filters by the kind's title field, case-insensitively.
func TitleQuery(kind media.Kind, pattern string, limit int) (Query, error) {
	var field string
	switch kind {
	case media.Movie:
		field = "movieName"
	case media.Series:
		field = "seriesName"
	default:
		return Query{}, fmt.Errorf("%w: %d", media.ErrUnsupportedKind, int(kind))
	}
	q := Query{Kind: kind, Field: field, Pattern: pattern, Options: "i", Limit: limit}
	return q, q.Validate()
}

// Validate checks the query bounds.
func (q Query) Validate() error {
	if !q.Kind.Valid() {
		return fmt.Errorf("%w: %d", media.ErrUnsupportedKind, int(q.Kind))
	}
	if q.Field == "" {
		return fmt.Errorf("query has no filter field")
	}
	if q.Pattern == "" {
		return fmt.Errorf("query pattern cannot be empty")
	}
	if q.Limit <= 0 {
		return fmt.Errorf("query limit must be positive, got %d", q.Limit)
	}
	if q.Skip < 0 {
		return fmt.Errorf("query skip cannot be negative, got %d", q.Skip)
	}
	return nil
}

// className returns the backend class holding records of the query's kind.
func (q Query) className() string {
	if q.Kind == media.Series {
		return "series"
	}
	return "movies"
}

type regexFilter struct {
	Regex   string `json:"$regex"`
	Options string `json:"$options,omitempty"`
}

// requestBody is the JSON body of a catalog request. The backend reads
// the auth fields from the body, and _method lets a POST act as a GET.
type requestBody struct {
	Where          map[string]regexFilter `json:"where"`
	Limit          int                    `json:"limit"`
	Skip           int                    `json:"skip,omitempty"`
	Order          string                 `json:"order"`
	Method         string                 `json:"_method"`
	ApplicationID  string                 `json:"_ApplicationId"`
	JavaScriptKey  string                 `json:"_JavaScriptKey"`
	ClientVersion  string                 `json:"_ClientVersion"`
	InstallationID string                 `json:"_InstallationId"`
}

func (q Query) body(creds Credentials) requestBody {
	return requestBody{
		Where: map[string]regexFilter{
			q.Field: {Regex: q.Pattern, Options: q.Options},
		},
		Limit:          q.Limit,
		Skip:           q.Skip,
		Order:          orderNewestFirst,
		Method:         "GET",
		ApplicationID:  creds.ApplicationID,
		JavaScriptKey:  creds.JavaScriptKey,
		ClientVersion:  creds.ClientVersion,
		InstallationID: creds.InstallationID,
	}
}
