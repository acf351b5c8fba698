package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"showflix/internal/media"
)

// recordedRequest is what the fake backend saw.
type recordedRequest struct {
	Path    string
	Referer string
	Body    map[string]any
}

type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeServer(t *testing.T, status int, response string) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	fs.Server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		fs.mu.Lock()
		fs.requests = append(fs.requests, recordedRequest{Path: r.URL.Path, Referer: r.Header.Get("Referer"), Body: body})
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func newTestClient(t *testing.T, fs *fakeServer) *Client {
	t.Helper()
	opts := DefaultClientOpts
	opts.ServerURL = fs.URL + "/parse"
	opts.HTTPClient = fs.Client()
	opts.ScanLimit = 500
	c, err := NewClient(opts, zap.NewNop())
	require.NoError(t, err)
	return c
}

const moviesResponse = `{"results":[
	{"objectId":"m1","movieName":"Vikram","poster":"https://img.example/m1.jpg","category":"Tamil","streamlink":"https://cdn.example/m1.m3u8","backdrop":"https://img.example/m1-bg.jpg","rating":"8.4","storyline":"<p>An agent.</p>","createdAt":"2024-01-01T00:00:00.000Z"},
	{"objectId":"m2","movieName":"Jailer","category":"Tamil","streamlink":null,"rating":7.1}
]}`

func TestFetchMoviesRequest(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, moviesResponse)
	c := newTestClient(t, fs)

	movies, err := c.FetchMovies(context.Background(), `\QTamil\E`, 10)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	req := fs.lastRequest(t)
	require.Equal(t, "/parse/classes/movies", req.Path)
	require.Equal(t, DefaultClientOpts.Referer, req.Referer)

	want := map[string]any{
		"where":           map[string]any{"category": map[string]any{"$regex": `\QTamil\E`}},
		"limit":           float64(10),
		"order":           "-createdAt",
		"_method":         "GET",
		"_ApplicationId":  "SHOWFLIXAPPID",
		"_JavaScriptKey":  "SHOWFLIXMASTERKEY",
		"_ClientVersion":  "js3.4.1",
		"_InstallationId": "e26c34d7-8f79-4161-92d8-36d19023fc60",
	}
	if diff := cmp.Diff(want, req.Body); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchMoviesDecoding(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, moviesResponse)
	c := newTestClient(t, fs)

	movies, err := c.FetchMovies(context.Background(), Wildcard, 10)
	require.NoError(t, err)

	want := []MovieRecord{
		{
			ID:         "m1",
			Title:      "Vikram",
			Poster:     "https://img.example/m1.jpg",
			Category:   "Tamil",
			StreamLink: "https://cdn.example/m1.m3u8",
			Backdrop:   "https://img.example/m1-bg.jpg",
			Rating:     "8.4",
			Plot:       "<p>An agent.</p>",
		},
		{ID: "m2", Title: "Jailer", Category: "Tamil", Rating: "7.1"},
	}
	if diff := cmp.Diff(want, movies); diff != "" {
		t.Errorf("movies mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchSeriesKeepsSeasonOrder(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"results":[{
		"objectId":"s1","seriesName":"Suzhal","seriesCategory":"Tamil","seriesRating":"8",
		"Seasons":{"Season 2":["urlC"],"Season 1":["urlA","urlB"],"Specials":[],"Season 1":["urlD",null]}
	}]}`)
	c := newTestClient(t, fs)

	series, err := c.FetchSeries(context.Background(), `\QTamil\E`, 5)
	require.NoError(t, err)
	require.Len(t, series, 1)

	req := fs.lastRequest(t)
	require.Equal(t, "/parse/classes/series", req.Path)
	require.Equal(t, map[string]any{"seriesCategory": map[string]any{"$regex": `\QTamil\E`}}, req.Body["where"])

	want := Seasons{
		{Label: "Season 2", Links: []string{"urlC"}},
		{Label: "Season 1", Links: []string{"urlA", "urlB"}},
		{Label: "Specials", Links: []string{}},
		{Label: "Season 1", Links: []string{"urlD", ""}},
	}
	if diff := cmp.Diff(want, series[0].Seasons); diff != "" {
		t.Errorf("seasons mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryEmptyResults(t *testing.T) {
	for name, response := range map[string]string{
		"missing field": `{}`,
		"null field":    `{"results":null}`,
		"empty list":    `{"results":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			fs := newFakeServer(t, http.StatusOK, response)
			c := newTestClient(t, fs)

			records, err := c.QueryByCategory(context.Background(), media.Series, Wildcard, 10, 0)
			require.NoError(t, err)
			require.Empty(t, records)
		})
	}
}

func TestQueryBackendUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"forbidden", http.StatusForbidden, `{"code":119,"error":"Permission denied"}`},
		{"error body with 200", http.StatusOK, `{"code":102,"error":"Invalid query"}`},
		{"invalid json", http.StatusOK, `<html>`},
		{"results not array", http.StatusOK, `{"results":{"a":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t, tt.status, tt.response)
			c := newTestClient(t, fs)

			_, err := c.QueryByCategory(context.Background(), media.Movie, Wildcard, 10, 0)
			require.ErrorIs(t, err, media.ErrBackendUnavailable)
		})
	}
}

func TestQueryAllUsesWildcardScan(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, moviesResponse)
	c := newTestClient(t, fs)

	records, err := c.QueryAll(context.Background(), media.Movie)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "m1", records[0].RecordID())
	require.Equal(t, media.Movie, records[0].Kind())

	req := fs.lastRequest(t)
	require.Equal(t, map[string]any{"category": map[string]any{"$regex": Wildcard}}, req.Body["where"])
	require.Equal(t, float64(500), req.Body["limit"])
}

func TestQueryByCategorySkip(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"results":[]}`)
	c := newTestClient(t, fs)

	_, err := c.QueryByCategory(context.Background(), media.Movie, "English", 10, 20)
	require.NoError(t, err)
	require.Equal(t, float64(20), fs.lastRequest(t).Body["skip"])
}

func TestQueryByTitle(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"results":[]}`)
	c := newTestClient(t, fs)

	_, err := c.QueryByTitle(context.Background(), media.Series, "suzhal", 20)
	require.NoError(t, err)

	want := map[string]any{"seriesName": map[string]any{"$regex": "suzhal", "$options": "i"}}
	require.Equal(t, want, fs.lastRequest(t).Body["where"])
}

func TestQuerySkipsBrokenRecords(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"results":[
		{"objectId":"ok","movieName":"Fine"},
		{"objectId":"bad","movieName":["not","a","string"]},
		{"movieName":"No id"}
	]}`)
	c := newTestClient(t, fs)

	movies, err := c.FetchMovies(context.Background(), Wildcard, 10)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "ok", movies[0].ID)
}

func TestQueryRejectsBadInput(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"results":[]}`)
	c := newTestClient(t, fs)

	_, err := c.QueryByCategory(context.Background(), media.Kind(9), Wildcard, 10, 0)
	require.ErrorIs(t, err, media.ErrUnsupportedKind)

	_, err = c.FetchMovies(context.Background(), Wildcard, 0)
	require.Error(t, err)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.Empty(t, fs.requests, "invalid queries must not reach the backend")
}

func TestNewClientValidation(t *testing.T) {
	opts := DefaultClientOpts
	opts.ServerURL = "http://insecure.example/parse"
	_, err := NewClient(opts, nil)
	require.Error(t, err)

	opts = DefaultClientOpts
	opts.ScanLimit = 0
	_, err = NewClient(opts, nil)
	require.Error(t, err)
}
