// Package server exposes a Provider as a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"showflix/internal/media"
	"showflix/internal/provider"
)

// Server routes HTTP requests to a Provider.
type Server struct {
	provider provider.Provider
	router   *mux.Router
	logger   *zap.Logger
}

// New creates a server for p.
func New(p provider.Provider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{provider: p, router: mux.NewRouter(), logger: logger}

	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/categories", s.categories).Methods(http.MethodGet)
	s.router.HandleFunc("/catalog/{category}", s.catalog).Methods(http.MethodGet)
	s.router.HandleFunc("/search", s.search).Methods(http.MethodGet)
	s.router.HandleFunc("/meta", s.meta).Methods(http.MethodGet)
	s.router.HandleFunc("/stream", s.stream).Methods(http.MethodGet)
	s.router.Use(s.logRequests)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.provider.Categories())
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	result, err := s.provider.ListCategorySummaries(r.Context(), mux.Vars(r)["category"], page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	results, err := s.provider.Search(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": results})
}

func (s *Server) meta(w http.ResponseWriter, r *http.Request) {
	tok, ok := s.token(w, r)
	if !ok {
		return
	}
	detail, err := s.provider.LoadDetail(r.Context(), tok)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	tok, ok := s.token(w, r)
	if !ok {
		return
	}
	stream, err := s.provider.ResolveStream(r.Context(), tok)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stream)
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) (media.Token, bool) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, "missing token parameter")
		return media.Token{}, false
	}
	tok, err := media.DecodeToken(raw)
	if err != nil {
		s.fail(w, r, err)
		return media.Token{}, false
	}
	return tok, true
}

// statusFor maps provider errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, media.ErrMalformedToken),
		errors.Is(err, media.ErrUnsupportedKind),
		errors.Is(err, provider.ErrInvalidPage):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrNotFound),
		errors.Is(err, media.ErrEpisodeOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, media.ErrBackendUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	s.writeError(w, status, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Couldn't encode response", zap.Error(err))
	}
}
