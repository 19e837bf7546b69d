package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/search/query"
	"github.com/kailas-cloud/entsearch/internal/logger"
	searchuc "github.com/kailas-cloud/entsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the search service over HTTP.
type Server struct {
	search          *searchuc.Service
	defaultKinds    kind.Set
	maxRequestBytes int64
	logger          *zap.Logger
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server. defaultKinds applies to requests
// that omit enabled_kinds.
func NewServer(search *searchuc.Service, defaultKinds kind.Set, maxRequestBytes int64, logger *zap.Logger) *Server {
	if defaultKinds == nil {
		defaultKinds = kind.AllKinds()
	}
	return &Server{
		search:          search,
		defaultKinds:    defaultKinds,
		maxRequestBytes: maxRequestBytes,
		logger:          logger,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrInvalidKind, http.StatusBadRequest, CodeInvalidKind),
			sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		},
	}
}

// Routes mounts the API on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r gochi.Router) {
		r.Post("/search", s.Search)
		r.Get("/kinds", s.ListKinds)
	})
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if s.maxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxRequestBytes)
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := s.buildQuery(req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources, err := sourcesFromBody(req.Sources)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	rs, err := s.search.Search(r.Context(), q, sources)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	logger.FromContext(r.Context()).Debug("search served",
		zap.String("filter", q.ActiveFilter().String()),
		zap.Int("items", rs.Len()),
		zap.Int("unfiltered", rs.UnfilteredCount()),
	)
	writeJSON(w, http.StatusOK, resultSetToBody(rs))
}

// ListKinds handles GET /v1/kinds.
func (s *Server) ListKinds(w http.ResponseWriter, _ *http.Request) {
	kinds := kind.Canonical()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	writeJSON(w, http.StatusOK, map[string][]string{"kinds": names})
}

// Health handles GET /health. The service has no dependencies to probe.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) buildQuery(body QueryBody) (query.Query, error) {
	filter, err := kind.Parse(body.ActiveFilter)
	if err != nil {
		return query.Query{}, err
	}
	enabled := s.defaultKinds
	if body.EnabledKinds != nil {
		if enabled, err = kind.ParseSet(body.EnabledKinds); err != nil {
			return query.Query{}, err
		}
	}
	q, err := query.New(body.Text, filter, enabled)
	if err != nil {
		return query.Query{}, fmt.Errorf("build query: %w", err)
	}
	return q, nil
}

// sourcesFromBody keys the records by kind. Unknown kind names are rejected.
func sourcesFromBody(body map[string][]json.RawMessage) (searchuc.Sources, error) {
	sources := make(searchuc.Sources, len(body))
	for name, records := range body {
		k, err := kind.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("sources: %w", err)
		}
		if k == kind.All {
			return nil, fmt.Errorf("sources: %w: %q is not an entity kind", domain.ErrInvalidKind, name)
		}
		sources[k] = append(sources[k], records...)
	}
	return sources, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
