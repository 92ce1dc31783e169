package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain"
	"github.com/pranavi39/pawfect/internal/domain/product"
	"github.com/pranavi39/pawfect/internal/domain/search/request"
	healthuc "github.com/pranavi39/pawfect/internal/usecase/health"
	indexuc "github.com/pranavi39/pawfect/internal/usecase/index"
	searchuc "github.com/pranavi39/pawfect/internal/usecase/search"
	sessionuc "github.com/pranavi39/pawfect/internal/usecase/session"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 16

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the pawfect HTTP API.
type Server struct {
	search        *searchuc.Service
	sessions      *sessionuc.Service
	index         *indexuc.Service
	health        *healthuc.Service
	maxResults    int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxResults is the limit applied to
// searches that do not pass one; 0 means unlimited.
func NewServer(
	search *searchuc.Service,
	sessions *sessionuc.Service,
	index *indexuc.Service,
	health *healthuc.Service,
	maxResults int,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:     search,
		sessions:   sessions,
		index:      index,
		health:     health,
		maxResults: maxResults,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrorCodeInvalidCredentials),
		sentinelHandler(domain.ErrNotLoggedIn, http.StatusForbidden, ErrorCodeLoginRequired),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, ErrorCodeSessionNotFound),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, ErrorCodeProductNotFound),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, ErrorCodeIndexNotReady),
		sentinelHandler(domain.ErrDataUnavailable, http.StatusServiceUnavailable, ErrorCodeDataUnavailable),
	}
	return s
}

// Routes registers all handlers on r. Routes under /admin require one of adminKeys.
func (s *Server) Routes(r chi.Router, adminKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Get("/search", s.Search)
	r.Get("/categories", s.Categories)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{session}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/login", s.Login)
			r.Post("/logout", s.Logout)
			r.Get("/wishlist", s.GetWishlist)
			r.Post("/wishlist", s.AddToWishlist)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(adminKeys))
		r.Post("/reload", s.Reload)
	})
}

// Search handles GET /search?category=&q=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		category string
		query    string
		limit    *int
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "category", q, &category); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	// A present but empty q reaches request validation as an empty query.
	if !q.Has("q") || q.Get("q") != "" {
		if err := runtime.BindQueryParameter("form", true, true, "q", q, &query); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
			return
		}
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	n := s.maxResults
	if limit != nil {
		n = *limit
	}
	req, err := request.New(product.Category(category), query, n)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: items})
}

// Categories handles GET /categories.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.search.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: names})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToDTO(&sess))
}

// GetSession handles GET /sessions/{session}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToDTO(&sess))
}

// DeleteSession handles DELETE /sessions/{session}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /sessions/{session}/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := s.sessions.Login(r.Context(), id, req.Username, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToDTO(&sess))
}

// Logout handles POST /sessions/{session}/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	sess, err := s.sessions.Logout(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToDTO(&sess))
}

// GetWishlist handles GET /sessions/{session}/wishlist.
func (s *Server) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	entries, err := s.sessions.Wishlist(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlistToDTO(entries))
}

// AddToWishlist handles POST /sessions/{session}/wishlist.
func (s *Server) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	var req WishlistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "product_id is required")
		return
	}
	entries, err := s.sessions.AddToWishlist(r.Context(), id, *req.ProductID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlistToDTO(entries))
}

// Reload handles POST /admin/reload.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.index.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		Documents:  snap.Catalog().Len(),
		Vocabulary: snap.Vocabulary().Size(),
		FittedAt:   snap.FittedAt().UTC(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func sessionParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "session", chi.URLParam(r, "session"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var mce *domain.MissingColumnsError
	if errors.As(err, &mce) {
		return mce.Error()
	}
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidQuery,
		domain.ErrInvalidCredentials,
		domain.ErrNotLoggedIn,
		domain.ErrSessionNotFound,
		domain.ErrProductNotFound,
		domain.ErrIndexNotReady,
		domain.ErrDataUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
