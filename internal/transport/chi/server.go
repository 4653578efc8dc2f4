package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/casedex/internal/domain"
	"github.com/kailas-cloud/casedex/internal/usecase/health"
	"github.com/kailas-cloud/casedex/internal/usecase/retrieval"
)

type retrievalService interface {
	RelevantCaseStudies(ctx context.Context, question string) (retrieval.Result, error)
}

type ingestService interface {
	Ingest(ctx context.Context, cs domain.CaseStudy) (string, error)
	Get(ctx context.Context, id string) (domain.CaseStudy, error)
	Delete(ctx context.Context, id string) error
}

type healthService interface {
	Check(ctx context.Context) health.Report
}

// Server exposes the retrieval core over HTTP.
type Server struct {
	retrieval retrievalService
	ingest    ingestService
	health    healthService
	tax       domain.Taxonomy
	logger    *zap.Logger
}

// NewServer creates an HTTP server over the given services.
func NewServer(ret retrievalService, ing ingestService, hc healthService, tax domain.Taxonomy, logger *zap.Logger) *Server {
	return &Server{
		retrieval: ret,
		ingest:    ing,
		health:    hc,
		tax:       tax,
		logger:    logger,
	}
}

// Routes assembles the router. Auth, request IDs and any other outer
// middleware are the caller's concern so tests can exercise handlers
// without keys.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/retrieval/query", s.Query)
		r.Post("/case-studies", s.CreateCaseStudy)
		r.Put("/case-studies/{id}", s.UpsertCaseStudy)
		r.Get("/case-studies/{id}", s.GetCaseStudy)
		r.Delete("/case-studies/{id}", s.DeleteCaseStudy)
	})

	return r
}

// Query handles POST /api/v1/retrieval/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "invalid request body")
		return
	}

	res, err := s.retrieval.RelevantCaseStudies(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err, "retrieval failed")
		return
	}

	writeJSON(w, http.StatusOK, toQueryResponse(res.Profile, res.CaseStudies))
}

// CreateCaseStudy handles POST /api/v1/case-studies. The server assigns
// the ID.
func (s *Server) CreateCaseStudy(w http.ResponseWriter, r *http.Request) {
	s.upsert(w, r, "", http.StatusCreated)
}

// UpsertCaseStudy handles PUT /api/v1/case-studies/{id}.
func (s *Server) UpsertCaseStudy(w http.ResponseWriter, r *http.Request) {
	s.upsert(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) upsert(w http.ResponseWriter, r *http.Request, id string, okStatus int) {
	var req UpsertCaseStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "invalid request body")
		return
	}

	cs := domain.CaseStudy{
		ID:         id,
		Title:      req.Title,
		SourceURL:  req.SourceURL,
		SourceFile: req.SourceFile,
		Summary:    req.Summary,
		Content:    req.Content,
		Profile:    domain.NewProfile(s.tax, req.Categories),
	}

	assigned, err := s.ingest.Ingest(r.Context(), cs)
	if err != nil {
		s.handleDomainError(w, err, "case study ingest failed")
		return
	}

	writeJSON(w, okStatus, IngestResponse{ID: assigned})
}

// GetCaseStudy handles GET /api/v1/case-studies/{id}.
func (s *Server) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	cs, err := s.ingest.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err, "case study lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, toCaseStudyResponse(cs))
}

// DeleteCaseStudy handles DELETE /api/v1/case-studies/{id}.
func (s *Server) DeleteCaseStudy(w http.ResponseWriter, r *http.Request) {
	if err := s.ingest.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err, "case study delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health. Degraded reports 503 so load
// balancers stop routing before errors pile up.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status != health.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics in Prometheus exposition format.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// errorHandler inspects err and, when it recognizes it, writes the
// response and reports true.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err, msg))
		return true
	}
}

// Order matters: more specific sentinels first, since wrapped chains can
// only match one.
var domainErrorHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
	sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, CodeValidationFailed),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrEmbeddingVersionMismatch, http.StatusConflict, CodeVersionMismatch),
	sentinelHandler(domain.ErrServiceUnavailable, http.StatusBadGateway, CodeModelUnavailable),
	sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error, msg string) {
	for _, h := range domainErrorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, msg)
}

// clientSafe lists sentinels whose wrapped text may be echoed to the
// client. Upstream failures stay behind a generic message: their chains
// carry provider and store internals.
var clientSafe = []error{
	domain.ErrInvalidInput,
	domain.ErrNotFound,
	domain.ErrVectorDimMismatch,
	domain.ErrEmbeddingVersionMismatch,
}

func safeDomainMessage(err error, fallback string) string {
	for _, s := range clientSafe {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}
