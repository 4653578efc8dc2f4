package chi

import (
	"github.com/kailas-cloud/casedex/internal/domain"
)

// ErrorCode is a machine-readable error discriminator carried in every
// error response body.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeNotFound         ErrorCode = "not_found"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeModelUnavailable ErrorCode = "model_unavailable"
	CodeStoreUnavailable ErrorCode = "store_unavailable"
	CodeVersionMismatch  ErrorCode = "embedding_version_mismatch"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QueryRequest asks for case studies relevant to a free-text business
// question.
type QueryRequest struct {
	Question string `json:"question"`
}

// CaseStudyResponse is the wire form of a stored case study.
type CaseStudyResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	SourceURL  string              `json:"source_url,omitempty"`
	SourceFile string              `json:"source_file,omitempty"`
	Summary    string              `json:"summary,omitempty"`
	Content    string              `json:"content"`
	Categories map[string][]string `json:"categories"`
}

// RankedCaseStudyResponse augments a case study with its retrieval score
// and the stage that produced it ("vector" or "fallback").
type RankedCaseStudyResponse struct {
	CaseStudyResponse
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// QueryResponse carries the extracted category profile alongside the
// ranked case studies it matched.
type QueryResponse struct {
	Profile map[string][]string       `json:"profile"`
	Results []RankedCaseStudyResponse `json:"results"`
	Total   int                       `json:"total"`
}

// UpsertCaseStudyRequest is the body for creating or replacing a case
// study. Categories values outside the taxonomy are dropped during
// validation, not rejected.
type UpsertCaseStudyRequest struct {
	Title      string              `json:"title"`
	SourceURL  string              `json:"source_url"`
	SourceFile string              `json:"source_file"`
	Summary    string              `json:"summary"`
	Content    string              `json:"content"`
	Categories map[string][]string `json:"categories"`
}

// IngestResponse returns the ID assigned to an ingested case study.
type IngestResponse struct {
	ID string `json:"id"`
}

// HealthResponse reports aggregate and per-component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func profileToMap(p domain.Profile) map[string][]string {
	out := make(map[string][]string)
	for _, dim := range p.Taxonomy().Dimensions() {
		if vals := p.Values(dim); len(vals) > 0 {
			out[string(dim)] = vals
		}
	}
	return out
}

func toCaseStudyResponse(cs domain.CaseStudy) CaseStudyResponse {
	return CaseStudyResponse{
		ID:         cs.ID,
		Title:      cs.Title,
		SourceURL:  cs.SourceURL,
		SourceFile: cs.SourceFile,
		Summary:    cs.Summary,
		Content:    cs.Content,
		Categories: profileToMap(cs.Profile),
	}
}

func toQueryResponse(profile domain.Profile, ranked []domain.RankedResult) QueryResponse {
	results := make([]RankedCaseStudyResponse, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, RankedCaseStudyResponse{
			CaseStudyResponse: toCaseStudyResponse(r.CaseStudy),
			Score:             r.Score,
			Source:            string(r.Source),
		})
	}
	return QueryResponse{
		Profile: profileToMap(profile),
		Results: results,
		Total:   len(results),
	}
}
