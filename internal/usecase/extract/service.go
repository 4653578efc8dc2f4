package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/casedex/internal/domain"
	"github.com/kailas-cloud/casedex/internal/metrics"
)

// generator is the consumer interface for the chat model (ISP).
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service turns a free-text business question into a validated category
// profile by prompting a chat model and parsing its answer tolerantly.
//
// Failure semantics are asymmetric on purpose: a model transport error is
// surfaced (the caller may abort), while unparseable model output degrades
// to an empty profile so one malformed answer never kills a request.
type Service struct {
	gen      generator
	tax      domain.Taxonomy
	provider string
	model    string
	logger   *zap.Logger
}

// New creates an extraction service.
func New(gen generator, tax domain.Taxonomy, provider, model string, logger *zap.Logger) *Service {
	return &Service{
		gen:      gen,
		tax:      tax,
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Extract categorizes a business question along every taxonomy dimension.
// No length invariant on the question: an empty or nonsense question flows
// through the model and yields an empty profile, not an error.
func (s *Service) Extract(ctx context.Context, question string) (domain.Profile, error) {
	start := time.Now()

	raw, err := s.gen.Generate(ctx, s.buildPrompt(question))
	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues(s.provider, s.model, "error").Inc()
		return domain.Profile{}, fmt.Errorf("extract categories: %w", err)
	}

	metrics.ExtractionRequestDuration.WithLabelValues(s.provider, s.model).Observe(time.Since(start).Seconds())

	profile, ok := s.parseResponse(raw)
	if !ok {
		metrics.ExtractionRequestsTotal.WithLabelValues(s.provider, s.model, "parse_failed").Inc()
		s.logger.Warn("Category extraction output not parseable, degrading to empty profile",
			zap.Int("response_len", len(raw)))
		return domain.EmptyProfile(s.tax), nil
	}

	metrics.ExtractionRequestsTotal.WithLabelValues(s.provider, s.model, "success").Inc()
	return profile, nil
}

// buildPrompt renders the categorization instruction with the full allowed
// value list per dimension. The model must pick from these lists only;
// anything else is dropped during profile validation anyway.
func (s *Service) buildPrompt(question string) string {
	var b strings.Builder

	b.WriteString("Analyze the following business question and categorize the business it describes.\n")
	b.WriteString("For each category below, select up to 3 most relevant options from its list.\n")
	b.WriteString("Use an empty list for categories the question gives no evidence for.\n\n")
	b.WriteString("Categories:\n")

	for _, dim := range s.tax.Dimensions() {
		b.WriteString("- ")
		b.WriteString(string(dim))
		b.WriteString(": ")
		b.WriteString(strings.Join(s.tax.ValuesFor(dim), ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nRespond with a single JSON object whose keys are the category names ")
	b.WriteString("and whose values are lists of selected options. No other text.")

	return b.String()
}

// parseResponse extracts and decodes the model's JSON answer.
// Values may arrive as a list or a bare string per dimension.
func (s *Service) parseResponse(raw string) (domain.Profile, bool) {
	obj, found := extractJSONObject(raw)
	if !found {
		return domain.Profile{}, false
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
		return domain.Profile{}, false
	}

	selection := make(map[string][]string, len(decoded))
	for dim, v := range decoded {
		switch vv := v.(type) {
		case string:
			selection[dim] = []string{vv}
		case []any:
			vals := make([]string, 0, len(vv))
			for _, item := range vv {
				if str, ok := item.(string); ok {
					vals = append(vals, str)
				}
			}
			selection[dim] = vals
		}
	}

	return domain.NewProfile(s.tax, selection), true
}
