package casedex

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/casedex/internal/domain"
	retrievaluc "github.com/kailas-cloud/casedex/internal/usecase/retrieval"
)

// --- Mocks ---

type mockRetrieval struct {
	fn func(ctx context.Context, question string) (retrievaluc.Result, error)
}

func (m *mockRetrieval) RelevantCaseStudies(ctx context.Context, question string) (retrievaluc.Result, error) {
	return m.fn(ctx, question)
}

type mockIngest struct {
	ingestFn func(ctx context.Context, cs domain.CaseStudy) (string, error)
	getFn    func(ctx context.Context, id string) (domain.CaseStudy, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockIngest) Ingest(ctx context.Context, cs domain.CaseStudy) (string, error) {
	return m.ingestFn(ctx, cs)
}

func (m *mockIngest) Get(ctx context.Context, id string) (domain.CaseStudy, error) {
	return m.getFn(ctx, id)
}

func (m *mockIngest) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func testClient(ret retrievalUseCase, ing ingestUseCase) *Client {
	return &Client{retrieval: ret, ingest: ing, tax: domain.DefaultTaxonomy()}
}

// --- Option validation ---

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil || !strings.Contains(err.Error(), "store address required") {
		t.Errorf("expected address error, got %v", err)
	}
}

func TestNew_RequiresEmbeddingProvider(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""))
	if err == nil || !strings.Contains(err.Error(), "embedding provider required") {
		t.Errorf("expected embedding provider error, got %v", err)
	}
}

func TestNew_RequiresChatProvider(t *testing.T) {
	_, err := New(context.Background(),
		WithRedis("localhost:6379", ""),
		WithOpenAIEmbedding("k", "", "bge-m3", 1024),
	)
	if err == nil || !strings.Contains(err.Error(), "chat provider required") {
		t.Errorf("expected chat provider error, got %v", err)
	}
}

func TestNew_CustomEmbedderRequiresVersion(t *testing.T) {
	_, err := New(context.Background(),
		WithRedis("localhost:6379", ""),
		WithEmbedder(&staticEmbedder{}),
		WithGenerator(&staticGenerator{}),
		WithVectorDimensions(4),
	)
	if err == nil || !strings.Contains(err.Error(), "WithEmbeddingVersion") {
		t.Errorf("expected version requirement error, got %v", err)
	}
}

func TestNew_CustomEmbedderRequiresDimensions(t *testing.T) {
	_, err := New(context.Background(),
		WithRedis("localhost:6379", ""),
		WithEmbedder(&staticEmbedder{}),
		WithGenerator(&staticGenerator{}),
		WithEmbeddingVersion("custom/model@4"),
	)
	if err == nil || !strings.Contains(err.Error(), "vector dimensions required") {
		t.Errorf("expected dimensions error, got %v", err)
	}
}

type staticEmbedder struct{}

func (staticEmbedder) Embed(_ context.Context, _ string) (Embedding, error) {
	return Embedding{Vector: []float32{0.1}}, nil
}

type staticGenerator struct{}

func (staticGenerator) Generate(_ context.Context, _ string) (string, error) {
	return "{}", nil
}

// --- Query ---

func TestQuery_ConvertsResult(t *testing.T) {
	tax := domain.DefaultTaxonomy()
	ret := &mockRetrieval{fn: func(_ context.Context, question string) (retrievaluc.Result, error) {
		if question != "churn question" {
			t.Errorf("unexpected question: %q", question)
		}
		return retrievaluc.Result{
			Profile: domain.NewProfile(tax, map[string][]string{
				"industry":       {"Technology"},
				"business_model": {"SaaS"},
			}),
			CaseStudies: []domain.RankedResult{
				{
					CaseStudy: domain.CaseStudy{
						ID:    "slack-2015",
						Title: "Slack retention",
						Profile: domain.NewProfile(tax, map[string][]string{
							"key_challenges": {"Customer Retention"},
						}),
					},
					Score:  0.87,
					Source: domain.SourceVector,
				},
				{
					CaseStudy: domain.CaseStudy{ID: "basecamp", Title: "Basecamp"},
					Score:     0,
					Source:    domain.SourceFallback,
				},
			},
		}, nil
	}}
	c := testClient(ret, nil)

	res, err := c.Query(context.Background(), "churn question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.CaseStudies) != 2 {
		t.Fatalf("expected 2 case studies, got %d", len(res.CaseStudies))
	}
	first := res.CaseStudies[0]
	if first.ID != "slack-2015" || first.Score != 0.87 || first.Source != "vector" {
		t.Errorf("unexpected first result: %+v", first)
	}
	if vals := first.Categories["key_challenges"]; len(vals) != 1 || vals[0] != "Customer Retention" {
		t.Errorf("unexpected categories: %+v", first.Categories)
	}
	if res.CaseStudies[1].Source != "fallback" {
		t.Errorf("unexpected second source: %q", res.CaseStudies[1].Source)
	}
	if vals := res.Profile["business_model"]; len(vals) != 1 || vals[0] != "SaaS" {
		t.Errorf("unexpected profile: %+v", res.Profile)
	}
}

func TestQuery_PropagatesError(t *testing.T) {
	ret := &mockRetrieval{fn: func(context.Context, string) (retrievaluc.Result, error) {
		return retrievaluc.Result{}, ErrServiceUnavailable
	}}
	c := testClient(ret, nil)

	_, err := c.Query(context.Background(), "q")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

// --- Ingest / Get / Delete ---

func TestIngest_ConvertsAndFiltersCategories(t *testing.T) {
	var got domain.CaseStudy
	ing := &mockIngest{ingestFn: func(_ context.Context, cs domain.CaseStudy) (string, error) {
		got = cs
		return "assigned", nil
	}}
	c := testClient(nil, ing)

	id, err := c.Ingest(context.Background(), CaseStudy{
		Title:   "Zara",
		Content: "text",
		Categories: map[string][]string{
			"industry":  {"Retail", "Not An Industry"},
			"undefined": {"whatever"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "assigned" {
		t.Errorf("expected assigned id, got %q", id)
	}
	if vals := got.Profile.Values("industry"); len(vals) != 1 || vals[0] != "Retail" {
		t.Errorf("out-of-taxonomy values not dropped: %v", vals)
	}
}

func TestGet_ConvertsBack(t *testing.T) {
	tax := domain.DefaultTaxonomy()
	ing := &mockIngest{getFn: func(_ context.Context, id string) (domain.CaseStudy, error) {
		return domain.CaseStudy{
			ID:    id,
			Title: "Netflix",
			Profile: domain.NewProfile(tax, map[string][]string{
				"growth_stage": {"Scaling"},
			}),
		}, nil
	}}
	c := testClient(nil, ing)

	cs, err := c.Get(context.Background(), "netflix-2007")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs.ID != "netflix-2007" || cs.Title != "Netflix" {
		t.Errorf("unexpected case study: %+v", cs)
	}
	if vals := cs.Categories["growth_stage"]; len(vals) != 1 || vals[0] != "Scaling" {
		t.Errorf("unexpected categories: %+v", cs.Categories)
	}
}

func TestGet_NotFound(t *testing.T) {
	ing := &mockIngest{getFn: func(context.Context, string) (domain.CaseStudy, error) {
		return domain.CaseStudy{}, ErrNotFound
	}}
	c := testClient(nil, ing)

	if _, err := c.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Propagates(t *testing.T) {
	deleted := ""
	ing := &mockIngest{deleteFn: func(_ context.Context, id string) error {
		deleted = id
		return nil
	}}
	c := testClient(nil, ing)

	if err := c.Delete(context.Background(), "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "old" {
		t.Errorf("expected delete of old, got %q", deleted)
	}
}
