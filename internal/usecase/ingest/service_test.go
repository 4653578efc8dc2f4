package ingest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/casedex/internal/domain"
)

type mockRepo struct {
	putFn    func(ctx context.Context, cs *domain.CaseStudy, vector []float32, version string) error
	getFn    func(ctx context.Context, id string) (domain.CaseStudy, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockRepo) Put(ctx context.Context, cs *domain.CaseStudy, vector []float32, version string) error {
	if m.putFn != nil {
		return m.putFn(ctx, cs, vector, version)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.CaseStudy, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.CaseStudy{}, domain.ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	text   string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.text = text
	return m.result, m.err
}

func validCase() domain.CaseStudy {
	return domain.CaseStudy{
		Title:   "Zara fast fashion",
		Content: "Vertical integration case study text.",
		Profile: domain.NewProfile(domain.DefaultTaxonomy(), map[string][]string{
			"industry":        {"Retail"},
			"core_strategies": {"Lean Operations"},
		}),
	}
}

func TestIngest_GeneratesID(t *testing.T) {
	var stored *domain.CaseStudy
	var storedVersion string
	repo := &mockRepo{
		putFn: func(_ context.Context, cs *domain.CaseStudy, _ []float32, version string) error {
			stored = cs
			storedVersion = version
			return nil
		},
	}
	em := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(repo, em, "openai/bge-m3@1024", zap.NewNop())

	id, err := svc.Ingest(context.Background(), validCase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if stored == nil || stored.ID != id {
		t.Errorf("stored id mismatch: %+v", stored)
	}
	if storedVersion != "openai/bge-m3@1024" {
		t.Errorf("unexpected version stamp: %q", storedVersion)
	}
}

func TestIngest_KeepsExplicitID(t *testing.T) {
	repo := &mockRepo{}
	em := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(repo, em, "v", zap.NewNop())

	cs := validCase()
	cs.ID = "netflix-2007"
	id, err := svc.Ingest(context.Background(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "netflix-2007" {
		t.Errorf("expected explicit id preserved, got %q", id)
	}
}

func TestIngest_EmbedsCanonicalText(t *testing.T) {
	em := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(&mockRepo{}, em, "v", zap.NewNop())

	if _, err := svc.Ingest(context.Background(), validCase()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "industry: Retail. core strategies: Lean Operations"
	if em.text != want {
		t.Errorf("embedded text = %q, want %q", em.text, want)
	}
}

func TestIngest_Validation(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{}, "v", zap.NewNop())

	noTitle := validCase()
	noTitle.Title = " "
	if _, err := svc.Ingest(context.Background(), noTitle); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing title: expected ErrInvalidInput, got %v", err)
	}

	noContent := validCase()
	noContent.Content = ""
	if _, err := svc.Ingest(context.Background(), noContent); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing content: expected ErrInvalidInput, got %v", err)
	}

	noProfile := validCase()
	noProfile.Profile = domain.EmptyProfile(domain.DefaultTaxonomy())
	if _, err := svc.Ingest(context.Background(), noProfile); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty profile: expected ErrInvalidInput, got %v", err)
	}
}

func TestIngest_EmbedderErrorAborts(t *testing.T) {
	putCalled := false
	repo := &mockRepo{
		putFn: func(_ context.Context, _ *domain.CaseStudy, _ []float32, _ string) error {
			putCalled = true
			return nil
		},
	}
	svc := New(repo, &mockEmbedder{err: domain.ErrServiceUnavailable}, "v", zap.NewNop())

	_, err := svc.Ingest(context.Background(), validCase())
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if putCalled {
		t.Error("nothing may be stored without an embedding")
	}
}

func TestGetDelete_RequireID(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{}, "v", zap.NewNop())

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Delete(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
