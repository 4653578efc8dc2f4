package casedex

import "context"

// CaseStudy is a reference business scenario in the corpus. Categories
// maps taxonomy dimensions to selected values; values outside the
// taxonomy are dropped during ingest, not rejected.
type CaseStudy struct {
	ID         string
	Title      string
	SourceURL  string
	SourceFile string
	Summary    string
	Content    string
	Categories map[string][]string
}

// RankedCaseStudy is a case study with its retrieval score. Vector
// results carry similarity in [0,1]; fallback results carry 0 and
// Source "fallback".
type RankedCaseStudy struct {
	CaseStudy
	Score  float64
	Source string
}

// Result is the outcome of one Query call.
type Result struct {
	// Profile is the category profile extracted from the question.
	Profile map[string][]string
	// CaseStudies is ordered best-first: vector matches by descending
	// similarity, then fallback matches.
	CaseStudies []RankedCaseStudy
}

// Embedding is the result of one embedding call.
type Embedding struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder is a custom text vectorization provider. Implement it to use
// a provider other than the built-in OpenAI-compatible one.
type Embedder interface {
	Embed(ctx context.Context, text string) (Embedding, error)
}

// Generator is a custom chat completion provider used for category
// extraction.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
