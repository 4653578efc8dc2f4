package domain

import (
	"context"
	"fmt"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingVersion renders the provider/model/dimensions triple into the
// stamp stored alongside every case-study vector. Query and stored vectors
// are only comparable when produced under the same stamp; the store refuses
// to serve a mismatched index instead of silently computing meaningless
// similarity scores.
func EmbeddingVersion(provider, model string, dimensions int) string {
	return fmt.Sprintf("%s/%s@%d", provider, model, dimensions)
}
