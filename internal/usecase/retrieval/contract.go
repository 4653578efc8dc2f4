package retrieval

import (
	"context"

	"github.com/kailas-cloud/casedex/internal/domain"
)

// Extractor turns a free-text question into a category profile.
type Extractor interface {
	Extract(ctx context.Context, question string) (domain.Profile, error)
}

// Repository is the consumer interface over the case study store (ISP).
type Repository interface {
	NearestByCategoryEmbedding(ctx context.Context, vector []float32, k int) ([]domain.RankedResult, error)
	FilterByCategoryFields(ctx context.Context, p domain.Profile, limit int) ([]domain.RankedResult, error)
}
