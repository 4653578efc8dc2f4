package retrieval

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/casedex/internal/domain"
	"github.com/kailas-cloud/casedex/internal/metrics"
)

// Params are the tunable retrieval knobs. Defaults live in config, not here.
type Params struct {
	// SimilarityThreshold excludes vector results at or below this value
	// (strict greater-than).
	SimilarityThreshold float64
	// Limit caps the total result count, vector and fallback combined.
	Limit int
	// FallbackDisabled turns off attribute top-up matching entirely.
	FallbackDisabled bool
}

// Result is the outcome of one retrieval call: the extracted profile and
// the ranked case studies it matched.
type Result struct {
	Profile     domain.Profile
	CaseStudies []domain.RankedResult
}

// Service composes extraction, embedding, vector ranking and attribute
// fallback into the single retrieval operation the transport exposes.
type Service struct {
	extractor Extractor
	embedder  domain.Embedder
	repo      Repository
	params    Params
	logger    *zap.Logger
}

// New creates a retrieval service.
func New(extractor Extractor, embedder domain.Embedder, repo Repository, params Params, logger *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		embedder:  embedder,
		repo:      repo,
		params:    params,
		logger:    logger,
	}
}

// RelevantCaseStudies returns up to Limit case studies for a free-text
// business question.
//
// Extraction, embedding and the vector query abort the whole call on
// failure: without a profile and a query vector any result would be
// garbage. Only the fallback step degrades gracefully, returning the
// vector results alone, because a short list beats no list.
func (s *Service) RelevantCaseStudies(ctx context.Context, question string) (Result, error) {
	profile, err := s.extractor.Extract(ctx, question)
	if err != nil {
		return Result{}, err
	}

	emb, err := s.embedder.Embed(ctx, profile.CanonicalText())
	if err != nil {
		return Result{}, fmt.Errorf("embed profile: %w", err)
	}

	candidates, err := s.repo.NearestByCategoryEmbedding(ctx, emb.Embedding, s.params.Limit)
	if err != nil {
		return Result{}, err
	}

	ranked := rank(candidates, s.params.SimilarityThreshold, s.params.Limit)
	metrics.RetrievalResultsTotal.WithLabelValues(string(domain.SourceVector)).Add(float64(len(ranked)))

	if len(ranked) < s.params.Limit && !s.params.FallbackDisabled {
		ranked = s.topUp(ctx, profile, ranked)
	}

	return Result{Profile: profile, CaseStudies: ranked}, nil
}

// topUp appends attribute-matched case studies after the vector results,
// skipping ids the ranker already returned. A fallback failure is logged
// and swallowed.
func (s *Service) topUp(ctx context.Context, profile domain.Profile, ranked []domain.RankedResult) []domain.RankedResult {
	need := s.params.Limit - len(ranked)

	exclude := make(map[string]struct{}, len(ranked))
	for _, r := range ranked {
		exclude[r.ID] = struct{}{}
	}

	// Ask for extra rows so client-side exclusion can still fill the gap.
	matches, err := s.repo.FilterByCategoryFields(ctx, profile, need+len(exclude))
	if err != nil {
		metrics.RetrievalFallbackTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Attribute fallback failed, returning vector results only", zap.Error(err))
		return ranked
	}

	added := 0
	for _, m := range matches {
		if added == need {
			break
		}
		if _, dup := exclude[m.ID]; dup {
			continue
		}
		exclude[m.ID] = struct{}{}
		ranked = append(ranked, m)
		added++
	}

	if added > 0 {
		metrics.RetrievalFallbackTotal.WithLabelValues("filled").Inc()
		metrics.RetrievalResultsTotal.WithLabelValues(string(domain.SourceFallback)).Add(float64(added))
	} else {
		metrics.RetrievalFallbackTotal.WithLabelValues("empty").Inc()
	}

	return ranked
}

// rank applies the similarity threshold (strict greater-than) and orders
// descending by score, ties broken by ascending id so ranking is
// reproducible across runs.
func rank(candidates []domain.RankedResult, threshold float64, limit int) []domain.RankedResult {
	kept := make([]domain.RankedResult, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > threshold {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].ID < kept[j].ID
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
