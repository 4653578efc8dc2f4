package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/casedex/internal/domain"
)

// repository is the consumer interface over the case study store (ISP).
type repository interface {
	Put(ctx context.Context, cs *domain.CaseStudy, vector []float32, version string) error
	Get(ctx context.Context, id string) (domain.CaseStudy, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the case study corpus: it embeds each record's category
// profile and persists both together, so every stored case study is
// immediately searchable by vector and by attribute.
type Service struct {
	repo     repository
	embedder domain.Embedder
	version  string
	logger   *zap.Logger
}

// New creates an ingest service. version is the embedding version stamp
// written alongside each record.
func New(repo repository, embedder domain.Embedder, version string, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		version:  version,
		logger:   logger,
	}
}

// Ingest validates, embeds and stores a case study. A missing ID gets a
// generated one; the assigned ID is returned either way.
func (s *Service) Ingest(ctx context.Context, cs domain.CaseStudy) (string, error) {
	if strings.TrimSpace(cs.Title) == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(cs.Content) == "" {
		return "", fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if cs.Profile.IsEmpty() {
		return "", fmt.Errorf("%w: category profile must select at least one value", domain.ErrInvalidInput)
	}

	if cs.ID == "" {
		cs.ID = uuid.NewString()
	}

	emb, err := s.embedder.Embed(ctx, cs.Profile.CanonicalText())
	if err != nil {
		return "", fmt.Errorf("embed case study profile: %w", err)
	}

	if err := s.repo.Put(ctx, &cs, emb.Embedding, s.version); err != nil {
		return "", err
	}

	s.logger.Info("Case study ingested",
		zap.String("id", cs.ID),
		zap.String("title", cs.Title),
		zap.Int("total_tokens", emb.TotalTokens))

	return cs.ID, nil
}

// Get returns a stored case study by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.CaseStudy, error) {
	if id == "" {
		return domain.CaseStudy{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a stored case study by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
