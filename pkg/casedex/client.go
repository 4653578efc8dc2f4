package casedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/casedex/internal/db/redis"
	"github.com/kailas-cloud/casedex/internal/domain"
	"github.com/kailas-cloud/casedex/internal/metrics"
	"github.com/kailas-cloud/casedex/internal/repository/casestudy"
	"github.com/kailas-cloud/casedex/internal/repository/embcache"
	openaiTransport "github.com/kailas-cloud/casedex/internal/transport/openai"
	"github.com/kailas-cloud/casedex/internal/usecase/extract"
	ingestuc "github.com/kailas-cloud/casedex/internal/usecase/ingest"
	retrievaluc "github.com/kailas-cloud/casedex/internal/usecase/retrieval"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultThreshold        = 0.5
	defaultLimit            = 5
	defaultHNSWM            = 32
	defaultHNSWEFConstruct  = 400
)

// Internal interfaces so tests can substitute the services.
type retrievalUseCase interface {
	RelevantCaseStudies(ctx context.Context, question string) (retrievaluc.Result, error)
}

type ingestUseCase interface {
	Ingest(ctx context.Context, cs domain.CaseStudy) (string, error)
	Get(ctx context.Context, id string) (domain.CaseStudy, error)
	Delete(ctx context.Context, id string) error
}

// Client is the casedex SDK entry point.
type Client struct {
	store     *dbRedis.Store
	retrieval retrievalUseCase
	ingest    ingestUseCase
	tax       domain.Taxonomy
}

// New creates a casedex Client, connects to the store and ensures the
// search index. The provided context bounds the initial readiness check.
//
// Returns ErrEmbeddingVersionMismatch when the store was populated under
// a different embedding provider, model or dimensionality.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		similarityThreshold: defaultThreshold,
		limit:               defaultLimit,
		hnswM:               defaultHNSWM,
		hnswEFConstruct:     defaultHNSWEFConstruct,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("casedex: store address required (use WithRedis)")
	}
	if cfg.customEmbedder == nil && cfg.embedding == nil {
		return nil, errors.New("casedex: embedding provider required (use WithOpenAIEmbedding or WithEmbedder)")
	}
	if cfg.customGenerator == nil && cfg.chat == nil {
		return nil, errors.New("casedex: chat provider required (use WithOpenAIChat or WithGenerator)")
	}
	if cfg.vectorDimensions <= 0 {
		return nil, errors.New("casedex: vector dimensions required (use WithVectorDimensions)")
	}
	if cfg.customEmbedder != nil && cfg.embeddingVersion == "" {
		return nil, errors.New("casedex: custom embedder requires WithEmbeddingVersion")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("casedex: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("casedex: store not ready: %w", err)
	}

	client, err := wireClient(ctx, store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return client, nil
}

func wireClient(ctx context.Context, store *dbRedis.Store, cfg *clientConfig) (*Client, error) {
	tax := domain.DefaultTaxonomy()

	version := cfg.embeddingVersion
	provider, model := "custom", "custom"

	var embedder domain.Embedder
	if cfg.customEmbedder != nil {
		embedder = &embedderAdapter{inner: cfg.customEmbedder}
	} else {
		provider, model = "openai", cfg.embedding.model
		if version == "" {
			version = domain.EmbeddingVersion(provider, model, cfg.vectorDimensions)
		}
		embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.embedding.apiKey,
			BaseURL:    cfg.embedding.baseURL,
			Model:      model,
			Dimensions: cfg.vectorDimensions,
			Provider:   provider,
			Logger:     cfg.logger,
		})
	}
	if !cfg.cacheDisabled {
		embedder = embcache.New(embedder, store, version, metrics.EmbeddingCacheTotal, cfg.logger)
	}

	var generator extractGenerator
	chatProvider, chatModel := "custom", "custom"
	if cfg.customGenerator != nil {
		generator = cfg.customGenerator
	} else {
		chatProvider, chatModel = "openai", cfg.chat.model
		generator = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:   cfg.chat.apiKey,
			BaseURL:  cfg.chat.baseURL,
			Model:    chatModel,
			Provider: chatProvider,
			Logger:   cfg.logger,
		})
	}

	repo := casestudy.New(store, tax)
	if err := repo.EnsureIndex(ctx, casestudy.IndexParams{
		Dimensions:  cfg.vectorDimensions,
		M:           cfg.hnswM,
		EFConstruct: cfg.hnswEFConstruct,
		Version:     version,
	}); err != nil {
		return nil, fmt.Errorf("casedex: ensure index: %w", err)
	}

	extractSvc := extract.New(generator, tax, chatProvider, chatModel, cfg.logger)
	retrievalSvc := retrievaluc.New(extractSvc, embedder, repo, retrievaluc.Params{
		SimilarityThreshold: cfg.similarityThreshold,
		Limit:               cfg.limit,
		FallbackDisabled:    cfg.fallbackDisabled,
	}, cfg.logger)
	ingestSvc := ingestuc.New(repo, embedder, version, cfg.logger)

	return &Client{
		store:     store,
		retrieval: retrievalSvc,
		ingest:    ingestSvc,
		tax:       tax,
	}, nil
}

// extractGenerator mirrors the extraction service's provider contract.
type extractGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Close releases the store connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Query runs the full retrieval pipeline for a free-text business
// question and returns the extracted category profile with the ranked
// case studies it matched.
func (c *Client) Query(ctx context.Context, question string) (Result, error) {
	res, err := c.retrieval.RelevantCaseStudies(ctx, question)
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Profile:     profileToMap(res.Profile),
		CaseStudies: make([]RankedCaseStudy, 0, len(res.CaseStudies)),
	}
	for _, r := range res.CaseStudies {
		out.CaseStudies = append(out.CaseStudies, RankedCaseStudy{
			CaseStudy: fromDomain(r.CaseStudy),
			Score:     r.Score,
			Source:    string(r.Source),
		})
	}
	return out, nil
}

// Ingest validates, embeds and stores a case study, returning the
// assigned ID. An empty ID gets a generated one.
func (c *Client) Ingest(ctx context.Context, cs CaseStudy) (string, error) {
	return c.ingest.Ingest(ctx, domain.CaseStudy{
		ID:         cs.ID,
		Title:      cs.Title,
		SourceURL:  cs.SourceURL,
		SourceFile: cs.SourceFile,
		Summary:    cs.Summary,
		Content:    cs.Content,
		Profile:    domain.NewProfile(c.tax, cs.Categories),
	})
}

// Get returns a stored case study by ID.
func (c *Client) Get(ctx context.Context, id string) (CaseStudy, error) {
	cs, err := c.ingest.Get(ctx, id)
	if err != nil {
		return CaseStudy{}, err
	}
	return fromDomain(cs), nil
}

// Delete removes a stored case study by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.ingest.Delete(ctx, id)
}

func fromDomain(cs domain.CaseStudy) CaseStudy {
	return CaseStudy{
		ID:         cs.ID,
		Title:      cs.Title,
		SourceURL:  cs.SourceURL,
		SourceFile: cs.SourceFile,
		Summary:    cs.Summary,
		Content:    cs.Content,
		Categories: profileToMap(cs.Profile),
	}
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

// embedderAdapter wraps the public Embedder to satisfy domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Vector,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
