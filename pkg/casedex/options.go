package casedex

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type openAIConfig struct {
	apiKey  string
	baseURL string
	model   string
}

type clientConfig struct {
	addrs    []string
	password string

	embedding        *openAIConfig
	chat             *openAIConfig
	customEmbedder   Embedder
	customGenerator  Generator
	embeddingVersion string

	vectorDimensions int
	hnswM            int
	hnswEFConstruct  int

	similarityThreshold float64
	limit               int
	fallbackDisabled    bool
	cacheDisabled       bool

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithOpenAIEmbedding configures the built-in OpenAI-compatible embedding
// provider. Provider, model and dimensions together form the embedding
// version stamp; changing any of them requires reingesting the corpus.
func WithOpenAIEmbedding(apiKey, baseURL, model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedding = &openAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
		c.vectorDimensions = dimensions
	})
}

// WithOpenAIChat configures the built-in OpenAI-compatible chat provider
// used for category extraction.
func WithOpenAIChat(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.chat = &openAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
	})
}

// WithEmbedder sets a custom embedding provider. Requires
// WithEmbeddingVersion and WithVectorDimensions.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.customEmbedder = e
	})
}

// WithGenerator sets a custom chat completion provider.
func WithGenerator(g Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.customGenerator = g
	})
}

// WithEmbeddingVersion overrides the embedding version stamp. Only needed
// with a custom embedder; the OpenAI option derives the stamp itself.
func WithEmbeddingVersion(version string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingVersion = version
	})
}

// WithVectorDimensions sets the embedding dimensionality for a custom
// embedder.
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorDimensions = dim
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithRetrieval tunes the ranking parameters. Threshold is the strict
// similarity lower bound, limit the maximum result count.
// Defaults: threshold 0.5, limit 5.
func WithRetrieval(threshold float64, limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.similarityThreshold = threshold
		c.limit = limit
	})
}

// WithoutFallback disables attribute fallback matching; queries return
// vector results only.
func WithoutFallback() Option {
	return optionFunc(func(c *clientConfig) {
		c.fallbackDisabled = true
	})
}

// WithoutEmbeddingCache disables the store-backed embedding cache.
func WithoutEmbeddingCache() Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDisabled = true
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
