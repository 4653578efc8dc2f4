package domain

import "context"

// Generator is the language-model capability consumed by the category
// extractor. One prompt in, one completion out; no streaming at this layer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
