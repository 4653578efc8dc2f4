package domain

import "errors"

// KeyPrefix namespaces every key this service writes to the store.
const KeyPrefix = "casedex:"

var (
	// ErrNotFound signals a missing case study.
	ErrNotFound = errors.New("case study not found")
	// ErrInvalidInput signals a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrServiceUnavailable signals a model or embedding provider failure.
	// Callers distinguish "the brain is down" from store failures.
	ErrServiceUnavailable = errors.New("model service unavailable")
	// ErrStoreUnavailable signals a case-study store query failure,
	// distinct from "truly no matches".
	ErrStoreUnavailable = errors.New("case study store unavailable")
	// ErrVectorDimMismatch signals an embedding of unexpected dimensionality.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingVersionMismatch signals that stored vectors were produced
	// under a different embedding model than the one configured.
	ErrEmbeddingVersionMismatch = errors.New("embedding version mismatch")
)
