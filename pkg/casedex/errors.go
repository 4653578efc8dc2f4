package casedex

import "github.com/kailas-cloud/casedex/internal/domain"

// Sentinel errors surfaced by the client. Match with errors.Is.
var (
	ErrNotFound                 = domain.ErrNotFound
	ErrInvalidInput             = domain.ErrInvalidInput
	ErrServiceUnavailable       = domain.ErrServiceUnavailable
	ErrStoreUnavailable         = domain.ErrStoreUnavailable
	ErrVectorDimMismatch        = domain.ErrVectorDimMismatch
	ErrEmbeddingVersionMismatch = domain.ErrEmbeddingVersionMismatch
)
