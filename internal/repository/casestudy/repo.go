package casestudy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/casedex/internal/db"
	"github.com/kailas-cloud/casedex/internal/domain"
)

// Keys under the service namespace. The version key pins which embedding
// model produced the vectors in the index.
const (
	keyPrefix  = domain.KeyPrefix + "case:"
	indexName  = domain.KeyPrefix + "case:idx"
	versionKey = domain.KeyPrefix + "case:embedding_version"
)

// store is the consumer interface for case studies (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchTags(ctx context.Context, q *db.TagQuery) (*db.SearchResult, error)
}

// IndexParams describes the vector index this repository maintains.
type IndexParams struct {
	Dimensions  int
	M           int
	EFConstruct int
	// Version identifies the embedding model, e.g. "openai/bge-m3@1024".
	Version string
}

// Repo persists case studies as Redis hashes under an FT index.
type Repo struct {
	store store
	tax   domain.Taxonomy
}

// New creates a case study repository.
func New(s store, tax domain.Taxonomy) *Repo {
	return &Repo{store: s, tax: tax}
}

// EnsureIndex creates the search index if absent and pins the embedding
// version. A store already stamped with a different version is refused:
// vectors from different models are not comparable, so searching across
// them would silently return garbage.
func (r *Repo) EnsureIndex(ctx context.Context, p IndexParams) error {
	stored, err := r.store.Get(ctx, versionKey)
	switch {
	case err == nil:
		if string(stored) != p.Version {
			return fmt.Errorf("%w: store has %q, configured %q (re-ingest required)",
				domain.ErrEmbeddingVersionMismatch, stored, p.Version)
		}
	case errors.Is(err, db.ErrKeyNotFound):
		// fresh store, stamped below
	default:
		return fmt.Errorf("%w: read embedding version: %v", domain.ErrStoreUnavailable, err)
	}

	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("%w: check index: %v", domain.ErrStoreUnavailable, err)
	}
	if !exists {
		if err := r.store.CreateIndex(ctx, r.indexDefinition(p)); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("%w: create index: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if err := r.store.Set(ctx, versionKey, []byte(p.Version)); err != nil {
		return fmt.Errorf("%w: stamp embedding version: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Put creates or updates a case study together with its category embedding.
func (r *Repo) Put(ctx context.Context, cs *domain.CaseStudy, vector []float32, version string) error {
	fields := buildHashFields(cs, vector, version)
	if err := r.store.HSet(ctx, caseKey(cs.ID), fields); err != nil {
		return fmt.Errorf("%w: hset %s: %v", domain.ErrStoreUnavailable, cs.ID, err)
	}
	return nil
}

// Get returns a case study by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.CaseStudy, error) {
	m, err := r.store.HGetAll(ctx, caseKey(id))
	if err != nil {
		return domain.CaseStudy{}, fmt.Errorf("%w: hgetall %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	// HGETALL on a missing key yields an empty map, not an error.
	if len(m) == 0 {
		return domain.CaseStudy{}, domain.ErrNotFound
	}
	return parseHashFields(id, m, r.tax), nil
}

// Delete removes a case study.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := caseKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: check exists %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: del %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	return nil
}

// NearestByCategoryEmbedding returns up to k case studies by vector
// similarity, scored with cosine similarity rescaled to [0,1].
func (r *Repo) NearestByCategoryEmbedding(ctx context.Context, vector []float32, k int) ([]domain.RankedResult, error) {
	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            k,
		ReturnFields: r.returnFields(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: knn search: %v", domain.ErrStoreUnavailable, err)
	}

	out := make([]domain.RankedResult, 0, len(result.Entries))
	for _, entry := range result.Entries {
		out = append(out, domain.RankedResult{
			CaseStudy: parseHashFields(idFromKey(entry.Key), entry.Fields, r.tax),
			Score:     entry.Score,
			Source:    domain.SourceVector,
		})
	}
	return out, nil
}

// FilterByCategoryFields returns up to limit case studies sharing at least
// one profile value in any dimension, ordered by ID for stable output.
// These carry the sentinel score 0: attribute overlap is not similarity.
func (r *Repo) FilterByCategoryFields(ctx context.Context, p domain.Profile, limit int) ([]domain.RankedResult, error) {
	var any []db.TagMatch
	for _, dim := range r.tax.Dimensions() {
		for _, v := range p.Values(dim) {
			any = append(any, db.TagMatch{Field: string(dim), Value: v})
		}
	}
	if len(any) == 0 {
		return nil, nil
	}

	result, err := r.store.SearchTags(ctx, &db.TagQuery{
		IndexName:    indexName,
		Any:          any,
		Limit:        limit,
		SortBy:       fieldID,
		ReturnFields: r.returnFields(false),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: tag search: %v", domain.ErrStoreUnavailable, err)
	}

	out := make([]domain.RankedResult, 0, len(result.Entries))
	for _, entry := range result.Entries {
		out = append(out, domain.RankedResult{
			CaseStudy: parseHashFields(idFromKey(entry.Key), entry.Fields, r.tax),
			Score:     0,
			Source:    domain.SourceFallback,
		})
	}
	return out, nil
}

func (r *Repo) returnFields(withScore bool) []string {
	fields := []string{fieldID, fieldTitle, fieldSummary, fieldContent, fieldSourceURL, fieldSourceFile}
	for _, dim := range r.tax.Dimensions() {
		fields = append(fields, string(dim))
	}
	if withScore {
		fields = append(fields, "__vector_score")
	}
	return fields
}

func (r *Repo) indexDefinition(p IndexParams) *db.IndexDefinition {
	fields := []db.IndexField{
		{Name: fieldID, Type: db.IndexFieldTag, TagSortable: true},
	}
	for _, dim := range r.tax.Dimensions() {
		fields = append(fields, db.IndexField{
			Name:         string(dim),
			Type:         db.IndexFieldTag,
			TagSeparator: tagSeparator,
		})
	}
	fields = append(fields, db.IndexField{
		Name:              fieldVector,
		Type:              db.IndexFieldVector,
		VectorDim:         p.Dimensions,
		VectorDistance:    db.DistanceCosine,
		VectorM:           p.M,
		VectorEFConstruct: p.EFConstruct,
	})

	return &db.IndexDefinition{
		Name:     indexName,
		Prefixes: []string{keyPrefix},
		Fields:   fields,
	}
}

func caseKey(id string) string {
	return keyPrefix + id
}

func idFromKey(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
