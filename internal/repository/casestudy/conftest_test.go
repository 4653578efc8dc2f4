package casestudy

import (
	"context"

	"github.com/kailas-cloud/casedex/internal/db"
)

// mockStore implements the store interface with overridable behavior per test.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetallFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	getFn         func(ctx context.Context, key string) ([]byte, error)
	setFn         func(ctx context.Context, key string, value []byte) error
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchTagsFn  func(ctx context.Context, q *db.TagQuery) (*db.SearchResult, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFn(ctx, key, fields)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetallFn(ctx, key)
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	return m.delFn(ctx, key)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.existsFn(ctx, key)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.getFn(ctx, key)
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	return m.setFn(ctx, key, value)
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	return m.createIndexFn(ctx, def)
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	return m.indexExistsFn(ctx, name)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	return m.searchKNNFn(ctx, q)
}

func (m *mockStore) SearchTags(ctx context.Context, q *db.TagQuery) (*db.SearchResult, error) {
	return m.searchTagsFn(ctx, q)
}
