package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// TagMatch is a single field/value tag condition.
type TagMatch struct {
	Field string
	Value string
}

// TagQuery matches documents where ANY of the tag conditions holds
// (a RediSearch should-group), sorted by SortBy for stable ordering.
type TagQuery struct {
	IndexName    string
	Any          []TagMatch
	Limit        int
	SortBy       string
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
