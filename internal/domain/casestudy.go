package domain

// CaseStudy is a persisted reference business scenario used as retrieved
// context for advice generation. Read-only from the retrieval core's
// perspective; created by the ingest path.
type CaseStudy struct {
	ID         string
	Title      string
	SourceURL  string
	SourceFile string
	Summary    string
	Content    string
	Profile    Profile
}

// ResultSource tells how a ranked result was produced.
type ResultSource string

const (
	// SourceVector marks results from the similarity ranker.
	SourceVector ResultSource = "vector"
	// SourceFallback marks results from attribute fallback matching.
	SourceFallback ResultSource = "fallback"
)

// RankedResult is a case study augmented with its retrieval score.
// Vector-sourced results carry cosine similarity rescaled to [0,1];
// fallback-sourced results carry the sentinel score 0.
type RankedResult struct {
	CaseStudy
	Score  float64
	Source ResultSource
}
