package osdex

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// TotalRelation qualifies the total hit count of a Result.
type TotalRelation string

const (
	// TotalExact means Total is the exact hit count.
	TotalExact TotalRelation = "eq"
	// TotalLowerBound means Total is a lower bound on the hit count.
	TotalLowerBound TotalRelation = "gte"
)

// Result is the typed envelope of one search round-trip. Hits keep the
// engine's ranking order (descending relevance score); nothing is
// re-sorted client-side.
type Result struct {
	Total    int64
	Relation TotalRelation
	Hits     []Hit
}

// Hit is a single ranked document.
type Hit struct {
	ID        string
	Score     float64
	Source    json.RawMessage // raw document payload, nil when absent
	highlight map[string][]string
}

// Highlights returns the highlighted fragments per field. A hit without
// highlight data yields an empty map, never nil.
func (h Hit) Highlights() map[string][]string {
	if h.highlight == nil {
		return map[string][]string{}
	}
	return h.highlight
}

// Documents projects the hit sequence into its payloads, preserving hit
// order and count exactly: a hit with an absent payload contributes a
// nil placeholder at its position, never a gap.
func (r *Result) Documents() []json.RawMessage {
	docs := make([]json.RawMessage, len(r.Hits))
	for i := range r.Hits {
		docs[i] = r.Hits[i].Source
	}
	return docs
}

// HighlightSpec requests marked-up fragments for one field.
type HighlightSpec struct {
	Field   string
	PreTag  string
	PostTag string
}

// SearchOptions configures a search execution.
type SearchOptions struct {
	// Size limits the number of returned hits. Zero keeps the engine
	// default. Ignored for KNN queries, which always request k hits.
	Size int
	// Highlight, when set, requests highlighted fragments.
	Highlight *HighlightSpec
}

// SearchService executes search queries against a single index.
type SearchService struct {
	index string
	eng   engine.Engine
	obs   *observer
	log   *zap.Logger
}

// Execute sends a composed query with the given options and returns the
// unpacked envelope. Transport and engine-rejection errors propagate
// unchanged; there is no retry and no fallback.
func (s *SearchService) Execute(ctx context.Context, q Query, opts *SearchOptions) (*Result, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	expr := q.expr
	size := opts.Size
	if expr.Kind == engine.KindKNN {
		size = expr.K
	}

	req := engine.SearchRequest{
		Index: s.index,
		Query: &expr,
		Size:  size,
	}
	if hl := opts.Highlight; hl != nil {
		req.Highlight = &engine.HighlightSpec{
			Field:   hl.Field,
			PreTag:  hl.PreTag,
			PostTag: hl.PostTag,
		}
	}

	start := time.Now()
	res, err := s.eng.Search(ctx, &req)
	s.obs.observe("search", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("search executed",
		zap.String("index", s.index),
		zap.String("query", expr.Kind.String()),
		zap.Int64("hits", res.Total),
	)
	return fromSearchResult(res), nil
}

// Match executes a single-field analyzed-text match query.
func (s *SearchService) Match(ctx context.Context, field, text string) (*Result, error) {
	return s.Execute(ctx, Match(field, text), nil)
}

// MultiMatch executes a match query across several fields.
func (s *SearchService) MultiMatch(ctx context.Context, fields []string, text string) (*Result, error) {
	return s.Execute(ctx, MultiMatch(fields, text), nil)
}

// Bool executes a compound query; nil clause lists add no constraint.
func (s *SearchService) Bool(ctx context.Context, must, should, mustNot []Query) (*Result, error) {
	return s.Execute(ctx, Bool(must, should, mustNot), nil)
}

// Fuzzy executes an edit-distance query with a verbatim fuzziness token.
func (s *SearchService) Fuzzy(ctx context.Context, field, value, fuzziness string) (*Result, error) {
	return s.Execute(ctx, Fuzzy(field, value, fuzziness), nil)
}

// MatchPhrase executes an exact contiguous phrase query.
func (s *SearchService) MatchPhrase(ctx context.Context, field, phrase string) (*Result, error) {
	return s.Execute(ctx, MatchPhrase(field, phrase), nil)
}

// Wildcard executes a wildcard pattern query.
func (s *SearchService) Wildcard(ctx context.Context, field, pattern string) (*Result, error) {
	return s.Execute(ctx, Wildcard(field, pattern), nil)
}

// WithHighlight executes a match query returning hits with the matched
// field highlighted between <em> and </em> markers.
func (s *SearchService) WithHighlight(ctx context.Context, field, text string) (*Result, error) {
	return s.Execute(ctx, Match(field, text), &SearchOptions{
		Highlight: &HighlightSpec{Field: field, PreTag: "<em>", PostTag: "</em>"},
	})
}

func fromSearchResult(res *engine.SearchResult) *Result {
	out := &Result{
		Total:    res.Total,
		Relation: TotalRelation(res.TotalRelation),
		Hits:     make([]Hit, len(res.Hits)),
	}
	for i := range res.Hits {
		h := &res.Hits[i]
		out.Hits[i] = Hit{
			ID:        h.ID,
			Score:     h.Score,
			Source:    h.Source,
			highlight: h.Highlight,
		}
	}
	return out
}
