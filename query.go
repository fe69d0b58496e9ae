package osdex

import "github.com/kailas-cloud/osdex/internal/engine"

// Query is a composed search expression. Values are built with the
// package-level constructors and are immutable per-call value objects;
// composition is purely structural and nothing is validated client-side.
// Invalid input (a bad fuzziness token, a malformed wildcard pattern) is
// rejected by the remote engine at execution time.
type Query struct {
	expr engine.Query
}

// Match builds a single-field analyzed-text match query.
func Match(field, text string) Query {
	return Query{expr: engine.Query{
		Kind:  engine.KindMatch,
		Field: field,
		Text:  text,
	}}
}

// MultiMatch builds a match query across a set of fields. An empty field
// list is legal: the fields clause is omitted and the engine applies its
// defaults.
func MultiMatch(fields []string, text string) Query {
	return Query{expr: engine.Query{
		Kind:   engine.KindMultiMatch,
		Fields: fields,
		Text:   text,
	}}
}

// Bool builds a compound query from must, should and mustNot clause
// lists. A nil or empty list adds no constraint of that kind; clauses
// nest recursively, including further Bool queries.
func Bool(must, should, mustNot []Query) Query {
	return Query{expr: engine.Query{
		Kind:    engine.KindBool,
		Must:    exprs(must),
		Should:  exprs(should),
		MustNot: exprs(mustNot),
	}}
}

// Fuzzy builds an edit-distance query. The fuzziness token ("AUTO", "0",
// "1", "2", ...) is passed through verbatim.
func Fuzzy(field, value, fuzziness string) Query {
	return Query{expr: engine.Query{
		Kind:      engine.KindFuzzy,
		Field:     field,
		Text:      value,
		Fuzziness: fuzziness,
	}}
}

// MatchPhrase builds an exact contiguous phrase query.
func MatchPhrase(field, phrase string) Query {
	return Query{expr: engine.Query{
		Kind:  engine.KindMatchPhrase,
		Field: field,
		Text:  phrase,
	}}
}

// Wildcard builds a pattern query using the engine's wildcard syntax
// ("*" matches any run, "?" a single character). The pattern is not
// escaped or validated; a leading wildcard is allowed but expensive.
func Wildcard(field, pattern string) Query {
	return Query{expr: engine.Query{
		Kind:    engine.KindWildcard,
		Field:   field,
		Pattern: pattern,
	}}
}

// KNN builds a k-nearest-neighbor query against a vector field. The
// executor caps the result size at k for this query family.
func KNN(field string, vector []float32, k int) Query {
	return Query{expr: engine.Query{
		Kind:   engine.KindKNN,
		Field:  field,
		Vector: vector,
		K:      k,
	}}
}

// KNNWithFilter builds a k-NN query whose candidate set is restricted by
// a filter expression before ranking.
func KNNWithFilter(field string, vector []float32, k int, filter Query) Query {
	f := filter.expr
	return Query{expr: engine.Query{
		Kind:   engine.KindKNN,
		Field:  field,
		Vector: vector,
		K:      k,
		Filter: &f,
	}}
}

// Kind returns the engine DSL name of the query ("match", "bool", ...).
func (q Query) Kind() string {
	return q.expr.Kind.String()
}

func exprs(qs []Query) []engine.Query {
	if len(qs) == 0 {
		return nil
	}
	out := make([]engine.Query, len(qs))
	for i := range qs {
		out[i] = qs[i].expr
	}
	return out
}
