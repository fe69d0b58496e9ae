package engine

import (
	"encoding/json"
	"fmt"
)

// QueryKind discriminates the closed set of query variants.
type QueryKind int

const (
	KindMatch QueryKind = iota + 1
	KindMultiMatch
	KindBool
	KindFuzzy
	KindMatchPhrase
	KindWildcard
	KindKNN
)

// String returns the engine DSL name of the query kind.
func (k QueryKind) String() string {
	switch k {
	case KindMatch:
		return "match"
	case KindMultiMatch:
		return "multi_match"
	case KindBool:
		return "bool"
	case KindFuzzy:
		return "fuzzy"
	case KindMatchPhrase:
		return "match_phrase"
	case KindWildcard:
		return "wildcard"
	case KindKNN:
		return "knn"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// Query is a closed tagged union over the engine's query grammar.
// Only the fields relevant to Kind are populated; Bool composition
// is recursive through the clause slices.
type Query struct {
	Kind QueryKind

	Field     string
	Text      string
	Fields    []string
	Fuzziness string
	Pattern   string

	Must    []Query
	Should  []Query
	MustNot []Query

	Vector []float32
	K      int
	Filter *Query
}

// MarshalJSON renders the query as the engine's wire DSL. The switch is
// exhaustive over QueryKind; an unhandled kind is an error, never a
// silently empty query.
func (q Query) MarshalJSON() ([]byte, error) {
	node, err := q.wireForm()
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func (q Query) wireForm() (map[string]any, error) {
	switch q.Kind {
	case KindMatch:
		return map[string]any{
			"match": map[string]any{
				q.Field: map[string]any{"query": q.Text},
			},
		}, nil

	case KindMultiMatch:
		mm := map[string]any{"query": q.Text}
		if len(q.Fields) > 0 {
			mm["fields"] = q.Fields
		}
		return map[string]any{"multi_match": mm}, nil

	case KindBool:
		b := map[string]any{}
		if err := putClauses(b, "must", q.Must); err != nil {
			return nil, err
		}
		if err := putClauses(b, "should", q.Should); err != nil {
			return nil, err
		}
		if err := putClauses(b, "must_not", q.MustNot); err != nil {
			return nil, err
		}
		return map[string]any{"bool": b}, nil

	case KindFuzzy:
		f := map[string]any{"value": q.Text}
		if q.Fuzziness != "" {
			f["fuzziness"] = q.Fuzziness
		}
		return map[string]any{
			"fuzzy": map[string]any{q.Field: f},
		}, nil

	case KindMatchPhrase:
		return map[string]any{
			"match_phrase": map[string]any{
				q.Field: map[string]any{"query": q.Text},
			},
		}, nil

	case KindWildcard:
		return map[string]any{
			"wildcard": map[string]any{
				q.Field: map[string]any{"value": q.Pattern},
			},
		}, nil

	case KindKNN:
		knn := map[string]any{
			"vector": q.Vector,
			"k":      q.K,
		}
		if q.Filter != nil {
			filter, err := q.Filter.wireForm()
			if err != nil {
				return nil, err
			}
			knn["filter"] = filter
		}
		return map[string]any{
			"knn": map[string]any{q.Field: knn},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownQuery, int(q.Kind))
	}
}

// putClauses renders a bool clause list, omitting it entirely when empty:
// an absent clause list means no constraint of that kind.
func putClauses(dst map[string]any, key string, clauses []Query) error {
	if len(clauses) == 0 {
		return nil
	}
	rendered := make([]map[string]any, len(clauses))
	for i := range clauses {
		node, err := clauses[i].wireForm()
		if err != nil {
			return err
		}
		rendered[i] = node
	}
	dst[key] = rendered
	return nil
}
