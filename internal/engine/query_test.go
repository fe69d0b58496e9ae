package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func marshalQuery(t *testing.T, q Query) string {
	t.Helper()
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(data)
}

func TestQueryWireForm_Match(t *testing.T) {
	q := Query{Kind: KindMatch, Field: "title", Text: "go tooling"}
	got := marshalQuery(t, q)
	want := `{"match":{"title":{"query":"go tooling"}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_MultiMatch(t *testing.T) {
	q := Query{Kind: KindMultiMatch, Fields: []string{"title", "body"}, Text: "go"}
	got := marshalQuery(t, q)
	want := `{"multi_match":{"fields":["title","body"],"query":"go"}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_MultiMatchNoFields(t *testing.T) {
	q := Query{Kind: KindMultiMatch, Text: "go"}
	got := marshalQuery(t, q)
	want := `{"multi_match":{"query":"go"}}`
	if got != want {
		t.Errorf("fields clause should be omitted when empty: got %s", got)
	}
}

func TestQueryWireForm_Bool(t *testing.T) {
	q := Query{
		Kind: KindBool,
		Must: []Query{
			{Kind: KindMatch, Field: "title", Text: "go"},
		},
		MustNot: []Query{
			{Kind: KindMatch, Field: "status", Text: "draft"},
		},
	}
	got := marshalQuery(t, q)
	want := `{"bool":{"must":[{"match":{"title":{"query":"go"}}}],` +
		`"must_not":[{"match":{"status":{"query":"draft"}}}]}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_BoolEmpty(t *testing.T) {
	got := marshalQuery(t, Query{Kind: KindBool})
	want := `{"bool":{}}`
	if got != want {
		t.Errorf("empty clause lists must be omitted entirely: got %s", got)
	}
}

func TestQueryWireForm_BoolNested(t *testing.T) {
	q := Query{
		Kind: KindBool,
		Should: []Query{
			{Kind: KindBool, Must: []Query{{Kind: KindMatch, Field: "a", Text: "b"}}},
		},
	}
	got := marshalQuery(t, q)
	want := `{"bool":{"should":[{"bool":{"must":[{"match":{"a":{"query":"b"}}}]}}]}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_Fuzzy(t *testing.T) {
	q := Query{Kind: KindFuzzy, Field: "title", Text: "serch", Fuzziness: "AUTO"}
	got := marshalQuery(t, q)
	want := `{"fuzzy":{"title":{"fuzziness":"AUTO","value":"serch"}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_FuzzyDefaultFuzziness(t *testing.T) {
	q := Query{Kind: KindFuzzy, Field: "title", Text: "serch"}
	got := marshalQuery(t, q)
	want := `{"fuzzy":{"title":{"value":"serch"}}}`
	if got != want {
		t.Errorf("empty fuzziness must be omitted: got %s", got)
	}
}

func TestQueryWireForm_MatchPhrase(t *testing.T) {
	q := Query{Kind: KindMatchPhrase, Field: "body", Text: "quick brown fox"}
	got := marshalQuery(t, q)
	want := `{"match_phrase":{"body":{"query":"quick brown fox"}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_Wildcard(t *testing.T) {
	q := Query{Kind: KindWildcard, Field: "title", Pattern: "qu?ck*"}
	got := marshalQuery(t, q)
	want := `{"wildcard":{"title":{"value":"qu?ck*"}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_KNN(t *testing.T) {
	q := Query{Kind: KindKNN, Field: "embedding", Vector: []float32{0.5, 1}, K: 3}
	got := marshalQuery(t, q)
	want := `{"knn":{"embedding":{"k":3,"vector":[0.5,1]}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_KNNWithFilter(t *testing.T) {
	filter := Query{Kind: KindMatch, Field: "category", Text: "books"}
	q := Query{Kind: KindKNN, Field: "embedding", Vector: []float32{1}, K: 2, Filter: &filter}
	got := marshalQuery(t, q)
	want := `{"knn":{"embedding":{"filter":{"match":{"category":{"query":"books"}}},"k":2,"vector":[1]}}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestQueryWireForm_UnknownKind(t *testing.T) {
	_, err := json.Marshal(Query{Kind: QueryKind(99)})
	if err == nil {
		t.Fatal("expected error for unknown query kind")
	}
	if !errors.Is(err, ErrUnknownQuery) {
		t.Fatalf("err = %v, want ErrUnknownQuery", err)
	}
}

func TestQueryWireForm_UnknownKindInsideBool(t *testing.T) {
	q := Query{Kind: KindBool, Must: []Query{{Kind: QueryKind(99)}}}
	if _, err := json.Marshal(q); err == nil {
		t.Fatal("expected nested unknown kind to fail the whole query")
	}
}

func TestQueryKind_String(t *testing.T) {
	tests := []struct {
		kind QueryKind
		want string
	}{
		{KindMatch, "match"},
		{KindMultiMatch, "multi_match"},
		{KindBool, "bool"},
		{KindFuzzy, "fuzzy"},
		{KindMatchPhrase, "match_phrase"},
		{KindWildcard, "wildcard"},
		{KindKNN, "knn"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
