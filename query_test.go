package osdex

import "testing"

func TestQueryConstructors_Kind(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"match", Match("title", "go"), "match"},
		{"multi_match", MultiMatch([]string{"title", "body"}, "go"), "multi_match"},
		{"bool", Bool([]Query{Match("a", "b")}, nil, nil), "bool"},
		{"fuzzy", Fuzzy("title", "serch", "AUTO"), "fuzzy"},
		{"match_phrase", MatchPhrase("title", "quick brown fox"), "match_phrase"},
		{"wildcard", Wildcard("title", "qu?ck*"), "wildcard"},
		{"knn", KNN("embedding", []float32{1, 2}, 5), "knn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBool_NilAndEmptyClausesEquivalent(t *testing.T) {
	withNil := Bool(nil, nil, []Query{Match("status", "draft")})
	withEmpty := Bool([]Query{}, []Query{}, []Query{Match("status", "draft")})

	if len(withNil.expr.Must) != 0 || len(withEmpty.expr.Must) != 0 {
		t.Error("empty must clause should add no constraint")
	}
	if len(withNil.expr.MustNot) != 1 || len(withEmpty.expr.MustNot) != 1 {
		t.Error("must_not clause lost")
	}
}

func TestKNNWithFilter_CopiesFilter(t *testing.T) {
	filter := Bool([]Query{Match("category", "books")}, nil, nil)
	q := KNNWithFilter("embedding", []float32{0.1, 0.2}, 3, filter)

	if q.expr.Filter == nil {
		t.Fatal("filter not attached")
	}
	if q.expr.Filter.Kind.String() != "bool" {
		t.Errorf("filter kind = %q, want bool", q.expr.Filter.Kind.String())
	}
	if q.expr.K != 3 {
		t.Errorf("k = %d, want 3", q.expr.K)
	}
}
