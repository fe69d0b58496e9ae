package opensearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// searchBody is the wire form of a search request.
type searchBody struct {
	Query     *engine.Query  `json:"query"`
	Size      int            `json:"size,omitempty"`
	Highlight map[string]any `json:"highlight,omitempty"`
}

// searchResponse mirrors the engine's hit-list envelope.
type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []struct {
			ID        string              `json:"_id"`
			Score     float64             `json:"_score"`
			Source    json.RawMessage     `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search executes a composed query and unpacks the hit list. Hit order is
// exactly the engine's ranking order; no re-sorting happens here.
func (s *Store) Search(ctx context.Context, req *engine.SearchRequest) (*engine.SearchResult, error) {
	body := searchBody{
		Query: req.Query,
		Size:  req.Size,
	}
	if hl := req.Highlight; hl != nil {
		body.Highlight = map[string]any{
			"fields": map[string]any{
				hl.Field: map[string]any{
					"pre_tags":  []string{hl.PreTag},
					"post_tags": []string{hl.PostTag},
				},
			},
		}
	}

	path := "/" + url.PathEscape(req.Index) + "/_search"

	var decoded searchResponse
	if err := s.do(ctx, engine.OpSearch, http.MethodPost, path, &body, &decoded); err != nil {
		return nil, err
	}

	result := &engine.SearchResult{
		Total:         decoded.Hits.Total.Value,
		TotalRelation: decoded.Hits.Total.Relation,
		Hits:          make([]engine.Hit, len(decoded.Hits.Hits)),
	}
	for i, h := range decoded.Hits.Hits {
		result.Hits[i] = engine.Hit{
			ID:        h.ID,
			Score:     h.Score,
			Source:    h.Source,
			Highlight: h.Highlight,
		}
	}
	return result, nil
}
