package opensearch

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// indexSettings is the wire form of the settings block on index creation.
type indexSettings struct {
	NumberOfShards   int  `json:"number_of_shards"`
	NumberOfReplicas int  `json:"number_of_replicas"`
	KNN              bool `json:"knn,omitempty"`
}

type indexMappings struct {
	Properties map[string]engine.Property `json:"properties"`
}

type createIndexBody struct {
	Settings struct {
		Index indexSettings `json:"index"`
	} `json:"settings"`
	Mappings *indexMappings `json:"mappings,omitempty"`
}

// CreateIndex creates an index with the given shard/replica counts,
// optional field mapping, and optional vector-search capability.
func (s *Store) CreateIndex(ctx context.Context, spec *engine.IndexSpec) (bool, error) {
	body := createIndexBody{}
	body.Settings.Index = indexSettings{
		NumberOfShards:   spec.Shards,
		NumberOfReplicas: spec.Replicas,
		KNN:              spec.EnableKNN,
	}
	if len(spec.Mapping) > 0 {
		body.Mappings = &indexMappings{Properties: spec.Mapping}
	}

	var ack ackResponse
	path := "/" + url.PathEscape(spec.Name)
	if err := s.do(ctx, engine.OpCreateIndex, http.MethodPut, path, &body, &ack); err != nil {
		return false, err
	}
	return ack.Acknowledged, nil
}

// DeleteIndex removes an index by name.
func (s *Store) DeleteIndex(ctx context.Context, name string) (bool, error) {
	var ack ackResponse
	path := "/" + url.PathEscape(name)
	if err := s.do(ctx, engine.OpDeleteIndex, http.MethodDelete, path, nil, &ack); err != nil {
		return false, err
	}
	return ack.Acknowledged, nil
}

// IndexExists probes index existence with a HEAD request. Only 404 means
// absent; any other failure propagates as a transport error, never as false.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	path := "/" + url.PathEscape(name)
	resp, err := s.roundTrip(ctx, engine.OpIndexExists, http.MethodHead, path, "", nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, &engine.Error{Op: engine.OpIndexExists, Err: decodeAPIError(resp)}
	}
}

// PutMapping adds fields to an existing index. The engine rejects type
// changes to existing fields; that rejection surfaces as an error here,
// no diffing or validation happens client-side.
func (s *Store) PutMapping(ctx context.Context, name string, props map[string]engine.Property) (bool, error) {
	body := indexMappings{Properties: props}

	var ack ackResponse
	path := "/" + url.PathEscape(name) + "/_mapping"
	if err := s.do(ctx, engine.OpPutMapping, http.MethodPut, path, &body, &ack); err != nil {
		return false, err
	}
	return ack.Acknowledged, nil
}

type templateBody struct {
	IndexPatterns []string `json:"index_patterns"`
	Template      struct {
		Settings struct {
			Index indexSettings `json:"index"`
		} `json:"settings"`
		Mappings *indexMappings `json:"mappings,omitempty"`
	} `json:"template"`
}

// PutIndexTemplate registers a template applied to new indices whose
// names match the pattern.
func (s *Store) PutIndexTemplate(ctx context.Context, spec *engine.TemplateSpec) (bool, error) {
	body := templateBody{IndexPatterns: []string{spec.Pattern}}
	body.Template.Settings.Index = indexSettings{
		NumberOfShards:   spec.Shards,
		NumberOfReplicas: spec.Replicas,
	}
	if len(spec.Mapping) > 0 {
		body.Template.Mappings = &indexMappings{Properties: spec.Mapping}
	}

	var ack ackResponse
	path := "/_index_template/" + url.PathEscape(spec.Name)
	if err := s.do(ctx, engine.OpPutTemplate, http.MethodPut, path, &body, &ack); err != nil {
		return false, err
	}
	return ack.Acknowledged, nil
}

// DeleteIndexTemplate removes an index template by name.
func (s *Store) DeleteIndexTemplate(ctx context.Context, name string) (bool, error) {
	var ack ackResponse
	path := "/_index_template/" + url.PathEscape(name)
	if err := s.do(ctx, engine.OpDeleteTemplate, http.MethodDelete, path, nil, &ack); err != nil {
		return false, err
	}
	return ack.Acknowledged, nil
}

// GetIndexSettings returns the engine-held settings as a raw projection.
func (s *Store) GetIndexSettings(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	path := "/" + url.PathEscape(name) + "/_settings"
	if err := s.do(ctx, engine.OpGetSettings, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIndexMapping returns the engine-held mapping as a raw projection.
func (s *Store) GetIndexMapping(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	path := "/" + url.PathEscape(name) + "/_mapping"
	if err := s.do(ctx, engine.OpGetMapping, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RefreshIndex makes newly written documents searchable immediately.
// Success is implied by the call returning without a transport error.
func (s *Store) RefreshIndex(ctx context.Context, name string) error {
	path := "/" + url.PathEscape(name) + "/_refresh"
	return s.do(ctx, engine.OpRefresh, http.MethodPost, path, nil, nil)
}
