package engine

import "context"

// Engine combines all engine sub-interfaces. Consumers should depend on
// the narrow interfaces below; Engine exists for the concrete store and
// full-surface mocks.
type Engine interface {
	Pinger
	Searcher
	BulkIndexer
	DocIndexer
	IndexAdmin
	Close()
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes composed search requests.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}

// BulkIndexer submits batched write operations in a single request.
type BulkIndexer interface {
	Bulk(ctx context.Context, req *BulkRequest) (*BulkResult, error)
}

// DocIndexer writes a single document.
type DocIndexer interface {
	IndexDoc(ctx context.Context, index, id string, doc map[string]any) error
}

// IndexAdmin provides index lifecycle operations.
type IndexAdmin interface {
	CreateIndex(ctx context.Context, spec *IndexSpec) (bool, error)
	DeleteIndex(ctx context.Context, name string) (bool, error)
	IndexExists(ctx context.Context, name string) (bool, error)
	PutMapping(ctx context.Context, name string, props map[string]Property) (bool, error)
	PutIndexTemplate(ctx context.Context, spec *TemplateSpec) (bool, error)
	DeleteIndexTemplate(ctx context.Context, name string) (bool, error)
	GetIndexSettings(ctx context.Context, name string) (map[string]any, error)
	GetIndexMapping(ctx context.Context, name string) (map[string]any, error)
	RefreshIndex(ctx context.Context, name string) error
}

// Property is a single field mapping entry.
type Property struct {
	Type      string     `json:"type"`
	Dimension int        `json:"dimension,omitempty"`
	Method    *KNNMethod `json:"method,omitempty"`
}

// KNNMethod configures the vector index algorithm for a knn_vector field.
type KNNMethod struct {
	Name      string `json:"name"`
	SpaceType string `json:"space_type,omitempty"`
}

// Field mapping type names understood by the engine.
const (
	PropertyText      = "text"
	PropertyKeyword   = "keyword"
	PropertyInteger   = "integer"
	PropertyFloat     = "float"
	PropertyDate      = "date"
	PropertyBoolean   = "boolean"
	PropertyKNNVector = "knn_vector"
)

// IndexSpec is the input for index creation.
type IndexSpec struct {
	Name      string
	Shards    int
	Replicas  int
	Mapping   map[string]Property
	EnableKNN bool
}

// TemplateSpec is the input for index template creation.
type TemplateSpec struct {
	Name     string
	Pattern  string
	Shards   int
	Replicas int
	Mapping  map[string]Property
}

// HighlightSpec requests marked-up fragments for one field.
type HighlightSpec struct {
	Field   string
	PreTag  string
	PostTag string
}

// SearchRequest is the input for a search round-trip.
type SearchRequest struct {
	Index     string
	Query     *Query
	Size      int // 0 means engine default
	Highlight *HighlightSpec
}

// SearchResult is the unpacked hit-list response.
type SearchResult struct {
	Total         int64
	TotalRelation string // "eq" (exact) or "gte" (lower bound)
	Hits          []Hit
}

// Hit is a single ranked document from a search.
type Hit struct {
	ID        string
	Score     float64
	Source    []byte // raw document payload, nil when absent
	Highlight map[string][]string
}

// BulkOp is one index operation inside a bulk request.
// An empty ID lets the engine assign one.
type BulkOp struct {
	ID  string
	Doc map[string]any
}

// BulkRequest batches index operations against a single index.
type BulkRequest struct {
	Index string
	Ops   []BulkOp
}

// BulkItem is the engine's verdict on one bulk sub-operation.
type BulkItem struct {
	ID     string
	Status int
	Error  string
}

// BulkResult is the aggregate outcome of a bulk request.
// HasErrors mirrors the engine's top-level errors flag; per-item
// inspection is the caller's responsibility.
type BulkResult struct {
	Took      int
	HasErrors bool
	Items     []BulkItem
}
