package osdex

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// VectorDocument is one (id, vector, metadata) tuple for bulk indexing.
// An empty ID lets the engine assign one. Metadata keys must not collide
// with the vector field name; such a key is skipped so the vector value
// survives, while collisions between metadata keys and other document
// fields overwrite silently.
type VectorDocument struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// BulkItem is the engine's verdict on one bulk sub-operation.
type BulkItem struct {
	ID     string
	Status int
	Error  string
}

// BulkResult is the raw aggregate outcome of a bulk request. HasErrors
// mirrors the engine's top-level flag; which individual operations
// failed is the caller's to inspect via Items.
type BulkResult struct {
	Took      int
	HasErrors bool
	Items     []BulkItem
}

// VectorService provides k-NN search and bulk vector indexing for a
// single index.
type VectorService struct {
	search *SearchService
	index  string
	eng    engine.Engine
	obs    *observer
	log    *zap.Logger
}

// KNNSearch finds the k nearest neighbors of the query vector in the
// given field, ordered by descending similarity score.
func (v *VectorService) KNNSearch(ctx context.Context, field string, vector []float32, k int) (*Result, error) {
	return v.search.Execute(ctx, KNN(field, vector, k), nil)
}

// KNNSearchWithFilter finds the k nearest neighbors among documents
// matching the filter expression.
func (v *VectorService) KNNSearchWithFilter(
	ctx context.Context, field string, vector []float32, k int, filter Query,
) (*Result, error) {
	return v.search.Execute(ctx, KNNWithFilter(field, vector, k, filter), nil)
}

// BulkIndex writes the batch as a single multi-operation request. The
// engine's aggregate error flag is logged and carried through on the
// returned result; failed sub-operations are not retried or decomposed
// here. An empty batch submits a request with zero operations.
func (v *VectorService) BulkIndex(
	ctx context.Context, vectorField string, docs []VectorDocument,
) (*BulkResult, error) {
	req := engine.BulkRequest{
		Index: v.index,
		Ops:   make([]engine.BulkOp, len(docs)),
	}
	for i := range docs {
		req.Ops[i] = engine.BulkOp{
			ID:  docs[i].ID,
			Doc: v.buildPayload(vectorField, &docs[i]),
		}
	}

	start := time.Now()
	res, err := v.eng.Bulk(ctx, &req)
	v.obs.observe("bulk_index", start, err)
	if err != nil {
		return nil, err
	}

	v.log.Info("bulk indexing completed",
		zap.String("index", v.index),
		zap.Int("documents", len(docs)),
		zap.Bool("errors", res.HasErrors),
	)
	return fromBulkResult(res), nil
}

// buildPayload sets the vector field first, then merges metadata. A
// metadata key equal to the vector field name is dropped with a warning
// so the vector value is never overwritten.
func (v *VectorService) buildPayload(vectorField string, doc *VectorDocument) map[string]any {
	payload := make(map[string]any, len(doc.Metadata)+1)
	payload[vectorField] = doc.Vector

	for k, val := range doc.Metadata {
		if k == vectorField {
			v.log.Warn("metadata key collides with vector field, skipping",
				zap.String("index", v.index),
				zap.String("field", k),
				zap.String("id", doc.ID),
			)
			continue
		}
		payload[k] = val
	}
	return payload
}

func fromBulkResult(res *engine.BulkResult) *BulkResult {
	out := &BulkResult{
		Took:      res.Took,
		HasErrors: res.HasErrors,
		Items:     make([]BulkItem, len(res.Items)),
	}
	for i, item := range res.Items {
		out.Items[i] = BulkItem(item)
	}
	return out
}

// DocumentService writes individual documents to a single index.
type DocumentService struct {
	index string
	eng   engine.Engine
	obs   *observer
}

// Index writes one document under an explicit id.
func (d *DocumentService) Index(ctx context.Context, id string, doc map[string]any) error {
	start := time.Now()
	err := d.eng.IndexDoc(ctx, d.index, id, doc)
	d.obs.observe("index_doc", start, err)
	return err
}
