package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// bulkResponse mirrors the engine's bulk result envelope. Each item wraps
// its verdict under the action name ("index" here).
type bulkResponse struct {
	Took   int  `json:"took"`
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// Bulk submits all operations of the batch as one NDJSON request. The
// aggregate errors flag is carried through untouched; deciding what to do
// about individual failures is the caller's business.
func (s *Store) Bulk(ctx context.Context, req *engine.BulkRequest) (*engine.BulkResult, error) {
	body, err := encodeBulkBody(req.Ops)
	if err != nil {
		return nil, &engine.Error{Op: engine.OpBulk, Err: err}
	}

	path := "/" + url.PathEscape(req.Index) + "/_bulk"

	resp, err := s.roundTrip(ctx, engine.OpBulk, http.MethodPost, path, "application/x-ndjson", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &engine.Error{Op: engine.OpBulk, Err: decodeAPIError(resp)}
	}

	var decoded bulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &engine.Error{Op: engine.OpBulk, Err: err}
	}

	result := &engine.BulkResult{
		Took:      decoded.Took,
		HasErrors: decoded.Errors,
		Items:     make([]engine.BulkItem, 0, len(decoded.Items)),
	}
	for _, item := range decoded.Items {
		for _, verdict := range item {
			out := engine.BulkItem{ID: verdict.ID, Status: verdict.Status}
			if verdict.Error != nil {
				out.Error = verdict.Error.Type + ": " + verdict.Error.Reason
			}
			result.Items = append(result.Items, out)
		}
	}

	if result.HasErrors {
		s.log.Warn("bulk request reported item errors",
			zap.String("index", req.Index),
			zap.Int("operations", len(req.Ops)),
		)
	}
	return result, nil
}

// encodeBulkBody renders action/payload line pairs. An operation without
// an id omits _id so the engine assigns one.
func encodeBulkBody(ops []engine.BulkOp) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for i := range ops {
		action := map[string]any{}
		if ops[i].ID != "" {
			action["_id"] = ops[i].ID
		}
		if err := enc.Encode(map[string]any{"index": action}); err != nil {
			return nil, err
		}
		if err := enc.Encode(ops[i].Doc); err != nil {
			return nil, err
		}
	}
	return &buf, nil
}

// IndexDoc writes a single document with an explicit id.
func (s *Store) IndexDoc(ctx context.Context, index, id string, doc map[string]any) error {
	path := "/" + url.PathEscape(index) + "/_doc/" + url.PathEscape(id)
	return s.do(ctx, engine.OpIndexDoc, http.MethodPut, path, doc, nil)
}
