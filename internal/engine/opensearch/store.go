package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// Compile-time check: Store implements engine.Engine.
var _ engine.Engine = (*Store)(nil)

// Store implements engine.Engine against the OpenSearch REST API.
// All round-trips share the single transport handle owned by Conn.
type Store struct {
	conn *Conn
	log  *zap.Logger
}

// NewStore creates an OpenSearch store. The connection itself is
// established lazily on first use.
func NewStore(cfg Config) *Store {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{conn: NewConn(cfg), log: log}
}

// Ping checks connectivity via the cluster info endpoint.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.conn.info(ctx)
	return err
}

// TestConnection reports reachability as a bool, logging the cause on failure.
func (s *Store) TestConnection(ctx context.Context) bool {
	return s.conn.TestConnection(ctx)
}

// Close releases the underlying transport. Safe to call multiple times.
func (s *Store) Close() {
	s.conn.Release()
}

// roundTrip executes one HTTP exchange against the engine. Transport
// errors are wrapped with the operation name; the response is returned
// regardless of status so callers can interpret it per endpoint.
func (s *Store) roundTrip(
	ctx context.Context, op, method, path, contentType string, body io.Reader,
) (*http.Response, error) {
	h, err := s.conn.acquire()
	if err != nil {
		return nil, &engine.Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, &engine.Error{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpc.Do(req)
	if err != nil {
		return nil, &engine.Error{Op: op, Err: err}
	}
	return resp, nil
}

// do executes a JSON request/response exchange. A non-nil reqBody is
// marshaled as the request body; a non-nil out receives the decoded
// response. Engine rejections (status >= 400) surface as *engine.Error
// wrapping an *engine.APIError.
func (s *Store) do(ctx context.Context, op, method, path string, reqBody, out any) error {
	var body io.Reader
	contentType := ""
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return &engine.Error{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := s.roundTrip(ctx, op, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &engine.Error{Op: op, Err: decodeAPIError(resp)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &engine.Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// decodeAPIError reads an error response body into an APIError. The
// engine's structured error shape is used when present; otherwise the
// raw body becomes the reason.
func decodeAPIError(resp *http.Response) *engine.APIError {
	apiErr := &engine.APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var parsed struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Type != "" {
		apiErr.Type = parsed.Error.Type
		apiErr.Reason = parsed.Error.Reason
		return apiErr
	}

	apiErr.Reason = strings.TrimSpace(string(raw))
	return apiErr
}

// ackResponse is the engine's acknowledgment envelope for admin calls.
type ackResponse struct {
	Acknowledged bool `json:"acknowledged"`
}
