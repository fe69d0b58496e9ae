package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine operations.
var (
	ErrReleased     = errors.New("engine: connection released")
	ErrUnknownQuery = errors.New("engine: unknown query kind")
)

// Op constants map to engine API endpoints for error context.
const (
	OpPing           = "info"
	OpSearch         = "search"
	OpBulk           = "bulk"
	OpIndexDoc       = "index"
	OpCreateIndex    = "indices.create"
	OpDeleteIndex    = "indices.delete"
	OpIndexExists    = "indices.exists"
	OpPutMapping     = "indices.put_mapping"
	OpPutTemplate    = "indices.put_index_template"
	OpDeleteTemplate = "indices.delete_index_template"
	OpGetSettings    = "indices.get_settings"
	OpGetMapping     = "indices.get_mapping"
	OpRefresh        = "indices.refresh"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// APIError is a rejection decoded from the engine's error response body.
// Validation failures (bad query, incompatible mapping change) and
// transport-level refusals share this channel.
type APIError struct {
	Status int
	Type   string
	Reason string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("engine returned status %d", e.Status)
	}
	return fmt.Sprintf("engine returned status %d: [%s] %s", e.Status, e.Type, e.Reason)
}
