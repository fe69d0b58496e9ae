package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	Scheme         string
	Host           string
	Port           int
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// handle is the live transport: one HTTP client plus the resolved base URL.
type handle struct {
	httpc   *http.Client
	baseURL string
}

// Conn owns the single lazily-created transport handle shared by every
// operation. The first acquire creates it under the mutex; later callers
// hit the atomic fast path. After Release the connection is unusable.
type Conn struct {
	cfg Config
	log *zap.Logger

	mu       sync.Mutex
	h        atomic.Pointer[handle]
	released bool
}

// NewConn creates an unconnected Conn. No network activity happens until
// the first operation acquires the handle.
func NewConn(cfg Config) *Conn {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Conn{cfg: cfg, log: log}
}

// acquire returns the shared transport handle, creating it on first call.
// Creation failures and use-after-release surface as errors; nothing is
// retried here.
func (c *Conn) acquire() (*handle, error) {
	if h := c.h.Load(); h != nil {
		return h, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil, engine.ErrReleased
	}
	if h := c.h.Load(); h != nil {
		return h, nil
	}

	h, err := c.create()
	if err != nil {
		return nil, err
	}
	c.h.Store(h)
	return h, nil
}

func (c *Conn) create() (*handle, error) {
	cfg := c.cfg
	if cfg.Host == "" {
		return nil, fmt.Errorf("opensearch: host is required")
	}
	switch cfg.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("opensearch: unsupported scheme %q", cfg.Scheme)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("opensearch: port must be between 1 and 65535, got %d", cfg.Port)
	}

	c.log.Info("creating OpenSearch client",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport := &http.Transport{
		DialContext:       dialer.DialContext,
		ForceAttemptHTTP2: true,
	}
	return &handle{
		httpc: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		baseURL: fmt.Sprintf("%s://%s:%d", cfg.Scheme, cfg.Host, cfg.Port),
	}, nil
}

// Release tears down the transport. Idempotent, and safe to call even if
// the handle was never acquired.
func (c *Conn) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	if h := c.h.Load(); h != nil {
		c.log.Info("closing OpenSearch client")
		h.httpc.CloseIdleConnections()
		c.h.Store(nil)
	}
	c.released = true
}

// clusterInfo mirrors the engine's root endpoint response.
type clusterInfo struct {
	ClusterName string `json:"cluster_name"`
	Version     struct {
		Number string `json:"number"`
	} `json:"version"`
}

// TestConnection performs a lightweight round-trip against the cluster
// info endpoint. Failures are reported as false with a warn log, never
// as an error: a startup health check decides control flow on the bool.
func (c *Conn) TestConnection(ctx context.Context) bool {
	info, err := c.info(ctx)
	if err != nil {
		c.log.Warn("failed to connect to OpenSearch", zap.Error(err))
		return false
	}
	c.log.Info("connected to OpenSearch cluster",
		zap.String("cluster", info.ClusterName),
		zap.String("version", info.Version.Number),
	)
	return true
}

func (c *Conn) info(ctx context.Context) (*clusterInfo, error) {
	h, err := c.acquire()
	if err != nil {
		return nil, &engine.Error{Op: engine.OpPing, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/", nil)
	if err != nil {
		return nil, &engine.Error{Op: engine.OpPing, Err: err}
	}
	resp, err := h.httpc.Do(req)
	if err != nil {
		return nil, &engine.Error{Op: engine.OpPing, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &engine.Error{Op: engine.OpPing, Err: decodeAPIError(resp)}
	}

	var info clusterInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &engine.Error{Op: engine.OpPing, Err: err}
	}
	return &info, nil
}
