package osdex

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
	"github.com/kailas-cloud/osdex/internal/engine/opensearch"
)

// Client is the osdex SDK entry point. All services share one lazily
// created connection to the remote engine; the client is safe for
// concurrent use.
type Client struct {
	store *opensearch.Store
	eng   engine.Engine
	cfg   *clientConfig
	obs   *observer
	log   *zap.Logger
}

// New creates a Client. No network activity happens here: the transport
// handle is created on the first operation.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	obs, err := newObserver(log, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store := opensearch.NewStore(opensearch.Config{
		Scheme:         cfg.scheme,
		Host:           cfg.host,
		Port:           cfg.port,
		ConnectTimeout: cfg.connectTimeout,
		RequestTimeout: cfg.requestTimeout,
		Logger:         log,
	})

	return &Client{
		store: store,
		eng:   store,
		cfg:   cfg,
		obs:   obs,
		log:   log,
	}, nil
}

// Close releases the underlying transport. Idempotent; any operation
// after Close fails with a connectivity error.
func (c *Client) Close() {
	c.store.Close()
}

// Ping checks engine connectivity, returning the underlying error.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// TestConnection performs a lightweight round-trip and reports
// reachability as a bool. Failures are logged, never raised, so a
// startup health check can branch without error handling.
func (c *Client) TestConnection(ctx context.Context) bool {
	return c.store.TestConnection(ctx)
}

// Search returns the search service for a given index.
func (c *Client) Search(index string) *SearchService {
	return &SearchService{index: index, eng: c.eng, obs: c.obs, log: c.log}
}

// Vectors returns the vector search and bulk indexing service for a
// given index.
func (c *Client) Vectors(index string) *VectorService {
	return &VectorService{
		search: c.Search(index),
		index:  index,
		eng:    c.eng,
		obs:    c.obs,
		log:    c.log,
	}
}

// Indices returns the index lifecycle service.
func (c *Client) Indices() *IndexService {
	return &IndexService{eng: c.eng, cfg: c.cfg, obs: c.obs, log: c.log}
}

// Documents returns the single-document service for a given index.
func (c *Client) Documents(index string) *DocumentService {
	return &DocumentService{index: index, eng: c.eng, obs: c.obs}
}
