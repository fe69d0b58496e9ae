package osdex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	scheme         string
	host           string
	port           int
	connectTimeout time.Duration
	requestTimeout time.Duration

	shards   int
	replicas int

	knnDimension int
	knnSpaceType string

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		scheme:         "http",
		host:           "localhost",
		port:           9200,
		connectTimeout: 5 * time.Second,
		requestTimeout: 60 * time.Second,
		shards:         1,
		replicas:       0,
		knnDimension:   128,
		knnSpaceType:   "l2",
	}
}

// WithAddress sets the engine host and port. Defaults to localhost:9200.
func WithAddress(host string, port int) Option {
	return optionFunc(func(c *clientConfig) {
		c.host = host
		c.port = port
	})
}

// WithScheme sets the connection scheme, http or https. Defaults to http.
func WithScheme(scheme string) Option {
	return optionFunc(func(c *clientConfig) {
		c.scheme = scheme
	})
}

// WithConnectTimeout sets the TCP connect timeout. Default: 5s.
func WithConnectTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.connectTimeout = d
	})
}

// WithRequestTimeout sets the per-request timeout covering the full
// round-trip. Default: 60s.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithShards sets the default shard count for created indices. Default: 1.
func WithShards(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.shards = n
	})
}

// WithReplicas sets the default replica count for created indices. Default: 0.
func WithReplicas(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.replicas = n
	})
}

// WithKNNDefaults sets the default vector dimension and distance metric
// (e.g. "l2", "cosinesimil") used when building vector indices.
// Defaults: 128, "l2".
func WithKNNDefaults(dimension int, spaceType string) Option {
	return optionFunc(func(c *clientConfig) {
		c.knnDimension = dimension
		c.knnSpaceType = spaceType
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
