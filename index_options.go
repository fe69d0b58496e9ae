package osdex

// CreateOption configures index or template creation.
type CreateOption func(*createConfig)

type createConfig struct {
	shards    int
	replicas  int
	mapping   Mapping
	enableKNN bool
}

// WithMapping sets the field mapping. An empty mapping sends no explicit
// field typing.
func WithMapping(m Mapping) CreateOption {
	return func(c *createConfig) {
		c.mapping = m
	}
}

// WithVectorIndex enables the engine's vector-search capability for the
// index.
func WithVectorIndex() CreateOption {
	return func(c *createConfig) {
		c.enableKNN = true
	}
}

// WithCreateShards overrides the client's default shard count.
func WithCreateShards(n int) CreateOption {
	return func(c *createConfig) {
		c.shards = n
	}
}

// WithCreateReplicas overrides the client's default replica count.
func WithCreateReplicas(n int) CreateOption {
	return func(c *createConfig) {
		c.replicas = n
	}
}
