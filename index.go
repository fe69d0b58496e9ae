package osdex

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// FieldType is the engine mapping type of a field.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldKeyword   FieldType = "keyword"
	FieldInteger   FieldType = "integer"
	FieldFloat     FieldType = "float"
	FieldDate      FieldType = "date"
	FieldBoolean   FieldType = "boolean"
	FieldKNNVector FieldType = "knn_vector"
)

// Field is a single field mapping entry.
type Field struct {
	Type      FieldType
	Dimension int    // knn_vector only
	SpaceType string // knn_vector only; empty keeps the engine default
}

// Mapping is a field-name-to-type schema.
type Mapping map[string]Field

// MappingBuilder is a fluent builder for index mappings.
type MappingBuilder struct {
	fields Mapping
}

// NewMapping starts building an index mapping.
func NewMapping() *MappingBuilder {
	return &MappingBuilder{fields: Mapping{}}
}

// Text adds an analyzed full-text field.
func (b *MappingBuilder) Text(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldText}
	return b
}

// Keyword adds an exact-match keyword field.
func (b *MappingBuilder) Keyword(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldKeyword}
	return b
}

// Integer adds an integer field.
func (b *MappingBuilder) Integer(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldInteger}
	return b
}

// Float adds a float field.
func (b *MappingBuilder) Float(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldFloat}
	return b
}

// Date adds a date field.
func (b *MappingBuilder) Date(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldDate}
	return b
}

// Boolean adds a boolean field.
func (b *MappingBuilder) Boolean(name string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldBoolean}
	return b
}

// KNNVector adds a vector field with the given dimension.
func (b *MappingBuilder) KNNVector(name string, dimension int) *MappingBuilder {
	b.fields[name] = Field{Type: FieldKNNVector, Dimension: dimension}
	return b
}

// KNNVectorWithSpace adds a vector field with an explicit distance
// metric (e.g. "l2", "cosinesimil").
func (b *MappingBuilder) KNNVectorWithSpace(name string, dimension int, spaceType string) *MappingBuilder {
	b.fields[name] = Field{Type: FieldKNNVector, Dimension: dimension, SpaceType: spaceType}
	return b
}

// Build returns the accumulated mapping.
func (b *MappingBuilder) Build() Mapping {
	return b.fields
}

// IndexService provides index lifecycle operations: thin, deterministic
// translations to the engine's index-admin API.
type IndexService struct {
	eng engine.Engine
	cfg *clientConfig
	obs *observer
	log *zap.Logger
}

// Create creates an index. Shard and replica counts default to the
// client settings; an empty mapping sends no explicit field typing.
// Returns the engine's acknowledgment.
func (s *IndexService) Create(ctx context.Context, name string, opts ...CreateOption) (bool, error) {
	cfg := createConfig{shards: s.cfg.shards, replicas: s.cfg.replicas}
	for _, o := range opts {
		o(&cfg)
	}

	s.log.Info("creating index",
		zap.String("index", name),
		zap.Bool("knn", cfg.enableKNN),
	)

	spec := engine.IndexSpec{
		Name:      name,
		Shards:    cfg.shards,
		Replicas:  cfg.replicas,
		Mapping:   toProperties(cfg.mapping),
		EnableKNN: cfg.enableKNN,
	}

	start := time.Now()
	ack, err := s.eng.CreateIndex(ctx, &spec)
	s.obs.observe("create_index", start, err)
	if err != nil {
		return false, err
	}

	s.log.Info("index created", zap.String("index", name), zap.Bool("acknowledged", ack))
	return ack, nil
}

// CreateVectorIndex creates a vector-enabled index whose vector field
// uses the client's default dimension and distance metric, with any
// extra fields merged in.
func (s *IndexService) CreateVectorIndex(
	ctx context.Context, name, vectorField string, extra Mapping,
) (bool, error) {
	mapping := Mapping{
		vectorField: {
			Type:      FieldKNNVector,
			Dimension: s.cfg.knnDimension,
			SpaceType: s.cfg.knnSpaceType,
		},
	}
	for k, f := range extra {
		if k == vectorField {
			continue
		}
		mapping[k] = f
	}
	return s.Create(ctx, name, WithMapping(mapping), WithVectorIndex())
}

// Delete removes an index. Returns the engine's acknowledgment.
func (s *IndexService) Delete(ctx context.Context, name string) (bool, error) {
	s.log.Info("deleting index", zap.String("index", name))

	start := time.Now()
	ack, err := s.eng.DeleteIndex(ctx, name)
	s.obs.observe("delete_index", start, err)
	if err != nil {
		return false, err
	}

	s.log.Info("index deleted", zap.String("index", name), zap.Bool("acknowledged", ack))
	return ack, nil
}

// Exists reports whether the index exists. Probe failures other than
// absence propagate as errors, never as false.
func (s *IndexService) Exists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := s.eng.IndexExists(ctx, name)
	s.obs.observe("index_exists", start, err)
	return ok, err
}

// PutMapping adds fields to an existing index. Type changes to existing
// fields are rejected by the engine and surface as errors; nothing is
// diffed client-side.
func (s *IndexService) PutMapping(ctx context.Context, name string, mapping Mapping) (bool, error) {
	s.log.Info("updating mapping", zap.String("index", name))

	start := time.Now()
	ack, err := s.eng.PutMapping(ctx, name, toProperties(mapping))
	s.obs.observe("put_mapping", start, err)
	if err != nil {
		return false, err
	}
	return ack, nil
}

// PutTemplate registers an index template applied to new indices whose
// names match the pattern. Shards and replicas default to the client
// settings and can be overridden with options.
func (s *IndexService) PutTemplate(
	ctx context.Context, name, pattern string, opts ...CreateOption,
) (bool, error) {
	cfg := createConfig{shards: s.cfg.shards, replicas: s.cfg.replicas}
	for _, o := range opts {
		o(&cfg)
	}

	s.log.Info("creating index template",
		zap.String("template", name),
		zap.String("pattern", pattern),
	)

	spec := engine.TemplateSpec{
		Name:     name,
		Pattern:  pattern,
		Shards:   cfg.shards,
		Replicas: cfg.replicas,
		Mapping:  toProperties(cfg.mapping),
	}

	start := time.Now()
	ack, err := s.eng.PutIndexTemplate(ctx, &spec)
	s.obs.observe("put_template", start, err)
	if err != nil {
		return false, err
	}
	return ack, nil
}

// DeleteTemplate removes an index template.
func (s *IndexService) DeleteTemplate(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ack, err := s.eng.DeleteIndexTemplate(ctx, name)
	s.obs.observe("delete_template", start, err)
	if err != nil {
		return false, err
	}
	return ack, nil
}

// Settings returns the engine-held settings of an index as a raw
// projection.
func (s *IndexService) Settings(ctx context.Context, name string) (map[string]any, error) {
	start := time.Now()
	out, err := s.eng.GetIndexSettings(ctx, name)
	s.obs.observe("get_settings", start, err)
	return out, err
}

// Mapping returns the engine-held mapping of an index as a raw
// projection.
func (s *IndexService) Mapping(ctx context.Context, name string) (map[string]any, error) {
	start := time.Now()
	out, err := s.eng.GetIndexMapping(ctx, name)
	s.obs.observe("get_mapping", start, err)
	return out, err
}

// Refresh makes newly written documents searchable immediately. It
// succeeds whenever the call returns without a transport error.
func (s *IndexService) Refresh(ctx context.Context, name string) error {
	start := time.Now()
	err := s.eng.RefreshIndex(ctx, name)
	s.obs.observe("refresh", start, err)
	return err
}

func toProperties(m Mapping) map[string]engine.Property {
	if len(m) == 0 {
		return nil
	}
	props := make(map[string]engine.Property, len(m))
	for name, f := range m {
		p := engine.Property{
			Type:      string(f.Type),
			Dimension: f.Dimension,
		}
		if f.Type == FieldKNNVector && f.SpaceType != "" {
			p.Method = &engine.KNNMethod{Name: "hnsw", SpaceType: f.SpaceType}
		}
		props[name] = p
	}
	return props
}
