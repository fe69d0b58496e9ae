package osdex

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/osdex/internal/engine"
)

func TestMappingBuilder(t *testing.T) {
	m := NewMapping().
		Text("title").
		Keyword("category").
		Integer("year").
		Float("price").
		Date("published").
		Boolean("in_stock").
		KNNVector("embedding", 128).
		Build()

	if len(m) != 7 {
		t.Fatalf("fields = %d, want 7", len(m))
	}
	if m["title"].Type != FieldText {
		t.Errorf("title type = %q, want text", m["title"].Type)
	}
	if m["embedding"].Type != FieldKNNVector || m["embedding"].Dimension != 128 {
		t.Errorf("embedding = %+v, want knn_vector/128", m["embedding"])
	}
}

func TestIndexService_CreateDefaults(t *testing.T) {
	var captured *engine.IndexSpec
	eng := &mockEngine{
		createIndexFn: func(_ context.Context, spec *engine.IndexSpec) (bool, error) {
			captured = spec
			return true, nil
		},
	}
	svc := testClient(eng).Indices()

	ack, err := svc.Create(context.Background(), "articles")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !ack {
		t.Error("ack = false, want true")
	}
	if captured.Name != "articles" {
		t.Errorf("name = %q, want articles", captured.Name)
	}
	if captured.Shards != 1 || captured.Replicas != 0 {
		t.Errorf("shards/replicas = %d/%d, want client defaults 1/0", captured.Shards, captured.Replicas)
	}
	if captured.EnableKNN {
		t.Error("knn enabled without WithVectorIndex")
	}
	if captured.Mapping != nil {
		t.Error("empty mapping should send no explicit field typing")
	}
}

func TestIndexService_CreateWithOptions(t *testing.T) {
	var captured *engine.IndexSpec
	eng := &mockEngine{
		createIndexFn: func(_ context.Context, spec *engine.IndexSpec) (bool, error) {
			captured = spec
			return true, nil
		},
	}
	svc := testClient(eng).Indices()

	mapping := NewMapping().Text("title").KNNVectorWithSpace("embedding", 256, "cosinesimil").Build()
	_, err := svc.Create(context.Background(), "vectors",
		WithMapping(mapping),
		WithVectorIndex(),
		WithCreateShards(3),
		WithCreateReplicas(1),
	)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if captured.Shards != 3 || captured.Replicas != 1 {
		t.Errorf("shards/replicas = %d/%d, want 3/1", captured.Shards, captured.Replicas)
	}
	if !captured.EnableKNN {
		t.Error("knn not enabled")
	}

	vec := captured.Mapping["embedding"]
	if vec.Type != engine.PropertyKNNVector || vec.Dimension != 256 {
		t.Errorf("embedding property = %+v, want knn_vector/256", vec)
	}
	if vec.Method == nil || vec.Method.SpaceType != "cosinesimil" {
		t.Errorf("embedding method = %+v, want cosinesimil", vec.Method)
	}
	if captured.Mapping["title"].Type != engine.PropertyText {
		t.Errorf("title property = %+v, want text", captured.Mapping["title"])
	}
}

func TestIndexService_CreateVectorIndex(t *testing.T) {
	var captured *engine.IndexSpec
	eng := &mockEngine{
		createIndexFn: func(_ context.Context, spec *engine.IndexSpec) (bool, error) {
			captured = spec
			return true, nil
		},
	}
	svc := testClient(eng).Indices()

	extra := Mapping{
		"title":     {Type: FieldText},
		"embedding": {Type: FieldText}, // collides with the vector field, must lose
	}
	_, err := svc.CreateVectorIndex(context.Background(), "vectors", "embedding", extra)
	if err != nil {
		t.Fatalf("CreateVectorIndex failed: %v", err)
	}

	if !captured.EnableKNN {
		t.Error("knn not enabled for vector index")
	}
	vec := captured.Mapping["embedding"]
	if vec.Type != engine.PropertyKNNVector {
		t.Errorf("vector field type = %q, want knn_vector", vec.Type)
	}
	if vec.Dimension != 128 {
		t.Errorf("dimension = %d, want client default 128", vec.Dimension)
	}
	if vec.Method == nil || vec.Method.SpaceType != "l2" {
		t.Errorf("method = %+v, want l2", vec.Method)
	}
	if captured.Mapping["title"].Type != engine.PropertyText {
		t.Error("extra field lost")
	}
}

func TestIndexService_Exists(t *testing.T) {
	eng := &mockEngine{
		indexExistsFn: func(_ context.Context, name string) (bool, error) {
			return name == "present", nil
		},
	}
	svc := testClient(eng).Indices()

	ok, err := svc.Exists(context.Background(), "present")
	if err != nil || !ok {
		t.Errorf("Exists(present) = %v, %v, want true, nil", ok, err)
	}
	ok, err = svc.Exists(context.Background(), "absent")
	if err != nil || ok {
		t.Errorf("Exists(absent) = %v, %v, want false, nil", ok, err)
	}
}

func TestIndexService_ExistsErrorIsNotFalse(t *testing.T) {
	wantErr := errors.New("cluster unreachable")
	eng := &mockEngine{
		indexExistsFn: func(_ context.Context, _ string) (bool, error) {
			return false, wantErr
		},
	}
	svc := testClient(eng).Indices()

	_, err := svc.Exists(context.Background(), "any")
	if !errors.Is(err, wantErr) {
		t.Fatalf("probe failure must propagate as error, got %v", err)
	}
}

func TestIndexService_PutTemplate(t *testing.T) {
	var captured *engine.TemplateSpec
	eng := &mockEngine{
		putTemplateFn: func(_ context.Context, spec *engine.TemplateSpec) (bool, error) {
			captured = spec
			return true, nil
		},
	}
	svc := testClient(eng).Indices()

	mapping := NewMapping().Keyword("tenant").Build()
	ack, err := svc.PutTemplate(context.Background(), "logs-template", "logs-*", WithMapping(mapping))
	if err != nil {
		t.Fatalf("PutTemplate failed: %v", err)
	}
	if !ack {
		t.Error("ack = false, want true")
	}
	if captured.Name != "logs-template" || captured.Pattern != "logs-*" {
		t.Errorf("template = %q/%q, want logs-template/logs-*", captured.Name, captured.Pattern)
	}
	if captured.Mapping["tenant"].Type != engine.PropertyKeyword {
		t.Errorf("tenant property = %+v, want keyword", captured.Mapping["tenant"])
	}
}

func TestIndexService_DeleteAndRefresh(t *testing.T) {
	var deleted, refreshed string
	eng := &mockEngine{
		deleteIndexFn: func(_ context.Context, name string) (bool, error) {
			deleted = name
			return true, nil
		},
		refreshFn: func(_ context.Context, name string) error {
			refreshed = name
			return nil
		},
	}
	svc := testClient(eng).Indices()

	if _, err := svc.Delete(context.Background(), "old"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Refresh(context.Background(), "articles"); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if deleted != "old" || refreshed != "articles" {
		t.Errorf("deleted/refreshed = %q/%q, want old/articles", deleted, refreshed)
	}
}

func TestIndexService_SettingsAndMapping(t *testing.T) {
	eng := &mockEngine{
		getSettingsFn: func(_ context.Context, _ string) (map[string]any, error) {
			return map[string]any{"articles": map[string]any{"settings": map[string]any{}}}, nil
		},
		getMappingFn: func(_ context.Context, _ string) (map[string]any, error) {
			return nil, errors.New("mapping unavailable")
		},
	}
	svc := testClient(eng).Indices()

	settings, err := svc.Settings(context.Background(), "articles")
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if _, ok := settings["articles"]; !ok {
		t.Error("settings projection lost")
	}

	if _, err := svc.Mapping(context.Background(), "articles"); err == nil {
		t.Fatal("expected mapping error to propagate")
	}
}
