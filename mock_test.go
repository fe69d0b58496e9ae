package osdex

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex/internal/engine"
)

// mockEngine implements engine.Engine with per-call function fields.
// Unset functions fail the call so tests only wire what they exercise.
type mockEngine struct {
	searchFn         func(ctx context.Context, req *engine.SearchRequest) (*engine.SearchResult, error)
	bulkFn           func(ctx context.Context, req *engine.BulkRequest) (*engine.BulkResult, error)
	indexDocFn       func(ctx context.Context, index, id string, doc map[string]any) error
	createIndexFn    func(ctx context.Context, spec *engine.IndexSpec) (bool, error)
	deleteIndexFn    func(ctx context.Context, name string) (bool, error)
	indexExistsFn    func(ctx context.Context, name string) (bool, error)
	putMappingFn     func(ctx context.Context, name string, props map[string]engine.Property) (bool, error)
	putTemplateFn    func(ctx context.Context, spec *engine.TemplateSpec) (bool, error)
	deleteTemplateFn func(ctx context.Context, name string) (bool, error)
	getSettingsFn    func(ctx context.Context, name string) (map[string]any, error)
	getMappingFn     func(ctx context.Context, name string) (map[string]any, error)
	refreshFn        func(ctx context.Context, name string) error
}

func (m *mockEngine) Ping(context.Context) error { return nil }
func (m *mockEngine) Close()                     {}

func (m *mockEngine) Search(ctx context.Context, req *engine.SearchRequest) (*engine.SearchResult, error) {
	return m.searchFn(ctx, req)
}

func (m *mockEngine) Bulk(ctx context.Context, req *engine.BulkRequest) (*engine.BulkResult, error) {
	return m.bulkFn(ctx, req)
}

func (m *mockEngine) IndexDoc(ctx context.Context, index, id string, doc map[string]any) error {
	return m.indexDocFn(ctx, index, id, doc)
}

func (m *mockEngine) CreateIndex(ctx context.Context, spec *engine.IndexSpec) (bool, error) {
	return m.createIndexFn(ctx, spec)
}

func (m *mockEngine) DeleteIndex(ctx context.Context, name string) (bool, error) {
	return m.deleteIndexFn(ctx, name)
}

func (m *mockEngine) IndexExists(ctx context.Context, name string) (bool, error) {
	return m.indexExistsFn(ctx, name)
}

func (m *mockEngine) PutMapping(
	ctx context.Context, name string, props map[string]engine.Property,
) (bool, error) {
	return m.putMappingFn(ctx, name, props)
}

func (m *mockEngine) PutIndexTemplate(ctx context.Context, spec *engine.TemplateSpec) (bool, error) {
	return m.putTemplateFn(ctx, spec)
}

func (m *mockEngine) DeleteIndexTemplate(ctx context.Context, name string) (bool, error) {
	return m.deleteTemplateFn(ctx, name)
}

func (m *mockEngine) GetIndexSettings(ctx context.Context, name string) (map[string]any, error) {
	return m.getSettingsFn(ctx, name)
}

func (m *mockEngine) GetIndexMapping(ctx context.Context, name string) (map[string]any, error) {
	return m.getMappingFn(ctx, name)
}

func (m *mockEngine) RefreshIndex(ctx context.Context, name string) error {
	return m.refreshFn(ctx, name)
}

// --- helpers ---

func testObserver() *observer {
	return &observer{logger: zap.NewNop()}
}

func testClient(eng engine.Engine) *Client {
	return &Client{
		eng: eng,
		cfg: defaultConfig(),
		obs: testObserver(),
		log: zap.NewNop(),
	}
}
