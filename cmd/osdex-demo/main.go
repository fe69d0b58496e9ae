package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/osdex"
	"github.com/kailas-cloud/osdex/internal/config"
	"github.com/kailas-cloud/osdex/internal/embed"
	logpkg "github.com/kailas-cloud/osdex/internal/logger"
	"github.com/kailas-cloud/osdex/internal/version"
)

const (
	articlesIndex = "demo-articles"
	vectorsIndex  = "demo-vectors"
	vectorField   = "embedding"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting osdex demo",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("opensearch", cfg.OpenSearch.Host),
		zap.Int("port", cfg.OpenSearch.Port),
	)

	client, err := osdex.New(
		osdex.WithScheme(cfg.OpenSearch.Scheme),
		osdex.WithAddress(cfg.OpenSearch.Host, cfg.OpenSearch.Port),
		osdex.WithConnectTimeout(time.Duration(cfg.OpenSearch.ConnectTimeoutMS)*time.Millisecond),
		osdex.WithRequestTimeout(time.Duration(cfg.OpenSearch.RequestTimeoutMS)*time.Millisecond),
		osdex.WithShards(cfg.OpenSearch.NumberOfShards),
		osdex.WithReplicas(cfg.OpenSearch.NumberOfReplicas),
		osdex.WithKNNDefaults(cfg.OpenSearch.KNNDimension, cfg.OpenSearch.KNNSpaceType),
		osdex.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("Failed to create client", zap.Error(err))
	}
	defer client.Close()

	ctx := context.Background()

	if !client.TestConnection(ctx) {
		logger.Error("Failed to connect to OpenSearch. Make sure OpenSearch is running.")
		logger.Error("Run: docker compose up -d")
		os.Exit(1)
	}

	if err := runFullTextDemo(ctx, client, logger); err != nil {
		logger.Fatal("Full-text demo failed", zap.Error(err))
	}
	vectorize := newVectorizer(cfg, logger)
	if err := runVectorDemo(ctx, client, vectorize, cfg.OpenSearch.KNNDimension, logger); err != nil {
		logger.Fatal("Vector demo failed", zap.Error(err))
	}
	if err := cleanup(ctx, client, logger); err != nil {
		logger.Fatal("Cleanup failed", zap.Error(err))
	}

	logger.Info("Demo completed successfully")
}

func runFullTextDemo(ctx context.Context, client *osdex.Client, logger *zap.Logger) error {
	logger.Info("--- Full Text Search Demo ---")

	if err := recreateIndex(ctx, client, articlesIndex, logger); err != nil {
		return err
	}
	mapping := osdex.NewMapping().
		Text("title").
		Text("content").
		Keyword("category").
		Build()
	if _, err := client.Indices().Create(ctx, articlesIndex, osdex.WithMapping(mapping)); err != nil {
		return err
	}

	logger.Info("Indexing sample articles")
	articles := []map[string]any{
		{
			"title":    "Introduction to OpenSearch",
			"content":  "OpenSearch is a powerful open-source search and analytics engine.",
			"category": "technology",
		},
		{
			"title":    "Full-Text Search Guide",
			"content":  "Learn how to implement full-text search with OpenSearch queries.",
			"category": "tutorial",
		},
		{
			"title":    "Vector Search Basics",
			"content":  "Vector search enables semantic similarity matching using embeddings.",
			"category": "technology",
		},
	}
	docs := client.Documents(articlesIndex)
	for _, article := range articles {
		if err := docs.Index(ctx, uuid.NewString(), article); err != nil {
			return err
		}
	}
	if err := client.Indices().Refresh(ctx, articlesIndex); err != nil {
		return err
	}

	search := client.Search(articlesIndex)

	res, err := search.Match(ctx, "content", "search engine")
	if err != nil {
		return err
	}
	printResult("match query", res, logger)

	res, err = search.Bool(ctx,
		[]osdex.Query{osdex.Match("content", "search")},
		nil,
		[]osdex.Query{osdex.Match("category", "tutorial")},
	)
	if err != nil {
		return err
	}
	printResult("bool query", res, logger)

	res, err = search.Fuzzy(ctx, "title", "opensearch", "AUTO")
	if err != nil {
		return err
	}
	printResult("fuzzy query", res, logger)

	res, err = search.WithHighlight(ctx, "content", "OpenSearch")
	if err != nil {
		return err
	}
	printResult("highlight query", res, logger)
	for _, hit := range res.Hits {
		for field, fragments := range hit.Highlights() {
			logger.Info("Highlight",
				zap.String("id", hit.ID),
				zap.String("field", field),
				zap.Strings("fragments", fragments),
			)
		}
	}
	return nil
}

// vectorizer turns demo text into a vector: an embedding provider when an
// API key is configured, random vectors otherwise.
type vectorizer func(ctx context.Context, text string) ([]float32, error)

func newVectorizer(cfg config.Config, logger *zap.Logger) vectorizer {
	if cfg.Embedding.APIKey == "" {
		logger.Info("No embedding API key configured, using random vectors")
		dimension := cfg.OpenSearch.KNNDimension
		return func(context.Context, string) ([]float32, error) {
			return randomVector(dimension), nil
		}
	}

	embedder := embed.New(&embed.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	logger.Info("Using embedding provider", zap.String("model", cfg.Embedding.Model))
	return embedder.Embed
}

func runVectorDemo(
	ctx context.Context, client *osdex.Client, vectorize vectorizer, dimension int, logger *zap.Logger,
) error {
	logger.Info("--- Vector Search (k-NN) Demo ---")

	if err := recreateIndex(ctx, client, vectorsIndex, logger); err != nil {
		return err
	}
	extra := osdex.Mapping{
		"title":    {Type: osdex.FieldText},
		"category": {Type: osdex.FieldKeyword},
	}
	if _, err := client.Indices().CreateVectorIndex(ctx, vectorsIndex, vectorField, extra); err != nil {
		return err
	}

	logger.Info("Indexing sample vectors", zap.Int("dimension", dimension))
	categories := []string{"science", "technology", "science", "history", "technology"}
	docs := make([]osdex.VectorDocument, len(categories))
	for i, category := range categories {
		title := "Document " + string(rune('A'+i))
		vec, err := vectorize(ctx, title)
		if err != nil {
			return err
		}
		docs[i] = osdex.VectorDocument{
			ID:     uuid.NewString(),
			Vector: vec,
			Metadata: map[string]any{
				"title":    title,
				"category": category,
			},
		}
	}

	vectors := client.Vectors(vectorsIndex)
	bulk, err := vectors.BulkIndex(ctx, vectorField, docs)
	if err != nil {
		return err
	}
	logger.Info("Bulk indexing finished",
		zap.Int("took_ms", bulk.Took),
		zap.Bool("errors", bulk.HasErrors),
	)
	if err := client.Indices().Refresh(ctx, vectorsIndex); err != nil {
		return err
	}

	query, err := vectorize(ctx, "science document")
	if err != nil {
		return err
	}

	res, err := vectors.KNNSearch(ctx, vectorField, query, 3)
	if err != nil {
		return err
	}
	printResult("knn query", res, logger)

	res, err = vectors.KNNSearchWithFilter(ctx, vectorField, query, 3,
		osdex.Match("category", "science"))
	if err != nil {
		return err
	}
	printResult("filtered knn query", res, logger)
	return nil
}

func cleanup(ctx context.Context, client *osdex.Client, logger *zap.Logger) error {
	logger.Info("--- Cleanup Demo Indices ---")

	for _, name := range []string{articlesIndex, vectorsIndex} {
		exists, err := client.Indices().Exists(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if _, err := client.Indices().Delete(ctx, name); err != nil {
			return err
		}
		logger.Info("Deleted index", zap.String("index", name))
	}
	return nil
}

// recreateIndex drops the index if a previous run left it behind.
func recreateIndex(ctx context.Context, client *osdex.Client, name string, logger *zap.Logger) error {
	exists, err := client.Indices().Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("Deleting leftover index", zap.String("index", name))
		if _, err := client.Indices().Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func printResult(label string, res *osdex.Result, logger *zap.Logger) {
	logger.Info("Search results",
		zap.String("query", label),
		zap.Int64("total", res.Total),
		zap.String("relation", string(res.Relation)),
	)
	for i, hit := range res.Hits {
		logger.Info("Hit",
			zap.Int("rank", i+1),
			zap.String("id", hit.ID),
			zap.Float64("score", hit.Score),
			zap.ByteString("source", hit.Source),
		)
	}
}

func randomVector(dimension int) []float32 {
	vec := make([]float32, dimension)
	for i := range vec {
		vec[i] = rand.Float32()
	}
	return vec
}
