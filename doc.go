// Package osdex provides a Go client facade for OpenSearch-compatible
// search engines: typed query composition, full-text and k-NN vector
// search, bulk vector indexing and index lifecycle management.
//
// The connection is established lazily on first use and shared by every
// service; Close releases it.
//
//	client, _ := osdex.New(
//	    osdex.WithAddress("localhost", 9200),
//	    osdex.WithLogger(logger),
//	)
//	defer client.Close()
//
//	client.Indices().Create(ctx, "articles",
//	    osdex.WithMapping(osdex.NewMapping().
//	        Text("title").
//	        Keyword("category").
//	        Build()),
//	)
//
//	res, _ := client.Search("articles").Match(ctx, "title", "opensearch")
//	for _, doc := range res.Documents() {
//	    // doc is the raw payload in hit order
//	}
//
// Vector workloads go through the Vectors service:
//
//	client.Vectors("embeddings").BulkIndex(ctx, "embedding", docs)
//	res, _ := client.Vectors("embeddings").KNNSearch(ctx, "embedding", queryVec, 10)
package osdex
