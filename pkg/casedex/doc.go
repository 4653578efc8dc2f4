// Package casedex provides an embedded Go client for the casedex case
// study retrieval core, backed by Redis with the search module.
//
// The client runs the whole retrieval pipeline in-process: category
// extraction from a free-text business question, profile embedding,
// vector similarity ranking and attribute fallback matching.
//
//	client, _ := casedex.New(ctx,
//	    casedex.WithRedis("localhost:6379", ""),
//	    casedex.WithOpenAIEmbedding(apiKey, baseURL, "bge-m3", 1024),
//	    casedex.WithOpenAIChat(apiKey, baseURL, "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	res, _ := client.Query(ctx, "How should a SaaS startup fight churn?")
//	for _, cs := range res.CaseStudies {
//	    fmt.Println(cs.Title, cs.Score)
//	}
package casedex
