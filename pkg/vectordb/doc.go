// Package vectordb provides a database-agnostic vector search API and its
// implementation on Redis vector sets.
//
// Applications depend on Service. RedisVectorSetAdapter implements it over a
// vectorset.Service: collections are vector set keys, point IDs are element
// names, payloads are element attributes, and vectors travel as FP32 blobs.
//
// Filters:
//
// FilterSet expresses Must (AND), Should (OR) and MustNot (NOT) clauses over
// payload fields. CompileFilter turns it into the VSIM FILTER language:
//
//	filters := vectordb.NewFilterSet(
//		vectordb.Must(
//			vectordb.NewMatch("status", "published"),
//			vectordb.NewNumericRange("year", vectordb.NumericRange{Gte: &from}),
//		),
//		vectordb.Should(
//			vectordb.NewMatch("tag", "ml"),
//			vectordb.NewMatch("tag", "ai"),
//		),
//	)
//	// ((.status == "published") and (.year >= 2020)) and ((.tag == "ml") or (.tag == "ai"))
//
// Field names must be plain identifiers. Booleans compile to 1 and 0, times
// to Unix seconds.
//
// Searching:
//
//	results, err := db.Search(ctx,
//		vectordb.SearchRequest{CollectionName: "docs", Vector: q1, TopK: 10, Filters: filters},
//		vectordb.SearchRequest{CollectionName: "faq", Vector: q2, TopK: 3},
//	)
//
// Requests run concurrently, up to ten at a time. results[i] answers
// requests[i]; failed requests leave a nil slot and their errors are joined.
//
// FX Module Integration:
//
//	app := fx.New(
//		redis.FXModule,
//		vectorset.FXModule,
//		vectordb.FXModule,
//	)
package vectordb
