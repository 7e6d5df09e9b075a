package vectordb

import "context"

// Service is the database-agnostic interface for vector similarity search.
// Applications program against Service and pick a backend at wiring time.
//
// Example usage:
//
//	func NewSearchService(db vectordb.Service) *SearchService {
//	    return &SearchService{db: db}
//	}
//
//	// Backed by Redis vector sets:
//	// - vectordb.NewRedisVectorSetAdapter(vectorsetClient, logger)
type Service interface {
	// Search performs similarity search across one or more requests.
	// Each request can target a different collection with different filters.
	// Returns:
	//   - results: one []SearchResult per request, in request order
	//   - err: per-request errors joined; results of failed requests are nil
	//
	// Example:
	//   results, err := db.Search(ctx,
	//       SearchRequest{CollectionName: "docs", Vector: vec1, TopK: 10},
	//       SearchRequest{CollectionName: "docs", Vector: vec2, TopK: 5, Filters: filters},
	//   )
	Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error)

	// Insert adds or replaces embeddings in a collection, in batches.
	Insert(ctx context.Context, collectionName string, inputs []EmbeddingInput) error

	// Delete removes points by their IDs from a collection.
	Delete(ctx context.Context, collection string, ids []string) error

	// EnsureCollection checks that a collection is usable with vectors of the
	// given size. Safe to call multiple times.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// GetCollection retrieves metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
