package vectordb

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// CollectionName is the target collection to search in
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding to find similar vectors for
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results to return
	TopK int `json:"maxResults"`

	// Filters is optional metadata filtering (AND/OR/NOT logic)
	Filters *FilterSet `json:"filters,omitempty"`
}

// SearchResult represents a single search result with its similarity score.
type SearchResult struct {
	ID string `json:"id"`

	// Score is the similarity score, 1 for identical direction and 0 for opposite.
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector
	Payload map[string]any `json:"payload"`

	// CollectionName identifies which collection this result came from
	CollectionName string `json:"collectionName,omitempty"`
}

// EmbeddingInput is the input for inserting vectors into a collection.
type EmbeddingInput struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`

	// Payload is optional metadata to store with the vector
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	Name string `json:"name"`

	// Status is always "green" for a collection that exists.
	Status string `json:"status"`

	// VectorSize is the dimension of vectors in this collection
	VectorSize int `json:"vectorSize"`

	// Distance is the similarity metric. Vector sets always use cosine.
	Distance string `json:"distance"`

	VectorCount uint64 `json:"vectorCount"`
	PointCount  uint64 `json:"pointCount"`

	// Quantization is the storage type reported by the server (e.g. "int8").
	Quantization string `json:"quantization,omitempty"`
}
