package vectordb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

const (
	defaultBatchSize      = 200 // elements per AddElements call
	maxConcurrentSearches = 10

	// DistanceCosine is the only metric vector sets support.
	DistanceCosine = "Cosine"

	statusGreen = "green"
)

// RedisVectorSetAdapter implements Service on top of Redis vector sets.
//
// Collections map to vector set keys, points to elements, payloads to
// element attributes. Vectors are sent as FP32 blobs. A vector set cannot
// exist without elements, so EnsureCollection on a missing key only records
// the expected dimension and the key appears with the first Insert.
type RedisVectorSetAdapter struct {
	client vectorset.Service
	logger vectorset.Logger

	mu   sync.RWMutex
	dims map[string]uint64
}

var _ Service = (*RedisVectorSetAdapter)(nil)

// NewRedisVectorSetAdapter wraps a vector set client. logger may be nil.
func NewRedisVectorSetAdapter(client vectorset.Service, logger vectorset.Logger) *RedisVectorSetAdapter {
	return &RedisVectorSetAdapter{
		client: client,
		logger: logger,
		dims:   make(map[string]uint64),
	}
}

// Search runs every request concurrently, at most ten at a time. Results keep
// request order; a failed request leaves a nil entry and contributes its
// error to the joined error.
func (a *RedisVectorSetAdapter) Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: at least one search request is required", ErrInvalidInput)
	}

	results := make([][]SearchResult, len(requests))
	errs := make([]error, len(requests))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSearches)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			res, err := a.search(ctx, req)
			if err != nil {
				errs[i] = fmt.Errorf("request [%d]: %w", i, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

func (a *RedisVectorSetAdapter) search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if err := validateSearchInput(req); err != nil {
		return nil, err
	}
	filter, err := CompileFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Search(ctx, vectorset.SearchRequest{
		Key:            req.CollectionName,
		Query:          vectorset.EncodeFP32(req.Vector),
		Count:          req.TopK,
		Filter:         filter,
		WithScores:     true,
		WithAttributes: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := SearchResult{
			ID:             hit.Name,
			Payload:        map[string]any(hit.Attributes),
			CollectionName: req.CollectionName,
		}
		if hit.Score != nil {
			r.Score = float32(*hit.Score)
		}
		out = append(out, r)
	}
	return out, nil
}

// Insert adds or replaces points in batches of 200.
func (a *RedisVectorSetAdapter) Insert(ctx context.Context, collectionName string, inputs []EmbeddingInput) error {
	if collectionName == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidInput)
	}
	if len(inputs) == 0 {
		return nil
	}
	if err := a.checkDimensions(collectionName, inputs); err != nil {
		return err
	}

	var added int64
	for start := 0; start < len(inputs); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(inputs))

		elements := make([]vectorset.Element, 0, end-start)
		for _, in := range inputs[start:end] {
			elements = append(elements, vectorset.Element{
				Name:       in.ID,
				Vector:     vectorset.EncodeFP32(in.Vector),
				Attributes: vectorset.Attributes(in.Payload),
			})
		}

		n, err := a.client.AddElements(ctx, collectionName, elements)
		added += n
		if err != nil {
			return fmt.Errorf("insert batch [%d:%d]: %w", start, end, err)
		}
	}

	a.logInfo("inserted points", map[string]interface{}{
		"collection": collectionName,
		"points":     len(inputs),
		"new":        added,
	})
	return nil
}

// Delete removes points by ID. Deleting from a missing collection is a no-op.
func (a *RedisVectorSetAdapter) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := a.client.DeleteElements(ctx, vectorset.DeleteRequest{Key: collection, Names: ids})
	if vectorset.IsNotFound(err) {
		return nil
	}
	return err
}

// EnsureCollection verifies an existing collection has vectorSize dimensions.
// For a missing collection it remembers vectorSize and Insert enforces it.
func (a *RedisVectorSetAdapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if vectorSize == 0 {
		return fmt.Errorf("%w: vector size must be positive", ErrInvalidInput)
	}

	info, err := a.client.Info(ctx, name)
	switch {
	case vectorset.IsNotFound(err):
		a.logInfo("collection does not exist yet, it will be created on first insert", map[string]interface{}{
			"collection":  name,
			"vector_size": vectorSize,
		})
	case err != nil:
		return err
	case uint64(info.Dimension) != vectorSize:
		return fmt.Errorf("%w: collection %q has %d dimensions, want %d",
			ErrDimensionMismatch, name, info.Dimension, vectorSize)
	}

	a.mu.Lock()
	a.dims[name] = vectorSize
	a.mu.Unlock()
	return nil
}

// GetCollection describes a collection from VCARD, VDIM and VINFO.
func (a *RedisVectorSetAdapter) GetCollection(ctx context.Context, name string) (*Collection, error) {
	info, err := a.client.Info(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Collection{
		Name:         name,
		Status:       statusGreen,
		VectorSize:   int(info.Dimension),
		Distance:     DistanceCosine,
		VectorCount:  uint64(info.Cardinality),
		PointCount:   uint64(info.Cardinality),
		Quantization: info.Quantization,
	}, nil
}

// ListCollections returns every vector set key.
func (a *RedisVectorSetAdapter) ListCollections(ctx context.Context) ([]string, error) {
	return a.client.ListKeys(ctx, "")
}

func (a *RedisVectorSetAdapter) checkDimensions(collection string, inputs []EmbeddingInput) error {
	a.mu.RLock()
	want, ok := a.dims[collection]
	a.mu.RUnlock()
	if !ok {
		want = uint64(len(inputs[0].Vector))
	}

	for i, in := range inputs {
		if uint64(len(in.Vector)) != want {
			return fmt.Errorf("%w: input [%d] %q has %d dimensions, want %d",
				ErrDimensionMismatch, i, in.ID, len(in.Vector), want)
		}
	}
	return nil
}

func (a *RedisVectorSetAdapter) logInfo(msg string, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.Info(msg, nil, fields)
	}
}

func validateSearchInput(req SearchRequest) error {
	switch {
	case req.CollectionName == "":
		return fmt.Errorf("%w: collection name is required", ErrInvalidInput)
	case len(req.Vector) == 0:
		return fmt.Errorf("%w: query vector is empty", ErrInvalidInput)
	case req.TopK <= 0:
		return fmt.Errorf("%w: topK must be positive, got %d", ErrInvalidInput, req.TopK)
	}
	return nil
}
