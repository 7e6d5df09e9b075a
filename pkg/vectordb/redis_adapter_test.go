package vectordb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// fakeVectorSets is an in-memory vectorset.Service recording calls.
type fakeVectorSets struct {
	mu       sync.Mutex
	searches []vectorset.SearchRequest
	adds     map[string][][]vectorset.Element
	deletes  []vectorset.DeleteRequest
	info     map[string]*vectorset.Info
	hits     []vectorset.SearchHit
	failKey  string
	keys     []string
}

func newFakeVectorSets() *fakeVectorSets {
	return &fakeVectorSets{
		adds: make(map[string][][]vectorset.Element),
		info: make(map[string]*vectorset.Info),
	}
}

func (f *fakeVectorSets) Create(context.Context, vectorset.CreateRequest) error { return nil }

func (f *fakeVectorSets) AddElements(_ context.Context, key string, elements []vectorset.Element) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds[key] = append(f.adds[key], elements)
	return int64(len(elements)), nil
}

func (f *fakeVectorSets) ListElements(context.Context, vectorset.ListRequest) (*vectorset.ListResult, error) {
	return &vectorset.ListResult{}, nil
}

func (f *fakeVectorSets) DeleteElements(_ context.Context, req vectorset.DeleteRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.info[req.Key]; !ok {
		return 0, fmt.Errorf("%w: key %q", vectorset.ErrNotFound, req.Key)
	}
	f.deletes = append(f.deletes, req)
	return int64(len(req.Names)), nil
}

func (f *fakeVectorSets) Search(_ context.Context, req vectorset.SearchRequest) (*vectorset.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, req)
	if req.Key == f.failKey {
		return nil, errors.New("connection reset")
	}
	return &vectorset.SearchResult{Hits: f.hits, WithScores: true, WithAttributes: true}, nil
}

func (f *fakeVectorSets) GetElementVector(context.Context, string, string) ([]float64, error) {
	return nil, nil
}

func (f *fakeVectorSets) GetElementAttributes(context.Context, string, string) (vectorset.Attributes, error) {
	return nil, nil
}

func (f *fakeVectorSets) SetElementAttributes(context.Context, string, string, vectorset.Attributes) error {
	return nil
}

func (f *fakeVectorSets) Info(_ context.Context, key string) (*vectorset.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.info[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q", vectorset.ErrNotFound, key)
	}
	return info, nil
}

func (f *fakeVectorSets) ListKeys(context.Context, string) ([]string, error) {
	return f.keys, nil
}

func TestAdapter_SearchMapsRequestAndHits(t *testing.T) {
	fake := newFakeVectorSets()
	score := 0.75
	fake.hits = []vectorset.SearchHit{
		{Name: "doc-1", Score: &score, Attributes: vectorset.Attributes{"genre": "drama"}},
	}
	adapter := NewRedisVectorSetAdapter(fake, nil)

	results, err := adapter.Search(context.Background(), SearchRequest{
		CollectionName: "docs",
		Vector:         []float32{1, 0},
		TopK:           5,
		Filters:        NewFilterSet(Must(NewMatch("genre", "drama"))),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0], 1)

	hit := results[0][0]
	assert.Equal(t, "doc-1", hit.ID)
	assert.Equal(t, float32(0.75), hit.Score)
	assert.Equal(t, "drama", hit.Payload["genre"])
	assert.Equal(t, "docs", hit.CollectionName)

	require.Len(t, fake.searches, 1)
	sent := fake.searches[0]
	assert.Equal(t, "docs", sent.Key)
	assert.Equal(t, 5, sent.Count)
	assert.Equal(t, `.genre == "drama"`, sent.Filter)
	assert.True(t, sent.WithScores)
	assert.True(t, sent.WithAttributes)
	assert.Equal(t, vectorset.EncodeFP32([]float32{1, 0}), sent.Query)
}

func TestAdapter_SearchBatchKeepsOrderAndJoinsErrors(t *testing.T) {
	fake := newFakeVectorSets()
	fake.failKey = "broken"
	fake.hits = []vectorset.SearchHit{{Name: "x"}}
	adapter := NewRedisVectorSetAdapter(fake, nil)

	requests := make([]SearchRequest, 0, 25)
	for i := 0; i < 25; i++ {
		key := "docs"
		if i == 7 {
			key = "broken"
		}
		requests = append(requests, SearchRequest{CollectionName: key, Vector: []float32{1}, TopK: 1})
	}
	requests = append(requests, SearchRequest{CollectionName: "docs", Vector: []float32{1}, TopK: 0})

	results, err := adapter.Search(context.Background(), requests...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request [7]")
	assert.Contains(t, err.Error(), "request [25]")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.Len(t, results, 26)
	assert.Nil(t, results[7])
	assert.Nil(t, results[25])
	assert.Len(t, results[0], 1)
	assert.Len(t, results[24], 1)
	assert.Len(t, fake.searches, 25)
}

func TestAdapter_SearchRequiresRequests(t *testing.T) {
	adapter := NewRedisVectorSetAdapter(newFakeVectorSets(), nil)
	_, err := adapter.Search(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdapter_InsertBatches(t *testing.T) {
	fake := newFakeVectorSets()
	adapter := NewRedisVectorSetAdapter(fake, nil)

	inputs := make([]EmbeddingInput, 450)
	for i := range inputs {
		inputs[i] = EmbeddingInput{
			ID:      fmt.Sprintf("p%d", i),
			Vector:  []float32{float32(i), 1},
			Payload: map[string]any{"n": i},
		}
	}

	require.NoError(t, adapter.Insert(context.Background(), "docs", inputs))

	batches := fake.adds["docs"]
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 200)
	assert.Len(t, batches[1], 200)
	assert.Len(t, batches[2], 50)
	assert.Equal(t, "p449", batches[2][49].Name)
	assert.Equal(t, vectorset.Attributes{"n": 449}, batches[2][49].Attributes)
}

func TestAdapter_EnsureCollection(t *testing.T) {
	fake := newFakeVectorSets()
	fake.info["docs"] = &vectorset.Info{Key: "docs", Dimension: 3, Cardinality: 10}
	adapter := NewRedisVectorSetAdapter(fake, nil)
	ctx := context.Background()

	t.Run("existing with matching dimension", func(t *testing.T) {
		assert.NoError(t, adapter.EnsureCollection(ctx, "docs", 3))
	})

	t.Run("existing with other dimension", func(t *testing.T) {
		assert.ErrorIs(t, adapter.EnsureCollection(ctx, "docs", 4), ErrDimensionMismatch)
	})

	t.Run("missing collection enforces dimension on insert", func(t *testing.T) {
		require.NoError(t, adapter.EnsureCollection(ctx, "fresh", 2))

		err := adapter.Insert(ctx, "fresh", []EmbeddingInput{{ID: "a", Vector: []float32{1, 2, 3}}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Empty(t, fake.adds["fresh"])

		require.NoError(t, adapter.Insert(ctx, "fresh", []EmbeddingInput{{ID: "a", Vector: []float32{1, 2}}}))
	})

	t.Run("zero size", func(t *testing.T) {
		assert.ErrorIs(t, adapter.EnsureCollection(ctx, "docs", 0), ErrInvalidInput)
	})
}

func TestAdapter_InsertRejectsMixedDimensions(t *testing.T) {
	adapter := NewRedisVectorSetAdapter(newFakeVectorSets(), nil)

	err := adapter.Insert(context.Background(), "docs", []EmbeddingInput{
		{ID: "a", Vector: []float32{1, 2}},
		{ID: "b", Vector: []float32{1}},
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAdapter_GetCollection(t *testing.T) {
	fake := newFakeVectorSets()
	fake.info["docs"] = &vectorset.Info{Key: "docs", Dimension: 384, Cardinality: 42, Quantization: "int8"}
	adapter := NewRedisVectorSetAdapter(fake, nil)

	col, err := adapter.GetCollection(context.Background(), "docs")
	require.NoError(t, err)
	assert.Equal(t, &Collection{
		Name:         "docs",
		Status:       "green",
		VectorSize:   384,
		Distance:     DistanceCosine,
		VectorCount:  42,
		PointCount:   42,
		Quantization: "int8",
	}, col)

	_, err = adapter.GetCollection(context.Background(), "missing")
	assert.True(t, vectorset.IsNotFound(err))
}

func TestAdapter_Delete(t *testing.T) {
	fake := newFakeVectorSets()
	fake.info["docs"] = &vectorset.Info{Key: "docs"}
	adapter := NewRedisVectorSetAdapter(fake, nil)
	ctx := context.Background()

	require.NoError(t, adapter.Delete(ctx, "docs", []string{"a", "b"}))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, []string{"a", "b"}, fake.deletes[0].Names)

	assert.NoError(t, adapter.Delete(ctx, "missing", []string{"a"}))
	assert.NoError(t, adapter.Delete(ctx, "docs", nil))
	assert.Len(t, fake.deletes, 1)
}

func TestAdapter_ListCollections(t *testing.T) {
	fake := newFakeVectorSets()
	fake.keys = []string{"docs", "faq"}
	adapter := NewRedisVectorSetAdapter(fake, nil)

	keys, err := adapter.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "faq"}, keys)
}
