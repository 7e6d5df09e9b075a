package vectorset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSearch_NamesOnly(t *testing.T) {
	res, err := decodeSearch([]any{"a", "b"}, false, false)

	require.NoError(t, err)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "a", res.Hits[0].Name)
	assert.Nil(t, res.Hits[0].Score)
	assert.Nil(t, res.Hits[0].Attributes)
	assert.Equal(t, "b", res.Hits[1].Name)
}

func TestDecodeSearch_ScoresAndAttributes(t *testing.T) {
	raw := []any{
		"a", "0.9", `{"x":1}`,
		"b", "0.5", nil,
	}
	res, err := decodeSearch(raw, true, true)

	require.NoError(t, err)
	require.Len(t, res.Hits, 2)

	require.NotNil(t, res.Hits[0].Score)
	assert.InDelta(t, 0.9, *res.Hits[0].Score, 1e-9)
	assert.Equal(t, Attributes{"x": float64(1)}, res.Hits[0].Attributes)

	require.NotNil(t, res.Hits[1].Score)
	assert.InDelta(t, 0.5, *res.Hits[1].Score, 1e-9)
	assert.Nil(t, res.Hits[1].Attributes)

	assert.True(t, res.WithScores)
	assert.True(t, res.WithAttributes)
}

func TestDecodeSearch_AttributesWithoutScores(t *testing.T) {
	res, err := decodeSearch([]any{"a", []byte(`{"tag":"x"}`)}, false, true)

	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Nil(t, res.Hits[0].Score)
	assert.Equal(t, Attributes{"tag": "x"}, res.Hits[0].Attributes)
}

func TestDecodeSearch_NullReply(t *testing.T) {
	res, err := decodeSearch(nil, true, false)

	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestDecodeSearch_TruncatedReply(t *testing.T) {
	_, err := decodeSearch([]any{"a", "0.9", "b"}, true, false)
	assert.Error(t, err)
}

func TestDecodeSearch_BadScore(t *testing.T) {
	_, err := decodeSearch([]any{"a", "not-a-number"}, true, false)
	assert.Error(t, err)
}

func TestDecodeSearch_StrideInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("n*stride slots decode to n hits with fields matching the flags", prop.ForAll(
		func(n int, withScores, withAttributes bool) bool {
			stride := searchStride(withScores, withAttributes)
			raw := make([]any, 0, n*stride)
			for i := 0; i < n; i++ {
				raw = append(raw, fmt.Sprintf("e%d", i))
				if withScores {
					raw = append(raw, fmt.Sprintf("%d.5", i))
				}
				if withAttributes {
					if i%2 == 0 {
						raw = append(raw, fmt.Sprintf(`{"i":%d}`, i))
					} else {
						raw = append(raw, nil)
					}
				}
			}

			res, err := decodeSearch(raw, withScores, withAttributes)
			if err != nil || len(res.Hits) != n {
				return false
			}
			for i, hit := range res.Hits {
				if hit.Name != fmt.Sprintf("e%d", i) {
					return false
				}
				if (hit.Score != nil) != withScores {
					return false
				}
				if withScores && *hit.Score != float64(i)+0.5 {
					return false
				}
				wantAttrs := withAttributes && i%2 == 0
				if (hit.Attributes != nil) != wantAttrs {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestDecodeVector(t *testing.T) {
	vec, err := decodeVector([]any{"0.5", "-1", []byte("2")})

	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -1, 2}, vec)
}

func TestDecodeVector_NullIsNotFound(t *testing.T) {
	vec, err := decodeVector(nil)

	assert.Nil(t, vec)
	assert.True(t, errors.Is(err, ErrElementNotFound))
	assert.True(t, IsNotFound(err))
}

func TestDecodeAttributes(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    Attributes
		wantErr bool
	}{
		{name: "null", raw: nil, want: nil},
		{name: "empty string", raw: "", want: nil},
		{name: "object", raw: `{"a":"b","n":2}`, want: Attributes{"a": "b", "n": float64(2)}},
		{name: "malformed", raw: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAttributes(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeList(t *testing.T) {
	res, err := decodeList([]Reply{
		{Value: int64(3)},
		{Value: []any{"a", "b"}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, []string{"a", "b"}, res.Elements)
}

func TestDecodeList_NullMembers(t *testing.T) {
	res, err := decodeList([]Reply{{Value: nil}, {Value: nil}})

	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Empty(t, res.Elements)
}

func TestDecodeList_ReplyError(t *testing.T) {
	boom := errors.New("boom")
	_, err := decodeList([]Reply{{Value: int64(1)}, {Err: boom}})

	assert.ErrorIs(t, err, boom)
}

func TestDecodeInfo(t *testing.T) {
	info, err := decodeInfo("k", []Reply{
		{Value: int64(10)},
		{Value: int64(3)},
		{Value: []any{"quant-type", "int8", "size", int64(10), "max-level", int64(2)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "k", info.Key)
	assert.Equal(t, int64(10), info.Cardinality)
	assert.Equal(t, int64(3), info.Dimension)
	assert.Equal(t, "int8", info.Quantization)
	assert.Equal(t, int64(2), info.Raw["max-level"])
}

func TestDecodeScan(t *testing.T) {
	cursor, keys, err := decodeScan([]any{"17", []any{"a", "b"}})

	require.NoError(t, err)
	assert.Equal(t, uint64(17), cursor)
	assert.Equal(t, []string{"a", "b"}, keys)

	_, _, err = decodeScan("nope")
	assert.Error(t, err)
}
