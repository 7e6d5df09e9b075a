package vectorset

import "time"

// Attributes is the JSON object attached to a vector set element.
// A nil map means the element carries no attributes.
type Attributes map[string]any

// VectorEncoding is how an element's vector is sent to the server.
// It is implemented by Values and RawBlob only.
type VectorEncoding interface {
	vectorArgs() []any
}

// Query selects the reference point of a similarity search.
// It is implemented by Values, RawBlob and ByElement only.
type Query interface {
	queryArgs() []any
}

// Values is a vector given as explicit numeric components.
// It is sent as VALUES <n> <v0> ... <vn-1>.
type Values []float64

// RawBlob is a vector pre-encoded as little-endian float32 components.
// It is sent as FP32 <blob>. Use EncodeFP32 to build one.
type RawBlob []byte

// ByElement searches for neighbours of an element already stored in the set.
type ByElement string

// Quantization selects how the server stores vectors added by VADD.
// The zero value leaves the server default (Q8) in place.
type Quantization string

const (
	QuantizationDefault Quantization = ""
	QuantizationQ8      Quantization = "Q8"
	QuantizationNone    Quantization = "NOQUANT"
	QuantizationBinary  Quantization = "BIN"
)

// Element is a single member to add to a vector set.
type Element struct {
	// Name identifies the element; unique within a key.
	Name string `json:"name"`

	// Vector is the element's embedding.
	Vector VectorEncoding `json:"-"`

	// Attributes is optional JSON metadata usable by search filters.
	Attributes Attributes `json:"attributes,omitempty"`
}

// CreateRequest creates a new vector set from an initial batch of elements.
type CreateRequest struct {
	Key      string    `json:"key"`
	Elements []Element `json:"elements"`

	// TTL, when positive, expires the whole key after the given duration.
	TTL time.Duration `json:"ttl,omitempty"`

	Quantization Quantization `json:"quantization,omitempty"`
}

// ListRequest enumerates element names of a vector set.
type ListRequest struct {
	Key string `json:"key"`

	// Count caps the number of returned names. Zero uses Config.DefaultListCount.
	// The sign is ignored.
	Count int `json:"count"`
}

// ListResult holds the cardinality of a set and up to Count of its element names.
type ListResult struct {
	// Total is the full cardinality of the set and may exceed len(Elements).
	Total    int64    `json:"total"`
	Elements []string `json:"elements"`
}

// DeleteRequest removes elements from a vector set.
type DeleteRequest struct {
	Key   string   `json:"key"`
	Names []string `json:"names"`
}

// SearchRequest is a similarity search against one vector set.
type SearchRequest struct {
	Key   string `json:"key"`
	Query Query  `json:"-"`

	// Count is the maximum number of hits. Zero uses Config.DefaultSearchCount.
	Count int `json:"count"`

	// EF is the optional search exploration factor.
	EF *int `json:"ef,omitempty"`

	// Filter is an optional VSIM filter expression, e.g. `.year > 2000`.
	Filter string `json:"filter,omitempty"`

	WithScores     bool `json:"withScores"`
	WithAttributes bool `json:"withAttributes"`
}

// SearchHit is one element returned by a similarity search.
type SearchHit struct {
	Name string `json:"name"`

	// Score is set only when the request asked for scores.
	Score *float64 `json:"score,omitempty"`

	// Attributes is nil when not requested or when the element has none.
	Attributes Attributes `json:"attributes,omitempty"`
}

// SearchResult lists hits in the order returned by the server (most similar first).
type SearchResult struct {
	Hits           []SearchHit `json:"hits"`
	WithScores     bool        `json:"withScores"`
	WithAttributes bool        `json:"withAttributes"`
}

// Info describes a vector set as reported by VCARD, VDIM and VINFO.
type Info struct {
	Key          string         `json:"key"`
	Cardinality  int64          `json:"cardinality"`
	Dimension    int64          `json:"dimension"`
	Quantization string         `json:"quantization,omitempty"`
	Raw          map[string]any `json:"raw,omitempty"`
}
