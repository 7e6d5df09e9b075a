package vectorset

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Service is the operation surface of a vector set adapter.
// It is implemented by the concrete *Client type.
type Service interface {
	// Create adds the initial elements of a new vector set.
	// It fails with ErrAlreadyExists when the key is present.
	Create(ctx context.Context, req CreateRequest) error

	// AddElements adds or updates elements of a set, creating it when absent.
	// It returns how many elements were newly inserted.
	AddElements(ctx context.Context, key string, elements []Element) (int64, error)

	// ListElements returns the cardinality and up to Count element names.
	ListElements(ctx context.Context, req ListRequest) (*ListResult, error)

	// DeleteElements removes elements by name and returns how many were removed.
	DeleteElements(ctx context.Context, req DeleteRequest) (int64, error)

	// Search runs a similarity search.
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)

	// GetElementVector returns the stored (possibly quantized) vector of an element.
	GetElementVector(ctx context.Context, key, name string) ([]float64, error)

	// GetElementAttributes returns the attributes of an element, nil when it has none.
	GetElementAttributes(ctx context.Context, key, name string) (Attributes, error)

	// SetElementAttributes replaces the attributes of an element.
	// Empty attributes remove them.
	SetElementAttributes(ctx context.Context, key, name string, attrs Attributes) error

	// Info describes a vector set.
	Info(ctx context.Context, key string) (*Info, error)

	// ListKeys returns every vector set key matching the glob pattern.
	// An empty pattern matches all keys.
	ListKeys(ctx context.Context, match string) ([]string, error)
}

// Logger is an interface that matches pkg/logger.Logger
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Recorder receives operation outcomes. It is satisfied by pkg/metrics.Metrics.
type Recorder interface {
	ObserveOperation(operation string, start time.Time, err error)
	ObserveCapabilityProbe(capability string, supported bool)
}

// Tracer opens spans around operations. It is satisfied by pkg/tracer.Tracer.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}
