package vectorset

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client adapts vector set operations onto a Transport.
// It holds no state besides its capability cache and is safe for concurrent use.
//
// Client implements the Service interface.
type Client struct {
	// transport executes commands against the server
	transport Transport

	// cfg stores the resolved configuration for this client
	cfg Config

	// capabilities remembers which connections support range listing
	capabilities *CapabilityCache

	// logger is used for structured logging
	logger Logger

	// recorder receives operation metrics
	recorder Recorder

	// tracer opens a span per operation
	tracer Tracer
}

// NewClient creates a vector set client on top of the given transport.
// Zero values in cfg are replaced by their defaults.
//
// Example:
//
//	transport, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379})
//	if err != nil {
//		return err
//	}
//	client := vectorset.NewClient(transport, vectorset.Config{}).
//		WithLogger(log).
//		WithMetrics(metrics)
//
//	res, err := client.ListElements(ctx, vectorset.ListRequest{Key: "docs", Count: 20})
func NewClient(transport Transport, cfg Config) *Client {
	return &Client{
		transport:    transport,
		cfg:          cfg.withDefaults(),
		capabilities: NewCapabilityCache(),
	}
}

// WithLogger sets the logger for this client and returns the client for method chaining.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithMetrics sets the recorder notified after every operation and capability probe.
func (c *Client) WithMetrics(recorder Recorder) *Client {
	c.recorder = recorder
	return c
}

// WithTracer sets the tracer used to open one span per operation.
func (c *Client) WithTracer(tracer Tracer) *Client {
	c.tracer = tracer
	return c
}

// Capabilities exposes the per-connection capability cache, e.g. to reset it
// after a server upgrade or when a connection is torn down.
func (c *Client) Capabilities() *CapabilityCache {
	return c.capabilities
}

// Config returns the resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// begin starts the instrumentation of one operation. The returned function
// must be called with the operation's error; it classifies that error, ends
// the span, records metrics, logs, and returns the classified error.
func (c *Client) begin(ctx context.Context, operation, key string) (context.Context, func(error) error) {
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSpan(ctx, "vectorset."+operation)
		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("vectorset.key", key),
		)
	}

	return ctx, func(err error) error {
		err = classify(err)

		if span != nil {
			if err != nil && !isDomainMiss(err) {
				c.tracer.RecordErrorOnSpan(span, err)
			}
			span.End()
		}
		if c.recorder != nil {
			c.recorder.ObserveOperation(operation, start, err)
		}
		if err != nil {
			fields := map[string]interface{}{
				"operation": operation,
				"key":       key,
			}
			if isDomainMiss(err) {
				c.logDebug("vector set operation rejected", err, fields)
			} else {
				c.logError("vector set operation failed", err, fields)
			}
		}
		return err
	}
}

// isDomainMiss reports errors that describe the caller's request rather than
// a failure of the server or the network.
func isDomainMiss(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrInvalidRequest)
}

func (c *Client) logDebug(msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, err, fields)
	}
}

func (c *Client) logWarn(msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, err, fields)
	}
}

func (c *Client) logError(msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, err, fields)
	}
}
