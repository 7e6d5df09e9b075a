package vectorset

import (
	"context"

	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides the vector set client.
// It needs a Transport (see pkg/redis) and a Config; a Logger, Recorder and
// Tracer are attached when present in the container.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    redis.FXModule,
//	    vectorset.FXModule,
//	    fx.Provide(func() vectorset.Config { return vectorset.Config{} }),
//	)
var FXModule = fx.Module("vectorset",
	fx.Provide(
		NewClientWithDI,
		func(c *Client) Service { return c },
	),
	fx.Invoke(RegisterVectorSetLifecycle),
)

// VectorSetParams groups the dependencies needed to create a Client
type VectorSetParams struct {
	fx.In

	Transport Transport
	Config    Config
	Logger    Logger   `optional:"true"`
	Recorder  Recorder `optional:"true"`
	Tracer    Tracer   `optional:"true"`
}

// NewClientWithDI creates a Client using dependency injection.
func NewClientWithDI(params VectorSetParams) *Client {
	c := NewClient(params.Transport, params.Config)
	if params.Logger != nil {
		c.WithLogger(params.Logger)
	}
	if params.Recorder != nil {
		c.WithMetrics(params.Recorder)
	}
	if params.Tracer != nil {
		c.WithTracer(params.Tracer)
	}
	return c
}

// VectorSetLifecycleParams groups the dependencies needed for lifecycle management
type VectorSetLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
}

// RegisterVectorSetLifecycle drops cached capabilities on shutdown, since the
// connections they describe are closed with the transport.
func RegisterVectorSetLifecycle(params VectorSetLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Client.Capabilities().Clear()
			return nil
		},
	})
}
