package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// FXModule provides *Tracer and binds it to vectorset.Tracer.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewTracerWithDI,
		func(t *Tracer) vectorset.Tracer { return t },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies for creating a Tracer.
type TracerParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewTracerWithDI creates a Tracer from injected dependencies.
func NewTracerWithDI(params TracerParams) (*Tracer, error) {
	return NewClient(params.Config, params.Logger)
}

// RegisterTracerLifecycle flushes and shuts down the provider on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("shutting down tracer...", nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}
