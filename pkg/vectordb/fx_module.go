package vectordb

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// FXModule provides a Service backed by Redis vector sets.
// It requires a vectorset.Service, normally from vectorset.FXModule.
var FXModule = fx.Module("vectordb",
	fx.Provide(
		NewRedisVectorSetAdapterWithDI,
		func(a *RedisVectorSetAdapter) Service { return a },
	),
)

// AdapterParams groups the dependencies for creating the adapter.
type AdapterParams struct {
	fx.In

	Client vectorset.Service
	Logger vectorset.Logger `optional:"true"`
}

// NewRedisVectorSetAdapterWithDI creates the adapter from injected dependencies.
func NewRedisVectorSetAdapterWithDI(params AdapterParams) *RedisVectorSetAdapter {
	return NewRedisVectorSetAdapter(params.Client, params.Logger)
}
