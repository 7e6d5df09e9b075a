package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// FXModule is an fx.Module that provides a standalone Redis client as the
// vectorset.Transport.
//
// Usage:
//
//	app := fx.New(
//	    redis.FXModule,
//	    vectorset.FXModule,
//	    fx.Provide(func() redis.Config { return loadRedisConfig() }),
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
		AsTransport,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// ClusterFXModule is an fx.Module for Redis Cluster configuration.
var ClusterFXModule = fx.Module("redis-cluster",
	fx.Provide(
		NewClusterClientWithDI,
		AsTransport,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// FailoverFXModule is an fx.Module for Redis Sentinel (failover) configuration.
var FailoverFXModule = fx.Module("redis-failover",
	fx.Provide(
		NewFailoverClientWithDI,
		AsTransport,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies needed to create a Redis client
type RedisParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewClientWithDI creates a new Redis client using dependency injection.
// The optional logger is injected into the config before delegating to NewClient.
func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}
	return NewClient(params.Config)
}

// ClusterRedisParams groups the dependencies needed to create a Redis Cluster client
type ClusterRedisParams struct {
	fx.In

	Config ClusterConfig
	Logger Logger `optional:"true"`
}

// NewClusterClientWithDI creates a new Redis Cluster client using dependency injection.
func NewClusterClientWithDI(params ClusterRedisParams) (*RedisClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}
	return NewClusterClient(params.Config)
}

// FailoverRedisParams groups the dependencies needed to create a Redis Sentinel client
type FailoverRedisParams struct {
	fx.In

	Config FailoverConfig
	Logger Logger `optional:"true"`
}

// NewFailoverClientWithDI creates a new Redis Sentinel client using dependency injection.
func NewFailoverClientWithDI(params FailoverRedisParams) (*RedisClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}
	return NewFailoverClient(params.Config)
}

// AsTransport exposes the client as the vector set transport.
func AsTransport(client *RedisClient) vectorset.Transport {
	return client
}

// RedisLifecycleParams groups the dependencies needed for Redis lifecycle management
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient
}

// RegisterRedisLifecycle pings the server on start and closes the client on stop.
// A failed ping aborts application startup.
func RegisterRedisLifecycle(params RedisLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				params.Client.logWarn("Failed to ping Redis on startup", err)
				return err
			}
			params.Client.logInfo("Redis client started and healthy", map[string]interface{}{
				"connection": string(params.Client.ConnectionID()),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
