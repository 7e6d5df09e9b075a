// Package redis provides the Redis transport for vector set clients.
//
// RedisClient wraps a go-redis client (standalone, cluster or Sentinel) and
// implements vectorset.Transport: single commands through Execute, batches
// through one pipeline in ExecuteBatch, and a stable ConnectionID derived from
// the endpoint so that capability probes are remembered per deployment.
//
// Connections are pinned to RESP2. Vector set replies such as VSIM WITHSCORES
// then arrive as flat arrays with textual scores, which is the layout the
// vectorset decoder expects.
//
// Basic Usage:
//
//	transport, err := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//	})
//	if err != nil {
//		return err
//	}
//	defer transport.Close()
//
//	client := vectorset.NewClient(transport, vectorset.Config{})
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		redis.FXModule, // or ClusterFXModule / FailoverFXModule
//		vectorset.FXModule,
//		fx.Provide(
//			func() redis.Config { return redis.Config{Host: "localhost"} },
//			func() vectorset.Config { return vectorset.Config{} },
//		),
//	)
//
// Connection identity:
//
//	redis://host:port/db              standalone
//	redis-cluster://a:1,b:2,c:3       cluster, seed addresses sorted
//	redis-sentinel://master/db        Sentinel
//	redis-client://<uuid>             NewFromUniversalClient
package redis
