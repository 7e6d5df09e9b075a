package redis

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

var (
	_ vectorset.Transport  = (*RedisClient)(nil)
	_ vectorset.KeyScanner = (*RedisClient)(nil)
)

// Execute sends a single command. A null reply is returned as (nil, nil).
func (r *RedisClient) Execute(ctx context.Context, cmd vectorset.Command) (any, error) {
	if len(cmd) == 0 {
		return nil, ErrEmptyCommand
	}
	val, err := r.client.Do(ctx, cmd...).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// ExecuteBatch sends all commands in one pipeline and returns their replies in
// order. Error replies from the server are reported per command; the returned
// error is set only when the pipeline itself failed.
func (r *RedisClient) ExecuteBatch(ctx context.Context, cmds []vectorset.Command) ([]vectorset.Reply, error) {
	if len(cmds) == 0 {
		return []vectorset.Reply{}, nil
	}
	for _, cmd := range cmds {
		if len(cmd) == 0 {
			return nil, ErrEmptyCommand
		}
	}

	pipe := r.client.Pipeline()
	results := make([]*redis.Cmd, len(cmds))
	for i, cmd := range cmds {
		results[i] = pipe.Do(ctx, cmd...)
	}

	if _, err := pipe.Exec(ctx); err != nil && !isServerReply(err) {
		return nil, err
	}

	replies := make([]vectorset.Reply, len(results))
	for i, res := range results {
		val, err := res.Result()
		if errors.Is(err, redis.Nil) {
			val, err = nil, nil
		}
		replies[i] = vectorset.Reply{Value: val, Err: err}
	}
	return replies, nil
}

// ScanKeys walks the keyspace with SCAN ... TYPE keyType and returns every
// matching key. On a cluster every master is scanned, since a SCAN cursor
// only covers the node it was issued on.
func (r *RedisClient) ScanKeys(ctx context.Context, match, keyType string, batch int) ([]string, error) {
	cluster, ok := r.client.(*redis.ClusterClient)
	if !ok {
		return scanNode(ctx, r.client, match, keyType, batch)
	}

	var (
		mu   sync.Mutex
		keys []string
	)
	err := cluster.ForEachMaster(ctx, func(ctx context.Context, shard *redis.Client) error {
		page, err := scanNode(ctx, shard, match, keyType, batch)
		if err != nil {
			return err
		}
		mu.Lock()
		keys = append(keys, page...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func scanNode(ctx context.Context, node redis.Cmdable, match, keyType string, batch int) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		page, next, err := node.ScanType(ctx, cursor, match, int64(batch), keyType).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, page...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// ConnectionID identifies the endpoint this client talks to.
func (r *RedisClient) ConnectionID() vectorset.ConnectionID {
	return r.id
}

// Ping checks that the server is reachable.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// isServerReply reports whether err is an error reply sent by the server,
// as opposed to a network or client-side failure.
func isServerReply(err error) bool {
	var redisErr redis.Error
	return errors.As(err, &redisErr)
}
