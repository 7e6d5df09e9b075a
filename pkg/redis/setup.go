package redis

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// RedisClient executes vector set commands on a Redis deployment.
// It wraps a go-redis UniversalClient pinned to RESP2.
//
// RedisClient implements vectorset.Transport.
type RedisClient struct {
	// client is the underlying Redis client
	client redis.UniversalClient

	// id identifies the endpoint for capability caching
	id vectorset.ConnectionID

	// logger is used for structured logging
	logger Logger

	closeOnce sync.Once
	closeErr  error
}

// NewClient creates a client for a standalone Redis server.
//
// Example:
//
//	client, err := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*RedisClient, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Protocol:        protocolVersion,
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxIdleTime: cfg.IdleTimeout,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	r := &RedisClient{
		client: client,
		id:     standaloneID(addr, cfg.DB),
		logger: cfg.Logger,
	}
	r.logInfo("Redis client initialized", map[string]interface{}{"connection": string(r.id)})
	return r, nil
}

// NewClusterClient creates a client for a Redis Cluster deployment.
// Keys of a vector set live on one shard, so every command is routed by key.
func NewClusterClient(cfg ClusterConfig) (*RedisClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("cluster config: no addresses")
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = DefaultClusterMaxRedirects
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	client := redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           cfg.Addrs,
		Protocol:        protocolVersion,
		Username:        cfg.Username,
		Password:        cfg.Password,
		MaxRedirects:    cfg.MaxRedirects,
		ReadOnly:        cfg.ReadOnly,
		PoolSize:        cfg.PoolSize,
		ConnMaxIdleTime: cfg.IdleTimeout,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	r := &RedisClient{
		client: client,
		id:     clusterID(cfg.Addrs),
		logger: cfg.Logger,
	}
	r.logInfo("Redis Cluster client initialized", map[string]interface{}{"connection": string(r.id)})
	return r, nil
}

// NewFailoverClient creates a client for a Sentinel-managed deployment.
func NewFailoverClient(cfg FailoverConfig) (*RedisClient, error) {
	if cfg.MasterName == "" || len(cfg.SentinelAddrs) == 0 {
		return nil, fmt.Errorf("failover config: master name and sentinel addresses are required")
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.MasterName,
		SentinelAddrs:    cfg.SentinelAddrs,
		SentinelUsername: cfg.SentinelUsername,
		SentinelPassword: cfg.SentinelPassword,
		Protocol:         protocolVersion,
		Username:         cfg.Username,
		Password:         cfg.Password,
		DB:               cfg.DB,
		PoolSize:         cfg.PoolSize,
		ConnMaxIdleTime:  cfg.IdleTimeout,
		MaxRetries:       cfg.MaxRetries,
		DialTimeout:      cfg.DialTimeout,
		ReadTimeout:      cfg.ReadTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		TLSConfig:        tlsConfig,
	})

	r := &RedisClient{
		client: client,
		id:     sentinelID(cfg.MasterName, cfg.DB),
		logger: cfg.Logger,
	}
	r.logInfo("Redis Failover client initialized", map[string]interface{}{"connection": string(r.id)})
	return r, nil
}

// NewFromUniversalClient wraps an existing go-redis client. Its options are
// not inspected, so the client gets a random identity and the caller must
// make sure it speaks RESP2.
func NewFromUniversalClient(client redis.UniversalClient) *RedisClient {
	return &RedisClient{
		client: client,
		id:     vectorset.ConnectionID("redis-client://" + uuid.NewString()),
	}
}

func standaloneID(addr string, db int) vectorset.ConnectionID {
	return vectorset.ConnectionID(fmt.Sprintf("redis://%s/%d", addr, db))
}

func clusterID(addrs []string) vectorset.ConnectionID {
	sorted := append([]string(nil), addrs...)
	sort.Strings(sorted)
	return vectorset.ConnectionID("redis-cluster://" + strings.Join(sorted, ","))
}

func sentinelID(master string, db int) vectorset.ConnectionID {
	return vectorset.ConnectionID(fmt.Sprintf("redis-sentinel://%s/%d", master, db))
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	} else if defaultServerName != "" {
		tlsConfig.ServerName = defaultServerName
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// WithLogger sets the logger for this client and returns the client for method chaining.
func (r *RedisClient) WithLogger(logger Logger) *RedisClient {
	r.logger = logger
	return r
}

// Client returns the underlying go-redis client.
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

// Close closes the Redis client and releases all resources.
// Calling it more than once returns the first result.
func (r *RedisClient) Close() error {
	r.closeOnce.Do(func() {
		r.logInfo("Closing Redis client", map[string]interface{}{"connection": string(r.id)})
		if err := r.client.Close(); err != nil {
			r.logWarn("Failed to close Redis client", err)
			r.closeErr = err
		}
	})
	return r.closeErr
}

func (r *RedisClient) logInfo(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, nil, fields)
	}
}

func (r *RedisClient) logWarn(msg string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, err, map[string]interface{}{"connection": string(r.id)})
	}
}
