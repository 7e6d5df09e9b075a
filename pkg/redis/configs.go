package redis

import "time"

// Config defines the configuration for a standalone Redis server that hosts
// vector sets. Vector sets need Redis 8.0 or the vector-sets module; range
// listing needs a build that ships VRANGE, older ones are detected at runtime.
type Config struct {
	// Host is the Redis server hostname or IP address
	// Default: "localhost"
	Host string `yaml:"host" envconfig:"REDIS_HOST"`

	// Port is the Redis server port
	// Default: 6379
	Port int `yaml:"port" envconfig:"REDIS_PORT"`

	// Username is the Redis username for ACL authentication (Redis 6.0+)
	Username string `yaml:"username" envconfig:"REDIS_USERNAME"`

	// Password is the Redis password for authentication
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`

	// DB is the Redis database number to use
	// Default: 0
	DB int `yaml:"db" envconfig:"REDIS_DB"`

	// PoolSize is the maximum number of socket connections
	// Default: 10 per CPU
	PoolSize int `yaml:"poolSize" envconfig:"REDIS_POOL_SIZE"`

	// MinIdleConns is the minimum number of idle connections kept open
	MinIdleConns int `yaml:"minIdleConns" envconfig:"REDIS_MIN_IDLE_CONNS"`

	// MaxRetries is the maximum number of retries before giving up
	// Default: 3
	MaxRetries int `yaml:"maxRetries" envconfig:"REDIS_MAX_RETRIES"`

	// DialTimeout is the timeout for establishing new connections
	// Default: 5 seconds
	DialTimeout time.Duration `yaml:"dialTimeout" envconfig:"REDIS_DIAL_TIMEOUT"`

	// ReadTimeout is the timeout for socket reads
	// Default: 3 seconds
	ReadTimeout time.Duration `yaml:"readTimeout" envconfig:"REDIS_READ_TIMEOUT"`

	// WriteTimeout is the timeout for socket writes
	// Default: ReadTimeout
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"REDIS_WRITE_TIMEOUT"`

	// IdleTimeout is the amount of time after which idle connections are closed
	// Default: 5 minutes
	IdleTimeout time.Duration `yaml:"idleTimeout" envconfig:"REDIS_IDLE_TIMEOUT"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `yaml:"tls"`

	// Logger is an optional logger from pkg/logger
	Logger Logger `yaml:"-" ignored:"true"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool `yaml:"enabled" envconfig:"REDIS_TLS_ENABLED"`

	// CACertPath is the file path to the CA certificate for verifying the server
	CACertPath string `yaml:"caCertPath" envconfig:"REDIS_TLS_CA_CERT_PATH"`

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string `yaml:"clientCertPath" envconfig:"REDIS_TLS_CLIENT_CERT_PATH"`

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string `yaml:"clientKeyPath" envconfig:"REDIS_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `yaml:"insecureSkipVerify" envconfig:"REDIS_TLS_INSECURE_SKIP_VERIFY"`

	// ServerName is used to verify the hostname on the returned certificates
	// If empty, the Host from the main config is used
	ServerName string `yaml:"serverName" envconfig:"REDIS_TLS_SERVER_NAME"`
}

// ClusterConfig defines the configuration for Redis Cluster mode.
type ClusterConfig struct {
	// Addrs is a seed list of cluster nodes
	Addrs []string `yaml:"addrs" envconfig:"REDIS_CLUSTER_ADDRS"`

	Username string `yaml:"username" envconfig:"REDIS_USERNAME"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`

	// MaxRedirects is the maximum number of retries for MOVED/ASK redirects
	// Default: 3
	MaxRedirects int `yaml:"maxRedirects" envconfig:"REDIS_CLUSTER_MAX_REDIRECTS"`

	// ReadOnly enables read-only commands on replica nodes
	ReadOnly bool `yaml:"readOnly" envconfig:"REDIS_CLUSTER_READ_ONLY"`

	PoolSize     int           `yaml:"poolSize" envconfig:"REDIS_POOL_SIZE"`
	MaxRetries   int           `yaml:"maxRetries" envconfig:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dialTimeout" envconfig:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"REDIS_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idleTimeout" envconfig:"REDIS_IDLE_TIMEOUT"`

	TLS TLSConfig `yaml:"tls"`

	Logger Logger `yaml:"-" ignored:"true"`
}

// FailoverConfig defines the configuration for Redis Sentinel (failover) mode.
type FailoverConfig struct {
	// MasterName is the name of the master instance as configured in Sentinel
	MasterName string `yaml:"masterName" envconfig:"REDIS_SENTINEL_MASTER_NAME"`

	// SentinelAddrs is a list of Sentinel node addresses
	// Example: []string{"localhost:26379", "localhost:26380", "localhost:26381"}
	SentinelAddrs []string `yaml:"sentinelAddrs" envconfig:"REDIS_SENTINEL_ADDRS"`

	SentinelUsername string `yaml:"sentinelUsername" envconfig:"REDIS_SENTINEL_USERNAME"`
	SentinelPassword string `yaml:"sentinelPassword" envconfig:"REDIS_SENTINEL_PASSWORD"`

	Username string `yaml:"username" envconfig:"REDIS_USERNAME"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`

	PoolSize     int           `yaml:"poolSize" envconfig:"REDIS_POOL_SIZE"`
	MaxRetries   int           `yaml:"maxRetries" envconfig:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dialTimeout" envconfig:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"REDIS_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idleTimeout" envconfig:"REDIS_IDLE_TIMEOUT"`

	TLS TLSConfig `yaml:"tls"`

	Logger Logger `yaml:"-" ignored:"true"`
}

// Logger is an interface that matches pkg/logger.Logger
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultHost                = "localhost"
	DefaultPort                = 6379
	DefaultMaxRetries          = 3
	DefaultDialTimeout         = 5 * time.Second
	DefaultReadTimeout         = 3 * time.Second
	DefaultIdleTimeout         = 5 * time.Minute
	DefaultClusterMaxRedirects = 3

	// protocolVersion pins RESP2 so vector set replies arrive as flat arrays.
	protocolVersion = 2
)
