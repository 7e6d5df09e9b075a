package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the logger configuration.
type Config struct {
	// Level is one of debug, info, warning, error.
	// Default: info
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	// Default: "vectorset"
	ServiceName string `yaml:"serviceName" envconfig:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// ...WithContext methods when the context carries a sampled span.
	EnableTracing bool `yaml:"enableTracing" envconfig:"ZAP_LOGGER_ENABLE_TRACING"`
}

// DefaultServiceName is used when Config.ServiceName is empty.
const DefaultServiceName = "vectorset"
