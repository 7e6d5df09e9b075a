package tracer

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"serviceName" envconfig:"TRACER_SERVICE_NAME" default:"vectorset"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `yaml:"appEnv" envconfig:"TRACER_APP_ENV" default:"development"`

	// EnableExport sends spans to an OTLP/HTTP collector. When false spans
	// are still created and propagated but never leave the process.
	EnableExport bool `yaml:"enableExport" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the collector address (host:port). When empty the
	// standard OTEL_EXPORTER_OTLP_* environment variables apply.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}
