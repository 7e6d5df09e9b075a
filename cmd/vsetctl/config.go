package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/vectorset/pkg/logger"
	"github.com/Aleph-Alpha/vectorset/pkg/metrics"
	"github.com/Aleph-Alpha/vectorset/pkg/redis"
	"github.com/Aleph-Alpha/vectorset/pkg/tracer"
	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// Config is the complete vsetctl configuration.
type Config struct {
	Redis     redis.Config     `yaml:"redis" ignored:"true"`
	VectorSet vectorset.Config `yaml:"vectorset" ignored:"true"`
	Logger    logger.Config    `yaml:"logger" ignored:"true"`
	Tracer    tracer.Config    `yaml:"tracer" ignored:"true"`
	Metrics   metrics.Config   `yaml:"metrics" ignored:"true"`

	// MetricsEnabled starts the /metrics server for the duration of the command.
	MetricsEnabled bool `yaml:"metricsEnabled" envconfig:"METRICS_ENABLED"`
}

// loadConfig reads .env (if present), then the environment, then overlays
// the YAML file at path when path is not empty.
func loadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	// Sections are processed one by one so their own variable names apply
	// without a prefix.
	cfg := &Config{}
	sections := []any{&cfg.Redis, &cfg.VectorSet, &cfg.Logger, &cfg.Tracer, &cfg.Metrics}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
