// Command vsetctl inspects and queries Redis vector sets.
//
//	vsetctl [-config file.yaml] list <key> [-count N]
//	vsetctl [-config file.yaml] search <key> (-element NAME | -vector 0.1,0.2,...) [-count N] [-ef N] [-filter EXPR] [-attrs]
//	vsetctl [-config file.yaml] info <key>
//	vsetctl [-config file.yaml] keys [-match PATTERN]
//
// Results are printed to stdout as JSON. Connection settings come from the
// REDIS_* environment variables (or .env), optionally overridden by the
// config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorset/pkg/logger"
	"github.com/Aleph-Alpha/vectorset/pkg/metrics"
	"github.com/Aleph-Alpha/vectorset/pkg/redis"
	"github.com/Aleph-Alpha/vectorset/pkg/tracer"
	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

const startStopTimeout = 15 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "vsetctl:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("vsetctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "path to a YAML configuration file")
	if err := global.Parse(args); err != nil {
		return err
	}

	cmd, err := parseCommand(global.Args(), stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	var svc vectorset.Service
	app := fx.New(appOptions(cfg, fx.Populate(&svc))...)

	startCtx, cancel := context.WithTimeout(context.Background(), startStopTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), startStopTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	result, err := cmd(context.Background(), svc)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// appOptions assembles the fx graph for one command invocation.
func appOptions(cfg *Config, extra ...fx.Option) []fx.Option {
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg.Redis, cfg.VectorSet, cfg.Logger, cfg.Tracer),
		logger.FXModule,
		tracer.FXModule,
		redis.FXModule,
		vectorset.FXModule,
		fx.Provide(
			func(l *logger.Logger) vectorset.Logger { return l },
			func(l *logger.Logger) redis.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(l *logger.Logger) metrics.Logger { return l },
		),
	}
	if cfg.MetricsEnabled {
		opts = append(opts, fx.Supply(cfg.Metrics), metrics.FXModule)
	}
	return append(opts, extra...)
}
