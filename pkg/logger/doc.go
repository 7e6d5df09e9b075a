// Package logger provides structured logging built on zap.
//
// Entries are JSON with ISO8601 timestamps, the caller, and pid/service as
// initial fields. Every method takes a message, an optional error, and any
// number of field maps, which is the signature expected by the Logger
// interfaces of the vectorset and redis packages.
//
// Basic Usage:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "vsetctl",
//		EnableTracing: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	log.Info("Listing vector set", nil, map[string]interface{}{
//		"key":   "docs",
//		"count": 20,
//	})
//
//	// trace_id and span_id are added when ctx carries a span
//	log.ErrorWithContext(ctx, "Search failed", err, nil)
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(
//			func() logger.Config { return logger.Config{Level: "debug"} },
//			func(l *logger.Logger) vectorset.Logger { return l },
//		),
//	)
//
// Configuration:
//
//	ZAP_LOGGER_LEVEL=debug             # debug, info, warning, error
//	SERVICE_NAME=vsetctl               # "service" field
//	ZAP_LOGGER_ENABLE_TRACING=true     # trace/span IDs in ...WithContext methods
//
// Thread Safety:
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
