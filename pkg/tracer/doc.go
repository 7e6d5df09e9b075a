// Package tracer provides OpenTelemetry tracing for vector set operations.
//
// A Tracer owns a TracerProvider. Passed to vectorset.Client.WithTracer (or
// bound through FXModule), it creates one "vectorset.<operation>" span per
// client call and marks spans failed for server and network errors.
//
// Basic Usage:
//
//	t, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "vsetctl",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer t.Shutdown(context.Background())
//
//	ctx, span := t.StartSpan(ctx, "import-batch")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"batch.size": 500})
//
// Propagation:
//
// GetCarrier and SetCarrierOnContext move W3C trace context across process
// boundaries as a plain header map.
//
// Configuration:
//
//	TRACER_SERVICE_NAME=vsetctl
//	TRACER_APP_ENV=production
//	TRACER_ENABLE_EXPORT=true
//	TRACER_ENDPOINT=otel-collector:4318
//	TRACER_INSECURE=true
package tracer
