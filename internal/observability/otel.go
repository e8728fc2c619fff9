package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"careercompass/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds the custom instruments for CareerCompass
type Metrics struct {
	// AI operations
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Business counters
	AnalysesPerformed metric.Int64Counter
	ChatsHandled      metric.Int64Counter
	TextsExtracted    metric.Int64Counter

	// Knowledge base
	KnowledgeReloads   metric.Int64Counter
	KnowledgeDocuments metric.Int64Gauge

	// Rate limiting
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager owns the OpenTelemetry providers and their lifecycle.
type ObservabilityManager struct {
	config         ObservabilityConfig
	fullConfig     *config.Config // nested settings (OTLP, custom metric toggles)
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
	promMux        *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	om := &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}
	if !obsConfig.Enabled {
		return om, nil
	}

	if err := om.setupTraces(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := om.setupMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return om, nil
}

func (om *ObservabilityManager) setupTraces() error {
	exporter, err := om.traceExporter()
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.buildResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)
	return nil
}

// traceExporter picks the span exporter: console for development, OTLP for
// production, a discarding exporter otherwise.
func (om *ObservabilityManager) traceExporter() (trace.SpanExporter, error) {
	switch {
	case om.config.ConsoleOutput:
		var opts []stdouttrace.Option
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		return stdouttrace.New(opts...)
	case om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled:
		otlpCfg := om.fullConfig.Observability.OTLP
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(otlpCfg.Endpoint)}
		if otlpCfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if len(otlpCfg.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(otlpCfg.Headers))
		}
		return otlptracehttp.New(context.Background(), opts...)
	default:
		return dropSpanExporter{}, nil
	}
}

func (om *ObservabilityManager) setupMetrics() error {
	readers, err := om.metricReaders()
	if err != nil {
		return err
	}

	res, err := om.buildResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	mp := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	return om.buildInstruments()
}

// metricReaders assembles the configured readers. Console, OTLP, and
// Prometheus can all be active at once; with nothing configured a manual
// reader keeps the provider functional.
func (om *ObservabilityManager) metricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if om.config.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(om.collectionInterval())))
	}

	if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		reader, err := om.otlpMetricReader()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics reader: %w", err)
		}
		readers = append(readers, reader)
	}

	if om.config.Prometheus.Enabled {
		reader, mux, err := newPrometheusReader(om.config.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		readers = append(readers, reader)
		om.promMux = mux
		servePrometheus(mux, om.config.Prometheus.Port)
	}

	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}
	return readers, nil
}

func (om *ObservabilityManager) otlpMetricReader() (sdkmetric.Reader, error) {
	otlpCfg := om.fullConfig.Observability.OTLP
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(otlpCfg.Endpoint)}
	if otlpCfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpCfg.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpCfg.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(om.collectionInterval())), nil
}

func (om *ObservabilityManager) buildResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.serviceInstanceID()),
		),
	)
}

// buildInstruments registers every custom instrument on the meter. Creation
// errors are collected rather than aborting on the first, so a bad instrument
// name surfaces alongside any others.
func (om *ObservabilityManager) buildInstruments() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}
	var errs []error

	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
		}
		return c
	}

	var err error
	om.metrics.AIProcessingTime, err = meter.Float64Histogram(
		"careercompass_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		errs = append(errs, fmt.Errorf("create careercompass_ai_processing_duration_seconds: %w", err))
	}
	om.metrics.AITokenUsage, err = meter.Int64Histogram(
		"careercompass_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		errs = append(errs, fmt.Errorf("create careercompass_ai_token_usage_total: %w", err))
	}
	om.metrics.KnowledgeDocuments, err = meter.Int64Gauge(
		"careercompass_knowledge_documents",
		metric.WithDescription("Number of documents currently loaded in the knowledge base"),
	)
	if err != nil {
		errs = append(errs, fmt.Errorf("create careercompass_knowledge_documents: %w", err))
	}

	om.metrics.AIRequestCount = counter("careercompass_ai_requests_total",
		"Total number of AI requests")
	om.metrics.AIErrorCount = counter("careercompass_ai_errors_total",
		"Total number of AI request errors")
	om.metrics.AnalysesPerformed = counter("careercompass_analyses_performed_total",
		"Total number of resume analyses performed")
	om.metrics.ChatsHandled = counter("careercompass_chats_handled_total",
		"Total number of chat messages handled")
	om.metrics.TextsExtracted = counter("careercompass_texts_extracted_total",
		"Total number of file text extractions")
	om.metrics.KnowledgeReloads = counter("careercompass_knowledge_reloads_total",
		"Total number of knowledge base reloads")
	om.metrics.RateLimitHits = counter("careercompass_rate_limit_hits_total",
		"Total number of rate limit hits")

	return errors.Join(errs...)
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // all instruments nil, recording becomes a no-op
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown flushes and stops every registered provider.
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (om *ObservabilityManager) serviceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	return "careercompass-1"
}

func (om *ObservabilityManager) collectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	return 15 * time.Second
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// TrackAIOperationWithTokens wraps an AI call in a span and records duration,
// request/error counts, and token usage for it.
func (m *Metrics) TrackAIOperationWithTokens(ctx context.Context, operation string, fn func(context.Context) *AIOperationResult, om *ObservabilityManager) error {
	if m.AIProcessingTime == nil {
		// Instruments never initialized, run the operation bare.
		if result := fn(ctx); result != nil {
			return result.Error
		}
		return nil
	}

	aiCfg := om.aiMetricsConfig()

	tracer := otel.Tracer("careercompass.ai")
	ctx, span := tracer.Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	if aiCfg.Enabled {
		attrs := []attribute.KeyValue{
			attribute.String("operation", operation),
			attribute.Bool("success", err == nil),
		}
		if aiCfg.TrackDuration {
			m.AIProcessingTime.Record(ctx, duration, metric.WithAttributes(attrs...))
		}
		m.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		if err != nil {
			m.AIErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		m.recordTokenUsage(ctx, result, attrs, aiCfg.TrackTokenUsage, span)
		span.SetAttributes(attrs...)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}
	return err
}

// aiMetricsConfig resolves the AI-operations metric toggles, defaulting to
// everything on when no full config is present.
func (om *ObservabilityManager) aiMetricsConfig() config.AIOperationsMetricsConfig {
	if om.fullConfig == nil {
		return config.AIOperationsMetricsConfig{Enabled: true, TrackDuration: true, TrackTokenUsage: true}
	}
	return om.fullConfig.Observability.CustomMetrics.AIOperations
}

func (m *Metrics) recordTokenUsage(ctx context.Context, result *AIOperationResult, attrs []attribute.KeyValue, track bool, span oteltrace.Span) {
	if result == nil || result.TokenUsage == nil || m.AITokenUsage == nil {
		return
	}
	usage := result.TokenUsage

	if track {
		for _, tt := range []struct {
			kind  string
			value int64
		}{
			{"input", usage.InputTokens},
			{"output", usage.OutputTokens},
			{"total", usage.TotalTokens},
		} {
			tokenAttrs := append(attrs, attribute.String("token_type", tt.kind))
			m.AITokenUsage.Record(ctx, tt.value, metric.WithAttributes(tokenAttrs...))
		}
	}

	// Token counts always go on the span, they are cheap and useful when
	// debugging a single request.
	span.SetAttributes(
		attribute.Int64("ai.tokens.input", usage.InputTokens),
		attribute.Int64("ai.tokens.output", usage.OutputTokens),
		attribute.Int64("ai.tokens.total", usage.TotalTokens),
	)
}

// RecordBusinessMetric increments the counter matching metricType. Knowledge
// base and rate limit events additionally honor the infrastructure toggles.
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.BusinessMetrics.Enabled {
		return
	}

	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)

	var inst metric.Int64Counter
	switch metricType {
	case "analysis_performed":
		inst = m.AnalysesPerformed
	case "chat_handled":
		inst = m.ChatsHandled
	case "text_extracted":
		inst = m.TextsExtracted
	case "knowledge_reload":
		if !om.trackKnowledge() {
			return
		}
		inst = m.KnowledgeReloads
	case "rate_limit_hit":
		if !om.trackRateLimits() {
			return
		}
		inst = m.RateLimitHits
	}

	if inst != nil {
		inst.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordKnowledgeDocuments records the current knowledge base document count
func (m *Metrics) RecordKnowledgeDocuments(ctx context.Context, count int64, om *ObservabilityManager) {
	if om != nil && !om.trackKnowledge() {
		return
	}
	if m.KnowledgeDocuments != nil {
		m.KnowledgeDocuments.Record(ctx, count)
	}
}

func (om *ObservabilityManager) trackKnowledge() bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackKnowledge
}

func (om *ObservabilityManager) trackRateLimits() bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits
}

// dropSpanExporter discards spans when neither console nor OTLP export is
// configured.
type dropSpanExporter struct{}

func (dropSpanExporter) ExportSpans(context.Context, []trace.ReadOnlySpan) error { return nil }

func (dropSpanExporter) Shutdown(context.Context) error { return nil }
