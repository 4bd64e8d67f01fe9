package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"indicatorcli/internal/dataprocessing"
	"indicatorcli/internal/infrastructure"
)

const (
	TracerName = "indicatorcli.operations"
)

// OperationTracer provides OpenTelemetry instrumentation for group runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.CombineMetrics
}

// NewOperationTracer creates a tracer backed by the configured providers
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	metrics, err := infrastructure.CreateCombineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create combine metrics: %w", err)
	}

	return &OperationTracer{
		tracer:  providers.TracerProvider.Tracer(TracerName),
		metrics: metrics,
	}, nil
}

// NoopOperationTracer records nothing
func NoopOperationTracer() *OperationTracer {
	// instruments of the noop meter never fail to build
	metrics, _ := infrastructure.CreateCombineMetrics(metricnoop.NewMeterProvider().Meter(TracerName))
	return &OperationTracer{
		tracer:  tracenoop.NewTracerProvider().Tracer(TracerName),
		metrics: metrics,
	}
}

// StartGroup opens the span covering one group run
func (ot *OperationTracer) StartGroup(ctx context.Context, group dataprocessing.Group, sourceDir string) (context.Context, trace.Span) {
	return ot.tracer.Start(ctx, "combine.group."+group.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("combine.group", group.String()),
			attribute.String("combine.source_dir", sourceDir),
			attribute.String("combine.run_id", infrastructure.GetTraceID(ctx)),
		),
	)
}

// FileProcessed records one handled source as a span event and a counter increment
func (ot *OperationTracer) FileProcessed(ctx context.Context, result dataprocessing.FileResult) {
	attrs := []attribute.KeyValue{
		attribute.String("file", result.Name),
		attribute.String("kind", result.Kind.String()),
		attribute.String("status", string(result.Status)),
		attribute.Int("rows", result.Rows),
	}
	if result.Err != nil {
		attrs = append(attrs, attribute.String("error", result.Err.Error()))
	}
	infrastructure.AddSpanEvent(ctx, "file.processed", attrs...)

	ot.metrics.FilesProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("group", result.Group.String()),
		attribute.String("status", string(result.Status)),
	))
}

// EndGroup records the outcome of a group run and closes its span
func (ot *OperationTracer) EndGroup(ctx context.Context, span trace.Span, report GroupReport, err error) {
	group := metric.WithAttributes(attribute.String("group", report.Group.String()))

	ot.metrics.GroupDuration.Record(ctx, report.Duration.Seconds(), group)
	if err != nil {
		ot.metrics.GroupErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("group", report.Group.String()),
			attribute.String("type", string(GetErrorType(err))),
		))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		ot.metrics.RowsEmitted.Add(ctx, int64(report.Rows), group)
		ot.metrics.CellsFilled.Add(ctx, int64(report.Fill.FilledCells), group)
		span.SetStatus(codes.Ok, "")
	}

	span.SetAttributes(
		attribute.String("combine.state", string(report.State)),
		attribute.Int("combine.files.merged", report.Summary.Merged),
		attribute.Int("combine.files.skipped", report.Summary.Skipped),
		attribute.Int("combine.files.failed", report.Summary.Failed),
		attribute.Int("combine.rows", report.Rows),
	)
	span.End()
}
