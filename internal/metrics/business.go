package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Status labels used by the use case decorators.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records use case calls by domain ("user", "auth", "assessment"),
// operation name and outcome status.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// AssessmentMetrics counts completed questionnaires by kind and resulting level or tier.
type AssessmentMetrics interface {
	RecordAssessment(ctx context.Context, kind, outcome string)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates the operation counter and duration histogram.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func operationAttrs(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, operationAttrs(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), operationAttrs(domain, operation, status))
}

type assessmentMetrics struct {
	counter metric.Int64Counter
}

// NewAssessmentMetrics creates the assessment outcome counter.
func NewAssessmentMetrics(meterProvider metric.MeterProvider, namespace string) (AssessmentMetrics, error) {
	counter, err := meterProvider.Meter(namespace).Int64Counter(
		fmt.Sprintf("%s_assessments_total", namespace),
		metric.WithDescription("Completed assessments by kind and outcome"),
		metric.WithUnit("{assessment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment counter: %w", err)
	}
	return &assessmentMetrics{counter: counter}, nil
}

func (a *assessmentMetrics) RecordAssessment(ctx context.Context, kind, outcome string) {
	a.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

// NoOpBusinessMetrics discards everything. It is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

// RecordAssessment lets NoOpBusinessMetrics stand in for AssessmentMetrics as well.
func (n *NoOpBusinessMetrics) RecordAssessment(ctx context.Context, kind, outcome string) {}
