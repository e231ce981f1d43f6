package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	ReferralTotal    metric.Int64Counter
	AppointmentTotal metric.Int64Counter
	UserTotal        metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal metric.Int64Counter
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/MenteSana-Clinic/intake-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	referralTotal, err := meter.Int64Counter(
		"referral_total",
		metric.WithDescription("Total number of referral operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	appointmentTotal, err := meter.Int64Counter(
		"appointment_total",
		metric.WithDescription("Total number of appointment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	userTotal, err := meter.Int64Counter(
		"user_total",
		metric.WithDescription("Total number of user operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPDurationMs:    httpDurationMs,
		ReferralTotal:     referralTotal,
		AppointmentTotal:  appointmentTotal,
		UserTotal:         userTotal,
		AuthFailuresTotal: authFailuresTotal,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordReferralOperation records a referral operation metric
func (m *Metrics) RecordReferralOperation(ctx context.Context, operation string) {
	m.ReferralTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAppointmentOperation records an appointment operation metric
func (m *Metrics) RecordAppointmentOperation(ctx context.Context, operation string) {
	m.AppointmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordUserOperation records a user operation metric
func (m *Metrics) RecordUserOperation(ctx context.Context, operation string) {
	m.UserTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
