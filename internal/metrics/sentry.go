package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics records request and engine timings as spans on the current
// Sentry transaction. A nil *SentryMetrics records nothing.
type SentryMetrics struct{}

func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{}
}

// finishSpan closes a span that already ran for duration
func finishSpan(ctx context.Context, op, description string, duration time.Duration, ok bool, tags map[string]string) {
	span := sentry.StartSpan(ctx, op)
	span.Description = description
	for k, v := range tags {
		span.SetTag(k, v)
	}
	span.SetData("duration_ms", duration.Milliseconds())
	span.Status = sentry.SpanStatusOK
	if !ok {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Finish()
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	ok := statusCode < http.StatusBadRequest
	finishSpan(ctx, "api.request", "API Request: "+endpoint, duration, ok, map[string]string{
		"endpoint":    endpoint,
		"status_code": strconv.Itoa(statusCode),
		"success":     strconv.FormatBool(ok),
	})
}

// RecordComputation records one engine operation (scale, chords, voicing...)
func (m *SentryMetrics) RecordComputation(ctx context.Context, operation string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	finishSpan(ctx, "engine.compute", "Engine: "+operation, duration, success, map[string]string{
		"operation": operation,
		"success":   strconv.FormatBool(success),
	})
}

// RecordMIDIExport tags the request transaction with the rendered file
func (m *SentryMetrics) RecordMIDIExport(ctx context.Context, exportID string, events, size int) {
	if m == nil {
		return
	}
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("midi.export_id", exportID)
		transaction.SetData("midi.events", events)
		transaction.SetData("midi.bytes", size)
	}
}
