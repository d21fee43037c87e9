package metrics

import (
	"context"
	"time"
)

// Recorder fans engine metrics out to Sentry and CloudWatch. Either side may
// be nil.
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client
}

// NewRecorder combines the two metric sinks.
func NewRecorder(s *SentryMetrics, cw *Client) *Recorder {
	return &Recorder{sentry: s, cloudwatch: cw}
}

// RecordAPIRequest records a finished HTTP request.
func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

// RecordComputation records one engine operation.
func (r *Recorder) RecordComputation(ctx context.Context, operation string, duration time.Duration, success bool) {
	if r == nil {
		return
	}
	r.sentry.RecordComputation(ctx, operation, duration, success)
	r.cloudwatch.RecordComputation(operation, duration, success)
}

// RecordMIDIExport records a rendered MIDI file.
func (r *Recorder) RecordMIDIExport(ctx context.Context, exportID string, events, size int) {
	if r == nil {
		return
	}
	r.sentry.RecordMIDIExport(ctx, exportID, events, size)
	r.cloudwatch.RecordMIDIExport(events, size)
}
