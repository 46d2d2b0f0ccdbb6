package domain

import "time"

// DispatchStatus labels the outcome of a dispatched call.
type DispatchStatus string

const (
	DispatchStatusSuccess DispatchStatus = "success"
	DispatchStatusError   DispatchStatus = "error"
)

// EnvelopeKind labels the shape of an incoming message.
type EnvelopeKind string

const (
	EnvelopeSingle    EnvelopeKind = "single"
	EnvelopeBatch     EnvelopeKind = "batch"
	EnvelopeMalformed EnvelopeKind = "malformed"
)

// DispatchMetric describes one completed dispatch.
type DispatchMetric struct {
	Method   string
	Code     Code
	Status   DispatchStatus
	Duration time.Duration
}

// Metrics is implemented by the telemetry layer. A nil Metrics is always
// acceptable to the components that take one.
type Metrics interface {
	ObserveDispatch(metric DispatchMetric)
	ObserveEnvelope(kind EnvelopeKind, items int)
}
