// Package telemetry provides support for per-request trace ids.
package telemetry

import (
	"context"

	"github.com/jrazmi/taskline/sdk/cryptids"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is reported when a context carries no trace id.
const NoTrace = "--------NOTRACE--------"

type Telemetry struct{}

// NewTelemetry creates a new telemetry instance
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a freshly generated trace id in ctx.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, NoTrace)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTrace
	}

	return v
}
