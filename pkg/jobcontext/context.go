package jobcontext

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type KeyContext string

var (
	keyMeetingID KeyContext = "meeting_id"
	keyRequestID KeyContext = "request_id"
	keyStep      KeyContext = "step"
	keyStartTime KeyContext = "start_time"
)

// Begin attaches the meeting and request identifiers to ctx.
// No deadline is added: only the audio fetch step is time-bounded.
func Begin(parentCtx context.Context, meetingID, requestID string) context.Context {
	ctx := context.WithValue(parentCtx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// WithStep records the pipeline step currently executing
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, keyStep, step)
}

// GetMeetingID extracts meeting ID from context
func GetMeetingID(ctx context.Context) string {
	id, _ := ctx.Value(keyMeetingID).(string)
	return id
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// GetStep extracts the current step from context
func GetStep(ctx context.Context) string {
	step, _ := ctx.Value(keyStep).(string)
	return step
}

// Elapsed returns the time since Begin, or zero if Begin was never called
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// Logger returns base annotated with the identifiers found in ctx
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := make([]zap.Field, 0, 3)
	if id := GetMeetingID(ctx); id != "" {
		fields = append(fields, zap.String("meeting_id", id))
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if step := GetStep(ctx); step != "" {
		fields = append(fields, zap.String("step", step))
	}
	return base.With(fields...)
}
