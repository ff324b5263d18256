package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiquitav2/user-console/pkg/errors"
)

// Operation tracks one operator action from start to outcome
type Operation struct {
	logger *Logger
	ctx    context.Context
	name   string
	start  time.Time
	attrs  []any
}

// StartOp records the operation name in the returned context and logs the
// start at debug level.
func (l *Logger) StartOp(ctx context.Context, name string, args ...any) (context.Context, *Operation) {
	ctx = WithOperation(ctx, name)
	op := &Operation{
		logger: l,
		ctx:    ctx,
		name:   name,
		start:  time.Now(),
		attrs:  args,
	}

	l.WithContext(ctx).Debug("operation started", args...)
	return ctx, op
}

// Name returns the operation name
func (op *Operation) Name() string { return op.name }

// Context returns the context carrying the operation name
func (op *Operation) Context() context.Context { return op.ctx }

// With adds attributes to every later log line of the operation
func (op *Operation) With(args ...any) *Operation {
	op.attrs = append(op.attrs, args...)
	return op
}

// Complete logs successful completion
func (op *Operation) Complete(msg string, args ...any) {
	if msg == "" {
		msg = "operation completed"
	}
	op.logger.WithContext(op.ctx).Debug(msg, op.fields(args)...)
}

// Fail logs a failed operation. Failures are expected in an interactive
// console, so they are logged at warn level with the error classification.
func (op *Operation) Fail(err error, msg string, args ...any) {
	if msg == "" {
		msg = "operation failed"
	}
	fields := op.fields(args)
	fields = append(fields,
		slog.String("error", err.Error()),
		slog.String("error_domain", errors.GetErrorDomain(err)),
		slog.String("error_code", errors.GetErrorCode(err)),
	)
	if status := errors.StatusCode(err); status != 0 {
		fields = append(fields, slog.Int("status", status))
	}
	op.logger.WithContext(op.ctx).Warn(msg, fields...)
}

// Progress logs an intermediate step at debug level
func (op *Operation) Progress(msg string, args ...any) {
	op.logger.WithContext(op.ctx).Debug(msg, op.fields(args)...)
}

func (op *Operation) fields(args []any) []any {
	fields := make([]any, 0, len(op.attrs)+len(args)+1)
	fields = append(fields, slog.Duration("elapsed", time.Since(op.start)))
	fields = append(fields, op.attrs...)
	return append(fields, args...)
}
