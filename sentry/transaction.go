package sentry

import (
	"context"
	"runtime/debug"

	gosentry "github.com/getsentry/sentry-go"
)

// Transaction starts a transaction with the given name and operation and measures body with it.
// When ctx already carries a transaction, a child span is measured instead.
//
// The error returned by body, or a *PanicError when body panics, is recorded on the transaction and returned.
func (c *Context) Transaction(ctx context.Context, name, operation string, body func(span *gosentry.Span) error) error {
	if !gosentry.HasHubOnContext(ctx) {
		ctx = gosentry.SetHubOnContext(ctx, c.adapter.Hub())
	}

	var span *gosentry.Span
	if gosentry.TransactionFromContext(ctx) != nil {
		span = gosentry.StartSpan(ctx, operation)
		span.Description = name
	} else {
		span = gosentry.StartTransaction(ctx, name, gosentry.WithOpName(operation))
	}

	return c.Measure(span, body)
}

// Measure runs body and finishes the given span whatever the outcome.
// A failed body marks the span with the internal error status and records the cause.
func (c *Context) Measure(span *gosentry.Span, body func(span *gosentry.Span) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}

		if err != nil {
			span.Status = gosentry.SpanStatusInternalError
			span.SetData("error", err.Error())
		} else if span.Status == gosentry.SpanStatusUndefined {
			span.Status = gosentry.SpanStatusOK
		}

		span.Finish()
	}()

	return body(span)
}
