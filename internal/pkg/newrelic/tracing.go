package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	nrecho "github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Nil-tolerant wrappers around the agent API. The application runs with the
// agent disabled in local and test environments, so every helper accepts a
// nil transaction.

// FromEchoContext returns the transaction the nrecho middleware attached to
// the request, or nil when the agent is disabled.
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext returns the transaction carried in ctx, if any. Used in
// usecases and other layers below the HTTP handlers.
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartSegment opens a timing segment on txn, or returns nil when there is
// no transaction to attach it to.
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// SetTransactionName overrides the transaction name.
func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

// AddTransactionAttribute attaches a custom attribute to txn.
func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeTransactionError records err against txn.
func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// WithSegment runs fn inside a segment on the transaction carried in ctx.
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	segment := StartSegment(FromContext(ctx), segmentName)
	if segment != nil {
		defer segment.End()
	}
	return fn()
}
