package sentry

import (
	"sync"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

var now = time.Now

// Context keeps track of the breadcrumbs of a single unit of work, such as one inbound Discord event,
// and submits them along with every capture.
//
// Use Adapter.NewContext to create one, and Copy to hand a derived Context to another unit of work.
type Context struct {
	adapter *Adapter

	mu          sync.Mutex
	breadcrumbs []*gosentry.Breadcrumb
}

// CaptureOption defines a function signature for the functional options of the capture methods.
type CaptureOption func(*captureOptions)

type captureOptions struct {
	contexts map[string]gosentry.Context
	scope    func(*gosentry.Scope)
}

// WithContext creates a CaptureOption that attaches a named context to the submission.
// Values other than gosentry.Context are stored under the "value" key.
func WithContext(key string, value interface{}) CaptureOption {
	return func(options *captureOptions) {
		switch v := value.(type) {
		case gosentry.Context:
			options.contexts[key] = v
		default:
			options.contexts[key] = gosentry.Context{"value": v}
		}
	}
}

// WithScope creates a CaptureOption that lets the caller customize the submission scope
// after the capture, the contexts and the breadcrumbs are applied.
func WithScope(fnc func(scope *gosentry.Scope)) CaptureOption {
	return func(options *captureOptions) {
		options.scope = fnc
	}
}

// Adapter returns the Adapter this Context belongs to.
func (c *Context) Adapter() *Adapter {
	return c.adapter
}

// Breadcrumb registers a breadcrumb of the given type, letting body populate it.
// The breadcrumb is kept only when the Adapter's predicates accept it.
func (c *Context) Breadcrumb(typ BreadcrumbType, body func(capture *BreadcrumbCapture)) {
	breadcrumb := &gosentry.Breadcrumb{Timestamp: now()}
	capture := newBreadcrumbCapture(typ)

	c.adapter.setCaptureTypes(capture.base())

	if body != nil {
		body(capture)
	}

	capture.apply(breadcrumb)

	if !c.adapter.checkPredicates(capture) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.breadcrumbs = append(c.breadcrumbs, breadcrumb)
}

// Breadcrumbs returns a snapshot of the recorded breadcrumbs in arrival order.
func (c *Context) Breadcrumbs() []*gosentry.Breadcrumb {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]*gosentry.Breadcrumb, len(c.breadcrumbs))
	copy(snapshot, c.breadcrumbs)
	return snapshot
}

// Copy returns a new Context with the same Adapter and its own copy of the breadcrumb list.
func (c *Context) Copy() *Context {
	return &Context{
		adapter:     c.adapter,
		breadcrumbs: c.Breadcrumbs(),
	}
}

// CaptureEvent submits the given event with this Context's breadcrumbs.
func (c *Context) CaptureEvent(event *gosentry.Event, body func(capture *ScopeCapture), options ...CaptureOption) *gosentry.EventID {
	return submit(c, newScopeCapture(KindEvent), body, options, func(hub *gosentry.Hub, _ *ScopeCapture) *gosentry.EventID {
		return hub.CaptureEvent(event)
	})
}

// CaptureException submits the given error with this Context's breadcrumbs.
func (c *Context) CaptureException(err error, body func(capture *ExceptionCapture), options ...CaptureOption) *gosentry.EventID {
	return submit(c, newExceptionCapture(err), body, options, func(hub *gosentry.Hub, capture *ExceptionCapture) *gosentry.EventID {
		return hub.CaptureException(capture.Err)
	})
}

// CaptureFeedback submits the given user feedback with this Context's breadcrumbs.
// Feedback IDs are not remembered, so feedback cannot be given on feedback.
func (c *Context) CaptureFeedback(feedback *Feedback, body func(capture *ScopeCapture), options ...CaptureOption) *gosentry.EventID {
	return submit(c, newScopeCapture(KindFeedback), body, options, func(hub *gosentry.Hub, _ *ScopeCapture) *gosentry.EventID {
		return hub.CaptureEvent(feedback.event())
	})
}

// CaptureMessage submits the given message with this Context's breadcrumbs.
func (c *Context) CaptureMessage(message string, body func(capture *ScopeCapture), options ...CaptureOption) *gosentry.EventID {
	return submit(c, newScopeCapture(KindMessage), body, options, func(hub *gosentry.Hub, _ *ScopeCapture) *gosentry.EventID {
		return hub.CaptureMessage(message)
	})
}

// submit runs the protocol shared by every capture kind:
// the body populates the capture, the predicates gate it, and an accepted capture is sent exactly once
// inside a fresh scope carrying the breadcrumbs and extra contexts.
func submit[C Capture](c *Context, capture C, body func(C), options []CaptureOption, send func(*gosentry.Hub, C) *gosentry.EventID) *gosentry.EventID {
	c.adapter.setCaptureTypes(capture.base())

	if body != nil {
		body(capture)
	}

	if !c.adapter.checkPredicates(capture) {
		return nil
	}

	if !c.adapter.Enabled() {
		return nil
	}

	opts := &captureOptions{contexts: map[string]gosentry.Context{}}
	for _, opt := range options {
		opt(opts)
	}

	breadcrumbs := c.Breadcrumbs()
	limit := c.adapter.maxBreadcrumbs()

	var id *gosentry.EventID
	c.adapter.hub.WithScope(func(scope *gosentry.Scope) {
		capture.applyScope(scope)

		for key, value := range opts.contexts {
			scope.SetContext(key, value)
		}

		for _, breadcrumb := range breadcrumbs {
			b := *breadcrumb
			scope.AddBreadcrumb(&b, limit)
		}

		if opts.scope != nil {
			opts.scope(scope)
		}

		id = send(c.adapter.hub, capture)
	})

	if id != nil && capture.Kind() != KindFeedback {
		c.adapter.AddEventID(*id)
	}

	return id
}
