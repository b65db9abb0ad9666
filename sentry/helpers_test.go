package sentry

import (
	"sync"
	"testing"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

// recordingTransport implements gosentry.Transport by keeping every event in memory.
type recordingTransport struct {
	mu     sync.Mutex
	events []*gosentry.Event
}

func (r *recordingTransport) Flush(_ time.Duration) bool {
	return true
}

func (r *recordingTransport) Configure(_ gosentry.ClientOptions) {}

func (r *recordingTransport) SendEvent(event *gosentry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingTransport) Events() []*gosentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*gosentry.Event, len(r.events))
	copy(events, r.events)
	return events
}

func (r *recordingTransport) EventsOfType(typ string) []*gosentry.Event {
	var filtered []*gosentry.Event
	for _, e := range r.Events() {
		if e.Type == typ {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func newTestConfig() *Config {
	config := NewConfig()
	config.Release = "test"
	config.Environment = "test"
	return config
}

func newTestAdapter(t *testing.T, config *Config, options ...AdapterOption) (*Adapter, *recordingTransport) {
	t.Helper()

	transport := &recordingTransport{}
	options = append([]AdapterOption{WithTransport(transport)}, options...)

	adapter, err := NewAdapter(config, options...)
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	return adapter, transport
}
