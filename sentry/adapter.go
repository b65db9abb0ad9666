package sentry

import (
	"fmt"
	"sync"
	"time"

	gosentry "github.com/getsentry/sentry-go"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/patrickmn/go-cache"
)

// Predicate decides whether a populated capture may be submitted.
type Predicate func(capture Capture) bool

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithTransport creates an AdapterOption that makes the SDK client deliver events through the given transport.
// An injected transport enables reporting even when Config.DSN is empty.
func WithTransport(transport gosentry.Transport) AdapterOption {
	return func(adapter *Adapter) {
		adapter.transport = transport
	}
}

// WithPredicate creates an AdapterOption that registers the given Predicate.
func WithPredicate(predicate Predicate) AdapterOption {
	return func(adapter *Adapter) {
		adapter.predicates = append(adapter.predicates, predicate)
	}
}

// Adapter owns the Sentry hub and the settings shared by every Context.
//
// A nil *Adapter is usable: it never submits anything, accepts every capture and records no Discord entities.
type Adapter struct {
	config    *Config
	transport gosentry.Transport
	hub       *gosentry.Hub
	enabled   bool
	eventIDs  *cache.Cache
	idMu      sync.Mutex

	mu         sync.RWMutex
	predicates []Predicate
}

// NewAdapter creates a new Adapter with the given Config and options.
func NewAdapter(config *Config, options ...AdapterOption) (*Adapter, error) {
	if config == nil {
		return nil, ErrNilConfig
	}

	adapter := &Adapter{
		config: config,
	}

	for _, opt := range options {
		opt(adapter)
	}

	client, err := gosentry.NewClient(gosentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		Debug:            config.Debug,
		EnableTracing:    config.TracesSampleRate > 0,
		TracesSampleRate: config.TracesSampleRate,
		MaxBreadcrumbs:   config.MaxBreadcrumbs,
		Transport:        adapter.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Sentry client: %w", err)
	}

	ttl := config.EventIDTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	adapter.hub = gosentry.NewHub(client, gosentry.NewScope())
	adapter.enabled = config.DSN != "" || adapter.transport != nil
	adapter.eventIDs = cache.New(ttl, 10*time.Minute)

	if !adapter.enabled {
		logger.Infof("Sentry DSN is not set. Error reporting is disabled.")
	}

	return adapter, nil
}

// Enabled tells whether captures are submitted at all.
func (a *Adapter) Enabled() bool {
	return a != nil && a.enabled
}

// Hub returns the hub used for submissions. A nil Adapter falls back to the SDK's current hub.
func (a *Adapter) Hub() *gosentry.Hub {
	if a == nil {
		return gosentry.CurrentHub()
	}
	return a.hub
}

// CaptureTypes returns the configured capture types.
func (a *Adapter) CaptureTypes() CaptureTypes {
	if a == nil {
		return CaptureTypes{}
	}
	return a.config.CaptureTypes
}

// AddPredicate registers a Predicate that every later capture must satisfy.
func (a *Adapter) AddPredicate(predicate Predicate) {
	if a == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.predicates = append(a.predicates, predicate)
}

// NewContext creates an empty Context bound to this Adapter.
func (a *Adapter) NewContext() *Context {
	return &Context{adapter: a}
}

// AddEventID remembers the given event ID so that feedback can refer to it.
func (a *Adapter) AddEventID(id gosentry.EventID) {
	if a == nil || id == "" {
		return
	}
	a.eventIDs.Set(string(id), struct{}{}, cache.DefaultExpiration)
}

// HasEventID tells whether the given event ID was submitted recently.
func (a *Adapter) HasEventID(id gosentry.EventID) bool {
	if a == nil {
		return false
	}
	_, ok := a.eventIDs.Get(string(id))
	return ok
}

// TakeEventID forgets the given event ID and tells whether it was remembered.
// Of concurrent callers with the same ID, only one gets true.
func (a *Adapter) TakeEventID(id gosentry.EventID) bool {
	if a == nil {
		return false
	}

	a.idMu.Lock()
	defer a.idMu.Unlock()

	if _, ok := a.eventIDs.Get(string(id)); !ok {
		return false
	}
	a.eventIDs.Delete(string(id))
	return true
}

// RemoveEventID forgets the given event ID.
func (a *Adapter) RemoveEventID(id gosentry.EventID) {
	if a == nil {
		return
	}
	a.eventIDs.Delete(string(id))
}

// Flush waits until buffered events are sent or the timeout is reached.
func (a *Adapter) Flush(timeout time.Duration) bool {
	if !a.Enabled() {
		return true
	}
	return a.hub.Flush(timeout)
}

func (a *Adapter) maxBreadcrumbs() int {
	if a == nil || a.config.MaxBreadcrumbs <= 0 {
		return 100
	}
	return a.config.MaxBreadcrumbs
}

func (a *Adapter) setCaptureTypes(c *capture) {
	c.types = a.CaptureTypes()
}

func (a *Adapter) checkPredicates(capture Capture) bool {
	if a == nil {
		return true
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, predicate := range a.predicates {
		if !predicate(capture) {
			return false
		}
	}
	return true
}
