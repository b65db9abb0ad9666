package sentry

import (
	"github.com/bwmarrin/discordgo"
	gosentry "github.com/getsentry/sentry-go"
)

// Kind tells which submission a Capture belongs to.
type Kind int

const (
	KindBreadcrumb Kind = iota
	KindEvent
	KindException
	KindFeedback
	KindMessage
)

// String returns a lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBreadcrumb:
		return "breadcrumb"
	case KindEvent:
		return "event"
	case KindException:
		return "exception"
	case KindFeedback:
		return "feedback"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

// BreadcrumbType is one of the breadcrumb types Sentry renders specially.
type BreadcrumbType string

const (
	BreadcrumbDefault     BreadcrumbType = "default"
	BreadcrumbDebug       BreadcrumbType = "debug"
	BreadcrumbError       BreadcrumbType = "error"
	BreadcrumbInfo        BreadcrumbType = "info"
	BreadcrumbNavigation  BreadcrumbType = "navigation"
	BreadcrumbHTTP        BreadcrumbType = "http"
	BreadcrumbQuery       BreadcrumbType = "query"
	BreadcrumbTransaction BreadcrumbType = "transaction"
	BreadcrumbUI          BreadcrumbType = "ui"
	BreadcrumbUser        BreadcrumbType = "user"
)

// Capture is a transient container that caller code populates before it is checked against
// the Adapter's predicates and submitted.
//
// Use a type switch on *BreadcrumbCapture, *ScopeCapture or *ExceptionCapture to reach the kind-specific fields.
type Capture interface {
	Kind() Kind
	Tags() map[string]string
	Data() map[string]interface{}

	base() *capture
	applyScope(scope *gosentry.Scope)
}

// capture holds what every kind of capture records.
type capture struct {
	types CaptureTypes
	user  *discordgo.User
	tags  map[string]string
	data  map[string]interface{}
}

func newCapture() capture {
	return capture{
		tags: map[string]string{},
		data: map[string]interface{}{},
	}
}

func (c *capture) base() *capture {
	return c
}

// Tags returns the tags set so far.
func (c *capture) Tags() map[string]string {
	return c.tags
}

// Data returns the additional data set so far.
func (c *capture) Data() map[string]interface{} {
	return c.data
}

// SetTag sets a searchable tag.
func (c *capture) SetTag(key, value string) {
	c.tags[key] = value
}

// SetData sets an arbitrary value.
func (c *capture) SetData(key string, value interface{}) {
	c.data[key] = value
}

// SetUser records the given user when user capturing is enabled.
func (c *capture) SetUser(user *discordgo.User) {
	if !c.types.Users || user == nil {
		return
	}
	c.user = user
	c.tags["user.id"] = user.ID
}

// SetChannelID records the given channel when channel capturing is enabled.
func (c *capture) SetChannelID(id string) {
	if !c.types.Channels || id == "" {
		return
	}
	c.tags["channel.id"] = id
}

// SetGuildID records the given guild when guild capturing is enabled.
func (c *capture) SetGuildID(id string) {
	if !c.types.Guilds || id == "" {
		return
	}
	c.tags["guild.id"] = id
}

// SetMessageID records the given message when message capturing is enabled.
func (c *capture) SetMessageID(id string) {
	if !c.types.Messages || id == "" {
		return
	}
	c.tags["message.id"] = id
}

// SetRoleID records the given role when role capturing is enabled.
func (c *capture) SetRoleID(id string) {
	if !c.types.Roles || id == "" {
		return
	}
	c.tags["role.id"] = id
}

func (c *capture) applyScope(scope *gosentry.Scope) {
	if c.user != nil {
		scope.SetUser(gosentry.User{ID: c.user.ID, Username: c.user.Username})
	}
	scope.SetTags(c.tags)
	scope.SetExtras(c.data)
}

// BreadcrumbCapture is populated by the body passed to Context.Breadcrumb.
type BreadcrumbCapture struct {
	capture

	Type     BreadcrumbType
	Category string
	Message  string
	Level    gosentry.Level
}

var _ Capture = (*BreadcrumbCapture)(nil)

func newBreadcrumbCapture(typ BreadcrumbType) *BreadcrumbCapture {
	return &BreadcrumbCapture{
		capture: newCapture(),
		Type:    typ,
		Level:   gosentry.LevelInfo,
	}
}

// Kind returns KindBreadcrumb.
func (c *BreadcrumbCapture) Kind() Kind {
	return KindBreadcrumb
}

func (c *BreadcrumbCapture) apply(breadcrumb *gosentry.Breadcrumb) {
	breadcrumb.Type = string(c.Type)
	breadcrumb.Category = c.Category
	breadcrumb.Message = c.Message
	breadcrumb.Level = c.Level

	data := make(map[string]interface{}, len(c.data)+len(c.tags))
	for k, v := range c.tags {
		data[k] = v
	}
	for k, v := range c.data {
		data[k] = v
	}
	if len(data) > 0 {
		breadcrumb.Data = data
	}
}

// ScopeCapture is populated by the body passed to Context.CaptureEvent, Context.CaptureMessage and Context.CaptureFeedback.
type ScopeCapture struct {
	capture

	Level       gosentry.Level
	Fingerprint []string

	kind Kind
}

var _ Capture = (*ScopeCapture)(nil)

func newScopeCapture(kind Kind) *ScopeCapture {
	return &ScopeCapture{
		capture: newCapture(),
		kind:    kind,
	}
}

// Kind returns which submission this capture belongs to.
func (c *ScopeCapture) Kind() Kind {
	return c.kind
}

func (c *ScopeCapture) applyScope(scope *gosentry.Scope) {
	c.capture.applyScope(scope)
	if c.Level != "" {
		scope.SetLevel(c.Level)
	}
	if len(c.Fingerprint) > 0 {
		scope.SetFingerprint(c.Fingerprint)
	}
}

// ExceptionCapture is populated by the body passed to Context.CaptureException.
type ExceptionCapture struct {
	ScopeCapture

	// Err is submitted. The body may replace it, e.g. to wrap it with more context.
	Err error
}

var _ Capture = (*ExceptionCapture)(nil)

func newExceptionCapture(err error) *ExceptionCapture {
	return &ExceptionCapture{
		ScopeCapture: ScopeCapture{
			capture: newCapture(),
			Level:   gosentry.LevelError,
			kind:    KindException,
		},
		Err: err,
	}
}
