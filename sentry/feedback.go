package sentry

import gosentry "github.com/getsentry/sentry-go"

// Feedback is what a user tells about a previously captured event.
type Feedback struct {
	// EventID is the ID of the event the feedback refers to.
	EventID gosentry.EventID

	Name     string
	Email    string
	Comments string
}

// event builds the event that carries the feedback.
// The feedback travels in the "feedback" context, which is where Sentry's user feedback UI reads it from.
func (f *Feedback) event() *gosentry.Event {
	event := gosentry.NewEvent()
	event.Level = gosentry.LevelInfo
	event.Message = f.Comments
	event.Contexts["feedback"] = gosentry.Context{
		"message":             f.Comments,
		"name":                f.Name,
		"contact_email":       f.Email,
		"associated_event_id": string(f.EventID),
	}
	event.Tags["feedback.event_id"] = string(f.EventID)
	return event
}
