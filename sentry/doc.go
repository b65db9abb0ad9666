// Package sentry keeps track of breadcrumbs for a single unit of work and
// submits them to Sentry alongside events, exceptions, messages and user
// feedback.
//
// An Adapter owns the SDK client and the process-wide capture settings.
// Call Adapter.NewContext once per inbound event and pass the returned
// Context to handler code instead of touching the SDK directly.
package sentry
