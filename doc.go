// Package discord provides a sarah.Adapter implementation for Discord,
// extended with message components and Sentry error reporting.
//
// This package bridges go-sarah's bot framework with Discord using discordgo
// for the underlying API integration. It converts Discord message events into
// sarah.Input and dispatches sarah.Output as Discord messages.
//
// Buttons and select menus are built with the components package. Send them
// as a *ComponentMessage and give the Adapter a *components.Registry via
// WithComponentRegistry so that their interactions reach the handlers.
//
// Give the Adapter a *sentry.Adapter via WithSentry to have every Input carry
// a sentry.Context, and register NewFeedbackCommandProps so that users can
// comment on the errors they were shown.
package discord
