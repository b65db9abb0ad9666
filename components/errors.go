package components

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrNilInteraction indicates that no interaction was given.
var ErrNilInteraction = errors.New("interaction must not be nil")

// ErrComponentNotFound indicates that no registered component has the interaction's custom ID.
var ErrComponentNotFound = errors.New("component not found")

// ErrDuplicateID indicates that another component already uses the custom ID.
var ErrDuplicateID = errors.New("component ID already in use")

// ErrRegisteredElsewhere indicates that the components are already registered with another Registry.
var ErrRegisteredElsewhere = errors.New("components already registered with another registry")

// ErrInvalidRow indicates that the requested row does not exist.
var ErrInvalidRow = errors.New("row must be between 0 and 4")

// ErrRowFull indicates that the requested row cannot hold the component.
var ErrRowFull = errors.New("row has no room for the component")

// ErrNoRoom indicates that no row can hold the component.
var ErrNoRoom = errors.New("no row has room for the component")

// ErrInvalidComponent indicates that a component does not satisfy Discord's constraints.
var ErrInvalidComponent = errors.New("invalid component")

// ErrNotAcknowledged indicates that a follow-up was requested before the interaction was responded to.
var ErrNotAcknowledged = errors.New("interaction has not been responded to yet")

// ErrReplied indicates that the component's message can no longer be edited because the interaction was answered with a new message.
var ErrReplied = errors.New("interaction was responded to with a new message")

// InteractionTypeError is returned when an interaction is narrowed to a type it does not have.
// This is a programming error on the caller's side.
type InteractionTypeError struct {
	// Expected is the component type the caller asked for.
	Expected discordgo.ComponentType

	// ActualType is the type of the given interaction.
	ActualType discordgo.InteractionType

	// ActualComponent is the component type of the given interaction. Zero unless ActualType is a message component.
	ActualComponent discordgo.ComponentType
}

var _ error = (*InteractionTypeError)(nil)

// Error returns a description of the mismatch.
func (e *InteractionTypeError) Error() string {
	if e.ActualType != discordgo.InteractionMessageComponent {
		return fmt.Sprintf("expected a component interaction of component type %d, got a %s interaction", e.Expected, e.ActualType)
	}
	return fmt.Sprintf("expected a component interaction of component type %d, got component type %d", e.Expected, e.ActualComponent)
}

// CheckError is returned when one of a component's checks rejects the interaction.
// Message is shown to the user.
type CheckError struct {
	Message string
}

var _ error = (*CheckError)(nil)

// Error returns the rejection message.
func (e *CheckError) Error() string {
	return "check failed: " + e.Message
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidComponent, fmt.Sprintf(format, args...))
}
