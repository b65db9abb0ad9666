package components

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// ButtonCheck decides whether a button press may run the action.
// A non-nil error rejects the press and its message is shown to the user.
type ButtonCheck func(ctx context.Context, c *ButtonContext) error

// ButtonAction is run when a button is pressed and every check passed.
type ButtonAction func(ctx context.Context, c *ButtonContext) error

// Button is an interactive button.
type Button struct {
	// CustomID identifies the button. A random one is generated when empty.
	CustomID string

	Label    string
	Emoji    *discordgo.ComponentEmoji
	Style    discordgo.ButtonStyle
	Disabled bool

	// DeferredAck makes the button acknowledge the press before running the action,
	// which then has to reply with follow-ups or edits.
	DeferredAck bool

	Checks []ButtonCheck
	Action ButtonAction
}

var _ actionable = (*Button)(nil)

// ID returns the custom ID of the button.
func (b *Button) ID() string {
	return b.CustomID
}

func (b *Button) ensureID() {
	if b.CustomID == "" {
		b.CustomID = uuid.NewString()
	}
}

func (b *Button) width() int {
	return 1
}

// Validate tells whether the button satisfies Discord's constraints.
func (b *Button) Validate() error {
	if b.Label == "" && b.Emoji == nil {
		return invalid("button must have a label or an emoji")
	}
	if utf8.RuneCountInString(b.Label) > MaxLabelLength {
		return invalid("button label must be at most %d characters", MaxLabelLength)
	}
	if len(b.CustomID) > MaxCustomIDLength {
		return invalid("button custom ID must be at most %d characters", MaxCustomIDLength)
	}
	if b.Style == discordgo.LinkButton {
		return invalid("use LinkButton for buttons that open a URL")
	}
	return nil
}

func (b *Button) build() discordgo.MessageComponent {
	style := b.Style
	if style == 0 {
		style = discordgo.PrimaryButton
	}

	return discordgo.Button{
		CustomID: b.CustomID,
		Label:    b.Label,
		Emoji:    b.Emoji,
		Style:    style,
		Disabled: b.Disabled,
	}
}

func (b *Button) call(ctx context.Context, inv *invocation) error {
	response, err := inv.acknowledge(b.DeferredAck)
	if err != nil {
		return err
	}

	c, err := NewButtonContext(inv.extension, inv.event, inv.components, response, inv.sentry, inv.responder)
	if err != nil {
		return err
	}
	inv.replier = c

	for _, check := range b.Checks {
		if err := check(ctx, c); err != nil {
			return &CheckError{Message: err.Error()}
		}
	}

	if b.Action == nil {
		return nil
	}

	if err := b.Action(ctx, c); err != nil {
		return fmt.Errorf("button %s: %w", b.CustomID, err)
	}
	return nil
}

// LinkButton is a button that opens a URL. Discord handles it without sending an interaction.
type LinkButton struct {
	URL      string
	Label    string
	Emoji    *discordgo.ComponentEmoji
	Disabled bool

	id string
}

var _ Component = (*LinkButton)(nil)

// ID returns the ID the container knows the button by. It is never sent to Discord.
func (b *LinkButton) ID() string {
	return b.id
}

func (b *LinkButton) ensureID() {
	if b.id == "" {
		b.id = uuid.NewString()
	}
}

func (b *LinkButton) width() int {
	return 1
}

// Validate tells whether the button satisfies Discord's constraints.
func (b *LinkButton) Validate() error {
	if b.URL == "" {
		return invalid("link button must have a URL")
	}
	if b.Label == "" && b.Emoji == nil {
		return invalid("link button must have a label or an emoji")
	}
	if utf8.RuneCountInString(b.Label) > MaxLabelLength {
		return invalid("link button label must be at most %d characters", MaxLabelLength)
	}
	return nil
}

func (b *LinkButton) build() discordgo.MessageComponent {
	return discordgo.Button{
		URL:      b.URL,
		Label:    b.Label,
		Emoji:    b.Emoji,
		Style:    discordgo.LinkButton,
		Disabled: b.Disabled,
	}
}
