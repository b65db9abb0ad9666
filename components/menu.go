package components

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// MenuCheck decides whether a menu choice may run the action.
// A non-nil error rejects the choice and its message is shown to the user.
type MenuCheck func(ctx context.Context, c *MenuContext) error

// MenuAction is run when options are chosen and every check passed.
type MenuAction func(ctx context.Context, c *MenuContext) error

// MenuOption is one choice of a Menu.
type MenuOption struct {
	Label       string
	Value       string
	Description string
	Emoji       *discordgo.ComponentEmoji
	Default     bool
}

// Menu is a select menu of string options.
type Menu struct {
	// CustomID identifies the menu. A random one is generated when empty.
	CustomID string

	Placeholder string
	Options     []MenuOption

	// MinValues is the least number of options to choose. Nil means one.
	MinValues *int

	// MaxValues is the greatest number of options to choose. Zero means one.
	MaxValues int

	Disabled bool

	// DeferredAck makes the menu acknowledge the choice before running the action,
	// which then has to reply with follow-ups or edits.
	DeferredAck bool

	Checks []MenuCheck
	Action MenuAction
}

var _ actionable = (*Menu)(nil)

// ID returns the custom ID of the menu.
func (m *Menu) ID() string {
	return m.CustomID
}

func (m *Menu) ensureID() {
	if m.CustomID == "" {
		m.CustomID = uuid.NewString()
	}
}

// width is a full row; Discord does not put anything next to a select menu.
func (m *Menu) width() int {
	return RowWidth
}

func (m *Menu) minValues() int {
	if m.MinValues == nil {
		return 1
	}
	return *m.MinValues
}

func (m *Menu) maxValues() int {
	if m.MaxValues == 0 {
		return 1
	}
	return m.MaxValues
}

// Validate tells whether the menu satisfies Discord's constraints.
func (m *Menu) Validate() error {
	if len(m.CustomID) > MaxCustomIDLength {
		return invalid("menu custom ID must be at most %d characters", MaxCustomIDLength)
	}
	if utf8.RuneCountInString(m.Placeholder) > MaxPlaceholderLength {
		return invalid("menu placeholder must be at most %d characters", MaxPlaceholderLength)
	}
	if len(m.Options) == 0 || len(m.Options) > MaxMenuOptions {
		return invalid("menu must have between 1 and %d options", MaxMenuOptions)
	}

	minimum, maximum := m.minValues(), m.maxValues()
	if minimum < 0 || minimum > maximum || maximum > len(m.Options) {
		return invalid("menu must satisfy 0 <= min (%d) <= max (%d) <= options (%d)", minimum, maximum, len(m.Options))
	}

	values := make(map[string]struct{}, len(m.Options))
	for _, o := range m.Options {
		if o.Label == "" || utf8.RuneCountInString(o.Label) > MaxOptionLength {
			return invalid("menu option label must be between 1 and %d characters", MaxOptionLength)
		}
		if o.Value == "" || utf8.RuneCountInString(o.Value) > MaxOptionLength {
			return invalid("menu option value must be between 1 and %d characters", MaxOptionLength)
		}
		if utf8.RuneCountInString(o.Description) > MaxOptionLength {
			return invalid("menu option description must be at most %d characters", MaxOptionLength)
		}
		if _, ok := values[o.Value]; ok {
			return invalid("menu option value %q is used twice", o.Value)
		}
		values[o.Value] = struct{}{}
	}

	return nil
}

func (m *Menu) build() discordgo.MessageComponent {
	minimum := m.minValues()

	options := make([]discordgo.SelectMenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Description,
			Emoji:       o.Emoji,
			Default:     o.Default,
		})
	}

	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    m.CustomID,
		Placeholder: m.Placeholder,
		MinValues:   &minimum,
		MaxValues:   m.maxValues(),
		Options:     options,
		Disabled:    m.Disabled,
	}
}

func (m *Menu) call(ctx context.Context, inv *invocation) error {
	response, err := inv.acknowledge(m.DeferredAck)
	if err != nil {
		return err
	}

	c, err := NewMenuContext(inv.extension, inv.event, inv.components, response, inv.sentry, inv.responder)
	if err != nil {
		return err
	}
	inv.replier = c

	for _, check := range m.Checks {
		if err := check(ctx, c); err != nil {
			return &CheckError{Message: err.Error()}
		}
	}

	if m.Action == nil {
		return nil
	}

	if err := m.Action(ctx, c); err != nil {
		return fmt.Errorf("menu %s: %w", m.CustomID, err)
	}
	return nil
}
