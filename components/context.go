package components

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kordex/discord-extensions/sentry"
)

// Extension is the owner of a set of components.
type Extension interface {
	Name() string
}

// NamedExtension is the simplest Extension, identified only by its name.
type NamedExtension string

var _ Extension = NamedExtension("")

// Name returns the name of the extension.
func (n NamedExtension) Name() string {
	return string(n)
}

// Responder abstracts the discordgo.Session methods used to respond to interactions.
// *discordgo.Session satisfies this interface.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Responder = (*discordgo.Session)(nil)

// Response records how an interaction was first responded to.
type Response struct {
	Type      discordgo.InteractionResponseType
	Ephemeral bool
}

// Context is what a component handler receives: the interaction narrowed to T and everything around it.
type Context[T Interaction] struct {
	// Extension owns the component.
	Extension Extension

	Event *discordgo.InteractionCreate

	// Components holds the component and its siblings.
	Components *Components

	// Response is nil until the interaction is responded to.
	Response *Response

	Interaction T

	// Sentry collects breadcrumbs for this interaction.
	Sentry *sentry.Context

	responder Responder
}

// User returns the user who interacted, whether in a guild or in a direct message.
func (c *Context[T]) User() *discordgo.User {
	i := c.Interaction.Base()
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// GuildID returns the guild the interaction happened in. Empty in direct messages.
func (c *Context[T]) GuildID() string {
	return c.Interaction.Base().GuildID
}

// ChannelID returns the channel the interaction happened in.
func (c *Context[T]) ChannelID() string {
	return c.Interaction.Base().ChannelID
}

// CustomID returns the custom ID of the component.
func (c *Context[T]) CustomID() string {
	return c.Interaction.CustomID()
}

// Respond sends a message in reply to the interaction.
// The first call responds to the interaction and returns a nil message; later calls send follow-ups.
func (c *Context[T]) Respond(data *discordgo.InteractionResponseData) (*discordgo.Message, error) {
	ephemeral := data.Flags&discordgo.MessageFlagsEphemeral != 0

	if c.Response == nil {
		err := c.responder.InteractionRespond(c.Interaction.Base(), &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to respond to interaction: %w", err)
		}

		c.Response = &Response{Type: discordgo.InteractionResponseChannelMessageWithSource, Ephemeral: ephemeral}
		return nil, nil
	}

	return c.Followup(&discordgo.WebhookParams{
		Content:         data.Content,
		Components:      data.Components,
		Embeds:          data.Embeds,
		AllowedMentions: data.AllowedMentions,
		Flags:           data.Flags,
	})
}

// RespondEphemeral sends a text only the interacting user can see.
func (c *Context[T]) RespondEphemeral(content string) (*discordgo.Message, error) {
	return c.Respond(&discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// Update edits the message the component is attached to.
// It returns ErrReplied once Respond answered the interaction, since the response then is a new message.
func (c *Context[T]) Update(data *discordgo.InteractionResponseData) error {
	if c.Response != nil && c.Response.Type == discordgo.InteractionResponseChannelMessageWithSource {
		return ErrReplied
	}

	if c.Response == nil {
		err := c.responder.InteractionRespond(c.Interaction.Base(), &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: data,
		})
		if err != nil {
			return fmt.Errorf("failed to update message: %w", err)
		}

		c.Response = &Response{Type: discordgo.InteractionResponseUpdateMessage}
		return nil
	}

	edit := &discordgo.WebhookEdit{
		Content: &data.Content,
	}
	if data.Components != nil {
		edit.Components = &data.Components
	}
	if data.Embeds != nil {
		edit.Embeds = &data.Embeds
	}

	if _, err := c.responder.InteractionResponseEdit(c.Interaction.Base(), edit); err != nil {
		return fmt.Errorf("failed to edit response: %w", err)
	}
	return nil
}

// Defer acknowledges the interaction without changing the message, so that the handler may take longer
// than Discord's response deadline. It does nothing when the interaction was already responded to.
func (c *Context[T]) Defer() error {
	if c.Response != nil {
		return nil
	}

	err := c.responder.InteractionRespond(c.Interaction.Base(), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}

	c.Response = &Response{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	return nil
}

// Followup sends a follow-up message. The interaction must have been responded to.
func (c *Context[T]) Followup(params *discordgo.WebhookParams) (*discordgo.Message, error) {
	if c.Response == nil {
		return nil, ErrNotAcknowledged
	}

	msg, err := c.responder.FollowupMessageCreate(c.Interaction.Base(), true, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send follow-up message: %w", err)
	}
	return msg, nil
}

// ButtonContext is the context of a button press.
type ButtonContext struct {
	Context[*ButtonInteraction]
}

// NewButtonContext creates a ButtonContext for the given event.
// It returns *InteractionTypeError when the event was not created by a button.
func NewButtonContext(extension Extension, event *discordgo.InteractionCreate, components *Components, response *Response, sentryContext *sentry.Context, responder Responder) (*ButtonContext, error) {
	if event == nil {
		return nil, ErrNilInteraction
	}

	interaction, err := AsButton(event.Interaction)
	if err != nil {
		return nil, err
	}

	return &ButtonContext{
		Context: Context[*ButtonInteraction]{
			Extension:   extension,
			Event:       event,
			Components:  components,
			Response:    response,
			Interaction: interaction,
			Sentry:      sentryContext,
			responder:   responder,
		},
	}, nil
}

// MenuContext is the context of a select menu choice.
type MenuContext struct {
	Context[*MenuInteraction]

	// Selected holds the values of the chosen options.
	Selected []string
}

// NewMenuContext creates a MenuContext for the given event.
// It returns *InteractionTypeError when the event was not created by a select menu.
func NewMenuContext(extension Extension, event *discordgo.InteractionCreate, components *Components, response *Response, sentryContext *sentry.Context, responder Responder) (*MenuContext, error) {
	if event == nil {
		return nil, ErrNilInteraction
	}

	interaction, err := AsMenu(event.Interaction)
	if err != nil {
		return nil, err
	}

	return &MenuContext{
		Context: Context[*MenuInteraction]{
			Extension:   extension,
			Event:       event,
			Components:  components,
			Response:    response,
			Interaction: interaction,
			Sentry:      sentryContext,
			responder:   responder,
		},
		Selected: interaction.Values(),
	}, nil
}
