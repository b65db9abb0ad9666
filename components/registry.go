package components

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	gosentry "github.com/getsentry/sentry-go"
	"github.com/oklahomer/go-kasumi/logger"

	"github.com/kordex/discord-extensions/sentry"
)

type entry struct {
	components *Components
	component  actionable
}

// Registry routes component interactions to the registered components.
// It is safe for concurrent use.
type Registry struct {
	sentry *sentry.Adapter

	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty Registry.
// Every handled interaction gets its own sentry.Context derived from the given adapter, which may be nil.
func NewRegistry(adapter *sentry.Adapter) *Registry {
	return &Registry{
		sentry:  adapter,
		entries: map[string]entry{},
	}
}

// Register makes the components reachable by Handle.
// When Timeout is set, the components are unregistered once it elapses and OnTimeout is called.
// Registering the same components twice does nothing.
func (r *Registry) Register(components *Components) error {
	components.mu.Lock()
	defer components.mu.Unlock()

	if components.registry == r {
		return nil
	}
	if components.registry != nil {
		return ErrRegisteredElsewhere
	}

	var owned []actionable
	for _, row := range components.rows {
		for _, comp := range row {
			if a, ok := comp.(actionable); ok {
				owned = append(owned, a)
			}
		}
	}

	r.mu.Lock()
	for _, a := range owned {
		if _, ok := r.entries[a.ID()]; ok {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID())
		}
	}
	for _, a := range owned {
		r.entries[a.ID()] = entry{components: components, component: a}
	}
	r.mu.Unlock()

	components.registry = r
	if components.Timeout > 0 {
		components.timer = time.AfterFunc(components.Timeout, func() {
			if r.Unregister(components) && components.OnTimeout != nil {
				components.OnTimeout(components)
			}
		})
	}

	logger.Debugf("Registered %d component(s) of %s.", len(owned), extensionName(components.extension))
	return nil
}

// Unregister makes the components unreachable and stops their timeout.
// It returns false when the components were not registered with r.
func (r *Registry) Unregister(components *Components) bool {
	components.mu.Lock()
	if components.registry != r {
		components.mu.Unlock()
		return false
	}

	components.registry = nil
	if components.timer != nil {
		components.timer.Stop()
		components.timer = nil
	}

	var ids []string
	for _, row := range components.rows {
		for _, comp := range row {
			ids = append(ids, comp.ID())
		}
	}
	components.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if e, ok := r.entries[id]; ok && e.components == components {
			delete(r.entries, id)
		}
	}
	return true
}

// Lookup returns the registered component with the given custom ID and the container holding it.
func (r *Registry) Lookup(id string) (Component, *Components, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, nil, false
	}
	return e.component, e.components, true
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// add is called by Components.Add while the container's lock is held.
func (r *Registry) add(components *Components, comp Component) error {
	a, ok := comp.(actionable)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[a.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID())
	}
	r.entries[a.ID()] = entry{components: components, component: a}
	return nil
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
}

// Handle runs the component the given interaction was created by.
//
// Interactions other than message components are ignored.
// When a check rejects the interaction, its message is sent back to the user and nil is returned.
// When the action fails, the error is captured, the user is told so along with the event ID, and the error is returned.
func (r *Registry) Handle(ctx context.Context, responder Responder, event *discordgo.InteractionCreate) error {
	if event == nil || event.Interaction == nil {
		return ErrNilInteraction
	}

	if event.Type != discordgo.InteractionMessageComponent {
		return nil
	}

	data, ok := event.Data.(discordgo.MessageComponentInteractionData)
	if !ok {
		return nil
	}

	r.mu.RLock()
	e, ok := r.entries[data.CustomID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, data.CustomID)
	}

	inv := &invocation{
		extension:  e.components.extension,
		event:      event,
		components: e.components,
		sentry:     r.sentry.NewContext(),
		responder:  responder,
	}

	inv.sentry.Breadcrumb(sentry.BreadcrumbUser, func(capture *sentry.BreadcrumbCapture) {
		capture.Category = "component.interaction"
		capture.Message = fmt.Sprintf("Component %s interacted with.", data.CustomID)
		capture.SetData("component.type", int(data.ComponentType))
		capture.SetData("extension", extensionName(inv.extension))
		capture.SetUser(interactionUser(event.Interaction))
		capture.SetChannelID(event.ChannelID)
		capture.SetGuildID(event.GuildID)
	})

	err := inv.sentry.Transaction(ctx, "component: "+data.CustomID, "component", func(span *gosentry.Span) error {
		return e.component.call(span.Context(), inv)
	})
	if err == nil {
		return nil
	}

	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		if replyErr := inv.reply(checkErr.Message); replyErr != nil {
			logger.Warnf("Failed to send check failure of component %s: %+v", data.CustomID, replyErr)
		}
		return nil
	}

	id := inv.sentry.CaptureException(err, func(capture *sentry.ExceptionCapture) {
		capture.SetTag("component.id", data.CustomID)
		capture.SetTag("extension", extensionName(inv.extension))
		capture.SetUser(interactionUser(event.Interaction))
		capture.SetChannelID(event.ChannelID)
		capture.SetGuildID(event.GuildID)
	})

	message := "Something went wrong while handling this interaction."
	if id != nil {
		message = fmt.Sprintf("%s Error ID: `%s`", message, *id)
	}

	if replyErr := inv.reply(message); replyErr != nil {
		logger.Warnf("Failed to send error of component %s: %+v", data.CustomID, replyErr)
	}

	return err
}

// replier is satisfied by every Context.
type replier interface {
	RespondEphemeral(content string) (*discordgo.Message, error)
}

// invocation carries the state of one Handle call into the component.
type invocation struct {
	extension  Extension
	event      *discordgo.InteractionCreate
	components *Components
	sentry     *sentry.Context
	responder  Responder
	response   *Response

	// replier is set once the component built its context.
	replier replier
}

// acknowledge defers the response when requested, returning the response the context starts with.
func (inv *invocation) acknowledge(deferred bool) (*Response, error) {
	if !deferred {
		return nil, nil
	}

	err := inv.responder.InteractionRespond(inv.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	inv.response = &Response{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	return inv.response, nil
}

// reply sends an ephemeral message through the component's context, or directly when none was built.
func (inv *invocation) reply(content string) error {
	if inv.replier != nil {
		_, err := inv.replier.RespondEphemeral(content)
		return err
	}

	if inv.response != nil {
		_, err := inv.responder.FollowupMessageCreate(inv.event.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return err
	}

	return inv.responder.InteractionRespond(inv.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func extensionName(extension Extension) string {
	if extension == nil {
		return "unknown extension"
	}
	return extension.Name()
}
