package components

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	gosentry "github.com/getsentry/sentry-go"

	"github.com/kordex/discord-extensions/sentry"
)

// mockResponder implements Responder and records every call.
type mockResponder struct {
	mu sync.Mutex

	interactionRespondFunc      func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	interactionResponseEditFunc func(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error)
	followupMessageCreateFunc   func(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams) (*discordgo.Message, error)

	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
}

func (m *mockResponder) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	m.responses = append(m.responses, resp)
	m.mu.Unlock()

	if m.interactionRespondFunc != nil {
		return m.interactionRespondFunc(interaction, resp)
	}
	return nil
}

func (m *mockResponder) InteractionResponseEdit(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	m.edits = append(m.edits, edit)
	m.mu.Unlock()

	if m.interactionResponseEditFunc != nil {
		return m.interactionResponseEditFunc(interaction, edit)
	}
	return &discordgo.Message{}, nil
}

func (m *mockResponder) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	m.followups = append(m.followups, data)
	m.mu.Unlock()

	if m.followupMessageCreateFunc != nil {
		return m.followupMessageCreateFunc(interaction, wait, data)
	}
	return &discordgo.Message{ID: "followup"}, nil
}

// recordingTransport implements gosentry.Transport by keeping every event in memory.
type recordingTransport struct {
	mu     sync.Mutex
	events []*gosentry.Event
}

func (r *recordingTransport) Flush(_ time.Duration) bool {
	return true
}

func (r *recordingTransport) Configure(_ gosentry.ClientOptions) {}

func (r *recordingTransport) SendEvent(event *gosentry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingTransport) errors() []*gosentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []*gosentry.Event
	for _, e := range r.events {
		if e.Type != "transaction" {
			events = append(events, e)
		}
	}
	return events
}

func newTestSentry(t *testing.T) (*sentry.Adapter, *recordingTransport) {
	t.Helper()

	config := sentry.NewConfig()
	config.Release = "test"
	config.Environment = "test"

	transport := &recordingTransport{}
	adapter, err := sentry.NewAdapter(config, sentry.WithTransport(transport))
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	return adapter, transport
}

func componentEvent(customID string, componentType discordgo.ComponentType, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction",
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   "guild",
			ChannelID: "channel",
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "member", Username: "member"},
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: componentType,
				Values:        values,
			},
		},
	}
}
