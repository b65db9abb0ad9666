package discord

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	gosentry "github.com/getsentry/sentry-go"

	"github.com/kordex/discord-extensions/sentry"
)

// mockResponder implements components.Responder for testing.
type mockResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
}

func (m *mockResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses = append(m.responses, resp)
	return nil
}

func (m *mockResponder) InteractionResponseEdit(_ *discordgo.Interaction, _ *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{}, nil
}

func (m *mockResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, _ *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{}, nil
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

func (r *recordingTransport) Events() []*gosentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*gosentry.Event, len(r.events))
	copy(events, r.events)
	return events
}

func newTestSentry(t *testing.T) (*sentry.Adapter, *recordingTransport) {
	t.Helper()

	config := sentry.NewConfig()
	config.Release = "test"
	config.Environment = "test"
	config.TracesSampleRate = 0

	transport := &recordingTransport{}
	adapter, err := sentry.NewAdapter(config, sentry.WithTransport(transport))
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	return adapter, transport
}

func buttonInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: "ch-1",
			User:      &discordgo.User{ID: "user-1"},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
		},
	}
}
