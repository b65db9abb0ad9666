package components

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewButtonContext(t *testing.T) {
	t.Run("button event", func(t *testing.T) {
		event := componentEvent("confirm", discordgo.ButtonComponent)
		comps := New(NamedExtension("test"))

		c, err := NewButtonContext(NamedExtension("test"), event, comps, nil, nil, &mockResponder{})
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if c.Extension.Name() != "test" {
			t.Errorf("Unexpected extension: %s", c.Extension.Name())
		}

		if c.Components != comps {
			t.Error("Expected components to be kept")
		}

		if c.CustomID() != "confirm" {
			t.Errorf("Expected custom ID %q, got %q", "confirm", c.CustomID())
		}

		if c.User().ID != "member" {
			t.Errorf("Expected the member's user, got %#v", c.User())
		}

		if c.GuildID() != "guild" || c.ChannelID() != "channel" {
			t.Errorf("Unexpected location: %s/%s", c.GuildID(), c.ChannelID())
		}

		if c.Response != nil {
			t.Error("Expected no response yet")
		}
	})

	t.Run("nil event", func(t *testing.T) {
		_, err := NewButtonContext(nil, nil, nil, nil, nil, &mockResponder{})
		if err != ErrNilInteraction {
			t.Errorf("Expected ErrNilInteraction, got %+v", err)
		}
	})

	t.Run("menu event", func(t *testing.T) {
		event := componentEvent("choice", discordgo.SelectMenuComponent, "a")

		_, err := NewButtonContext(nil, event, nil, nil, nil, &mockResponder{})

		var typeErr *InteractionTypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("Expected *InteractionTypeError, got %T", err)
		}
	})

	t.Run("direct message", func(t *testing.T) {
		event := componentEvent("confirm", discordgo.ButtonComponent)
		event.Member = nil
		event.GuildID = ""
		event.User = &discordgo.User{ID: "dm"}

		c, err := NewButtonContext(nil, event, nil, nil, nil, &mockResponder{})
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if c.User().ID != "dm" {
			t.Errorf("Expected the direct message user, got %#v", c.User())
		}
	})
}

func TestNewMenuContext(t *testing.T) {
	event := componentEvent("choice", discordgo.SelectMenuComponent, "a", "c")

	c, err := NewMenuContext(nil, event, nil, nil, nil, &mockResponder{})
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if len(c.Selected) != 2 || c.Selected[0] != "a" || c.Selected[1] != "c" {
		t.Errorf("Unexpected selection: %#v", c.Selected)
	}

	_, err = NewMenuContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, &mockResponder{})

	var typeErr *InteractionTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("Expected *InteractionTypeError, got %T", err)
	}
}

func TestContext_Respond(t *testing.T) {
	t.Run("first response then follow-up", func(t *testing.T) {
		responder := &mockResponder{}
		c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

		msg, err := c.RespondEphemeral("first")
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if msg != nil {
			t.Error("Initial response should not return a message")
		}

		if len(responder.responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(responder.responses))
		}

		resp := responder.responses[0]
		if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
			t.Errorf("Unexpected response type %d", resp.Type)
		}

		if resp.Data.Content != "first" || resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
			t.Errorf("Unexpected response data: %#v", resp.Data)
		}

		if c.Response == nil || !c.Response.Ephemeral {
			t.Errorf("Expected an ephemeral response to be recorded, got %#v", c.Response)
		}

		msg, err = c.Respond(&discordgo.InteractionResponseData{Content: "second"})
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if msg == nil || msg.ID != "followup" {
			t.Errorf("Expected the follow-up message, got %#v", msg)
		}

		if len(responder.responses) != 1 {
			t.Error("Second reply should not respond again")
		}

		if len(responder.followups) != 1 || responder.followups[0].Content != "second" {
			t.Errorf("Unexpected follow-ups: %#v", responder.followups)
		}
	})

	t.Run("failed response", func(t *testing.T) {
		expected := errors.New("unknown interaction")
		responder := &mockResponder{
			interactionRespondFunc: func(_ *discordgo.Interaction, _ *discordgo.InteractionResponse) error {
				return expected
			},
		}
		c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

		_, err := c.RespondEphemeral("text")
		if !errors.Is(err, expected) {
			t.Errorf("Expected wrapped error, got %+v", err)
		}

		if c.Response != nil {
			t.Error("Failed response should not be recorded")
		}
	})
}

func TestContext_Update(t *testing.T) {
	t.Run("initial update", func(t *testing.T) {
		responder := &mockResponder{}
		c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

		if err := c.Update(&discordgo.InteractionResponseData{Content: "updated"}); err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if responder.responses[0].Type != discordgo.InteractionResponseUpdateMessage {
			t.Errorf("Unexpected response type %d", responder.responses[0].Type)
		}

		if c.Response == nil || c.Response.Type != discordgo.InteractionResponseUpdateMessage {
			t.Errorf("Unexpected response %#v", c.Response)
		}
	})

	t.Run("update after deferring", func(t *testing.T) {
		responder := &mockResponder{}
		c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

		if err := c.Defer(); err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		err := c.Update(&discordgo.InteractionResponseData{
			Content:    "done",
			Components: []discordgo.MessageComponent{},
		})
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if len(responder.responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(responder.responses))
		}

		if len(responder.edits) != 1 {
			t.Fatalf("Expected 1 edit, got %d", len(responder.edits))
		}

		edit := responder.edits[0]
		if *edit.Content != "done" {
			t.Errorf("Unexpected content %q", *edit.Content)
		}

		if edit.Components == nil {
			t.Error("Expected components to be cleared")
		}

		if edit.Embeds != nil {
			t.Error("Embeds should be left untouched")
		}
	})

	t.Run("update after replying", func(t *testing.T) {
		responder := &mockResponder{}
		c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

		if _, err := c.RespondEphemeral("reply"); err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		err := c.Update(&discordgo.InteractionResponseData{Content: "edited"})
		if !errors.Is(err, ErrReplied) {
			t.Errorf("Expected ErrReplied, got %+v", err)
		}

		if len(responder.edits) != 0 {
			t.Error("The reply should not be edited")
		}
	})
}

func TestContext_Defer(t *testing.T) {
	responder := &mockResponder{}
	c, _ := NewButtonContext(nil, componentEvent("confirm", discordgo.ButtonComponent), nil, nil, nil, responder)

	if err := c.Defer(); err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if err := c.Defer(); err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if len(responder.responses) != 1 {
		t.Errorf("Expected a single response, got %d", len(responder.responses))
	}

	if responder.responses[0].Type != discordgo.InteractionResponseDeferredMessageUpdate {
		t.Errorf("Unexpected response type %d", responder.responses[0].Type)
	}
}

func TestContext_Followup(t *testing.T) {
	responder := &mockResponder{}
	c, _ := NewMenuContext(nil, componentEvent("choice", discordgo.SelectMenuComponent, "a"), nil, nil, nil, responder)

	_, err := c.Followup(&discordgo.WebhookParams{Content: "early"})
	if err != ErrNotAcknowledged {
		t.Errorf("Expected ErrNotAcknowledged, got %+v", err)
	}

	c.Response = &Response{Type: discordgo.InteractionResponseDeferredMessageUpdate}

	if _, err := c.Followup(&discordgo.WebhookParams{Content: "late"}); err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if len(responder.followups) != 1 {
		t.Errorf("Expected 1 follow-up, got %d", len(responder.followups))
	}
}
