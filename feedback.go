package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/kordex/discord-extensions/sentry"
)

// NewFeedbackCommandProps creates the command that lets users comment on an error they were shown.
// The command takes the error ID and the comments, as in ".feedback <error ID> <comments>".
// Only IDs the given adapter reported recently are accepted, and each of them only once.
func NewFeedbackCommandProps(adapter *sentry.Adapter, config *Config) (*sarah.CommandProps, error) {
	command := config.FeedbackCommand
	pattern := feedbackPattern(command)

	return sarah.NewCommandPropsBuilder().
		BotType(DISCORD).
		Identifier("feedback").
		MatchPattern(pattern).
		Func(func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			return feedback(adapter, pattern, input)
		}).
		Instruction(fmt.Sprintf("Input %s <error ID> <comments> to tell us what you were doing when an error occurred.", command)).
		Build()
}

func feedbackPattern(command string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(command) + `(\s|$)`)
}

func feedback(adapter *sentry.Adapter, pattern *regexp.Regexp, input sarah.Input) (*sarah.CommandResponse, error) {
	discordInput, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	text := strings.TrimSpace(sarah.StripMessage(pattern, input.Message()))
	id, comments, _ := strings.Cut(text, " ")
	comments = strings.TrimSpace(comments)
	if id == "" || comments == "" {
		return NewResponse(input, "Usage: provide the error ID followed by your comments.")
	}

	err := submitFeedback(adapter, discordInput, gosentry.EventID(id), comments)
	if errors.Is(err, ErrUnknownEventID) {
		return NewResponse(input, fmt.Sprintf("No recent error has the ID `%s`, or feedback was already given on it.", id))
	}
	if err != nil {
		return nil, err
	}

	return NewResponse(input, "Thanks! Your feedback has been submitted.")
}

func submitFeedback(adapter *sentry.Adapter, input *Input, id gosentry.EventID, comments string) error {
	if !adapter.TakeEventID(id) {
		return ErrUnknownEventID
	}

	sentryContext := input.Sentry
	if sentryContext == nil {
		sentryContext = adapter.NewContext()
	}

	author := input.Event.Author
	sent := sentryContext.CaptureFeedback(&sentry.Feedback{
		EventID:  id,
		Name:     author.Username,
		Comments: comments,
	}, func(capture *sentry.ScopeCapture) {
		capture.SetUser(author)
		capture.SetChannelID(input.Event.ChannelID)
		capture.SetGuildID(input.Event.GuildID)
	})
	if sent == nil {
		adapter.AddEventID(id)
		return fmt.Errorf("feedback on %s was not submitted", id)
	}

	logger.Infof("Feedback submitted on %s by %s.", id, author.ID)
	return nil
}
