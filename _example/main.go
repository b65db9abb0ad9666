// This is a test bot that exercises discord-extensions.
// Besides the plain commands, it sends buttons and select menus, reports
// their failures to Sentry and accepts feedback on them.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	export SENTRY_DSN="your-project-dsn" # optional
//	export LOG_LEVEL="debug"             # optional
//	go run .
//
// Then, in a Discord channel where the bot is present, type:
//
//	.echo Hello, World!
//	.components
//	.loglevel warning
//	.feedback <error ID> <comments>
//	.help
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/kordex/discord-extensions"
	"github.com/kordex/discord-extensions/components"
	"github.com/kordex/discord-extensions/internal/loglevel"
	"github.com/kordex/discord-extensions/sentry"
)

const extension = components.NamedExtension("test-bot")

func main() {
	if name := os.Getenv("LOG_LEVEL"); name != "" {
		level, ok := loglevel.FromString(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown LOG_LEVEL %q\n", name)
			os.Exit(1)
		}
		loglevel.SetThreshold(level)
	}
	logger.SetLogger(loglevel.NewLogger(logger.NewWithStandardLogger(log.New(os.Stderr, "", log.LstdFlags))))

	config, err := discord.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %s\n", err)
		os.Exit(1)
	}

	if config.Token == "" {
		fmt.Fprintln(os.Stderr, "DISCORD_TOKEN environment variable is required")
		os.Exit(1)
	}

	sentryAdapter, err := sentry.NewAdapter(config.Sentry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up Sentry: %s\n", err)
		os.Exit(1)
	}
	defer sentryAdapter.Flush(5 * time.Second)

	registry := components.NewRegistry(sentryAdapter)

	adapter, err := discord.NewAdapter(config, discord.WithComponentRegistry(registry), discord.WithSentry(sentryAdapter))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create adapter: %s\n", err)
		os.Exit(1)
	}

	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	bot := sarah.NewBot(adapter, sarah.BotWithStorage(storage))
	sarah.RegisterBot(bot)

	registerEchoCommand()
	registerComponentsCommand()
	registerLogLevelCommand()

	feedbackProps, err := discord.NewFeedbackCommandProps(sentryAdapter, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build feedback command: %s\n", err)
		os.Exit(1)
	}
	sarah.RegisterCommandProps(feedbackProps)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = sarah.Run(ctx, sarah.NewConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %s\n", err)
		os.Exit(1)
	}

	logger.Infof("Bot is running with %d registered component(s). Press Ctrl+C to stop.", registry.Len())

	<-ctx.Done()

	logger.Infof("Shutting down...")
}

var echoPattern = regexp.MustCompile(`^\.echo`)

func registerEchoCommand() {
	props := sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier("echo").
		MatchPattern(echoPattern).
		Func(func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			msg := sarah.StripMessage(echoPattern, input.Message())
			if msg == "" {
				msg = "Usage: .echo <message>"
			}
			return discord.NewResponse(input, msg)
		}).
		Instruction("Input .echo <message> to have the bot echo your message back.").
		MustBuild()

	sarah.RegisterCommandProps(props)
}

func registerComponentsCommand() {
	props := sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier("components").
		MatchPattern(regexp.MustCompile(`^\.components`)).
		Func(func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			comps, err := newTestComponents()
			if err != nil {
				return nil, err
			}

			return discord.NewResponse(input, &discord.ComponentMessage{
				Message:    &discordgo.MessageSend{Content: "Try these out. They stop working in five minutes."},
				Components: comps,
			})
		}).
		Instruction("Input .components to receive buttons and a select menu.").
		MustBuild()

	sarah.RegisterCommandProps(props)
}

func newTestComponents() (*components.Components, error) {
	comps := components.New(extension)
	comps.Timeout = 5 * time.Minute
	comps.OnTimeout = func(c *components.Components) {
		logger.Debugf("%d test component(s) timed out.", len(c.All()))
	}

	greet := &components.Button{
		Label: "Greet",
		Style: discordgo.SuccessButton,
		Action: func(_ context.Context, c *components.ButtonContext) error {
			_, err := c.RespondEphemeral(fmt.Sprintf("Hello, %s!", c.User().Username))
			return err
		},
	}

	fail := &components.Button{
		Label:       "Fail",
		Style:       discordgo.DangerButton,
		DeferredAck: true,
		Checks: []components.ButtonCheck{
			func(_ context.Context, c *components.ButtonContext) error {
				if c.GuildID() == "" {
					return errors.New("This button only works in a server.")
				}
				return nil
			},
		},
		Action: func(_ context.Context, c *components.ButtonContext) error {
			c.Sentry.Breadcrumb(sentry.BreadcrumbDebug, func(capture *sentry.BreadcrumbCapture) {
				capture.Message = "About to fail on purpose."
			})
			return errors.New("failed on purpose")
		},
	}

	levels := make([]components.MenuOption, 0, len(loglevel.All))
	for _, level := range loglevel.All {
		levels = append(levels, components.MenuOption{
			Label:   level.Name(),
			Value:   level.Name(),
			Default: level == loglevel.Threshold(),
		})
	}

	menu := &components.Menu{
		Placeholder: "Log level",
		Options:     levels,
		Action: func(_ context.Context, c *components.MenuContext) error {
			level, ok := loglevel.FromString(c.Selected[0])
			if !ok {
				return fmt.Errorf("unknown level %q", c.Selected[0])
			}
			loglevel.SetThreshold(level)

			return c.Update(&discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{levelEmbed(level)},
			})
		},
	}

	docs := &components.LinkButton{
		Label: "Docs",
		URL:   "https://pkg.go.dev/github.com/kordex/discord-extensions",
	}

	for _, comp := range []components.Component{greet, fail, docs, menu} {
		if err := comps.Add(comp); err != nil {
			return nil, err
		}
	}

	return comps, nil
}

var logLevelPattern = regexp.MustCompile(`^\.loglevel`)

func registerLogLevelCommand() {
	props := sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier("loglevel").
		MatchPattern(logLevelPattern).
		Func(func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			name := sarah.StripMessage(logLevelPattern, input.Message())
			if name != "" {
				level, ok := loglevel.FromString(name)
				if !ok {
					return discord.NewResponse(input, fmt.Sprintf("Unknown level %q.", name))
				}
				loglevel.SetThreshold(level)
			}

			return discord.NewResponse(input, &discordgo.MessageSend{
				Embeds: []*discordgo.MessageEmbed{levelEmbed(loglevel.Threshold())},
			})
		}).
		Instruction("Input .loglevel [level] to show or change the log level.").
		MustBuild()

	sarah.RegisterCommandProps(props)
}

func levelEmbed(threshold *loglevel.Level) *discordgo.MessageEmbed {
	names := make([]string, 0, len(loglevel.All))
	for _, level := range loglevel.Enabled() {
		names = append(names, level.Name())
	}

	return threshold.Embed("Log level", "Enabled levels: "+strings.Join(names, ", "))
}
