package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"

	"github.com/kordex/discord-extensions/sentry"
)

// Config contains configuration variables for the Discord Adapter.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token" env:"DISCORD_TOKEN"`

	// HelpCommand is the command string that triggers help.
	// When a user sends this exact string, the input is converted to sarah.HelpInput.
	HelpCommand string `json:"help_command" yaml:"help_command" env:"DISCORD_HELP_COMMAND"`

	// AbortCommand is the command string that triggers context cancellation.
	// When a user sends this exact string, the input is converted to sarah.AbortInput.
	AbortCommand string `json:"abort_command" yaml:"abort_command" env:"DISCORD_ABORT_COMMAND"`

	// FeedbackCommand is the prefix of the command that sends feedback on a reported error.
	FeedbackCommand string `json:"feedback_command" yaml:"feedback_command" env:"DISCORD_FEEDBACK_COMMAND"`

	// Intents declares the Gateway Intents the bot requires.
	Intents discordgo.Intent `json:"intents" yaml:"intents" env:"DISCORD_INTENTS"`

	// Sentry configures error reporting. Its variables are read with the SENTRY_ prefix.
	Sentry *sentry.Config `json:"sentry" yaml:"sentry" envPrefix:"SENTRY_"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:           "",
		HelpCommand:     ".help",
		AbortCommand:    ".abort",
		FeedbackCommand: ".feedback",
		Intents:         discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent,
		Sentry:          sentry.NewConfig(),
	}
}

// ConfigFromEnv creates a Config with default settings and overrides them with environment variables.
func ConfigFromEnv() (*Config, error) {
	return configFromEnv(nil)
}

// configFromEnv reads the given variables, or the process environment when nil.
func configFromEnv(environment map[string]string) (*Config, error) {
	config := NewConfig()

	err := env.ParseWithOptions(config, env.Options{Environment: environment})
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration from environment: %w", err)
	}

	return config, nil
}
