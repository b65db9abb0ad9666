package sentry

import "time"

// CaptureTypes declares which Discord entities captures are allowed to record.
// A disabled type is silently dropped by the corresponding capture setter.
type CaptureTypes struct {
	Users    bool `json:"users" yaml:"users" env:"USERS"`
	Channels bool `json:"channels" yaml:"channels" env:"CHANNELS"`
	Guilds   bool `json:"guilds" yaml:"guilds" env:"GUILDS"`
	Messages bool `json:"messages" yaml:"messages" env:"MESSAGES"`
	Roles    bool `json:"roles" yaml:"roles" env:"ROLES"`
}

// Config contains configuration variables for the Sentry Adapter.
type Config struct {
	// DSN is the Sentry project DSN. Reporting is disabled when this is empty and no transport is injected.
	DSN string `json:"dsn" yaml:"dsn" env:"DSN"`

	Environment string `json:"environment" yaml:"environment" env:"ENVIRONMENT"`

	Release string `json:"release" yaml:"release" env:"RELEASE"`

	// Debug makes the SDK print diagnostic output.
	Debug bool `json:"debug" yaml:"debug" env:"DEBUG"`

	// TracesSampleRate is the share of transactions sent to Sentry. Zero disables tracing.
	TracesSampleRate float64 `json:"traces_sample_rate" yaml:"traces_sample_rate" env:"TRACES_SAMPLE_RATE"`

	// MaxBreadcrumbs caps the breadcrumbs attached to a single submission. The oldest ones are dropped first.
	MaxBreadcrumbs int `json:"max_breadcrumbs" yaml:"max_breadcrumbs" env:"MAX_BREADCRUMBS"`

	// EventIDTTL is how long submitted event IDs are remembered for feedback.
	EventIDTTL time.Duration `json:"event_id_ttl" yaml:"event_id_ttl" env:"EVENT_ID_TTL"`

	CaptureTypes CaptureTypes `json:"capture_types" yaml:"capture_types" envPrefix:"CAPTURE_"`
}

// NewConfig creates and returns a new Config instance with default settings.
// DSN is empty, so reporting stays disabled until it is set.
func NewConfig() *Config {
	return &Config{
		DSN:              "",
		Environment:      "production",
		TracesSampleRate: 1.0,
		MaxBreadcrumbs:   100,
		EventIDTTL:       time.Hour,
		CaptureTypes: CaptureTypes{
			Users:    true,
			Channels: true,
			Guilds:   true,
			Messages: true,
			Roles:    true,
		},
	}
}
