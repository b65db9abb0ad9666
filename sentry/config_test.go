package sentry

import (
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	if config.DSN != "" {
		t.Errorf("Expected empty DSN, got %q", config.DSN)
	}

	if config.TracesSampleRate != 1.0 {
		t.Errorf("Expected TracesSampleRate to be 1.0, got %f", config.TracesSampleRate)
	}

	if config.MaxBreadcrumbs != 100 {
		t.Errorf("Expected MaxBreadcrumbs to be 100, got %d", config.MaxBreadcrumbs)
	}

	if config.EventIDTTL != time.Hour {
		t.Errorf("Expected EventIDTTL to be %s, got %s", time.Hour, config.EventIDTTL)
	}

	expected := CaptureTypes{Users: true, Channels: true, Guilds: true, Messages: true, Roles: true}
	if config.CaptureTypes != expected {
		t.Errorf("Expected all capture types to be enabled, got %+v", config.CaptureTypes)
	}
}
