package config

import (
	"log/slog"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	o, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if o.TickRate != 60 {
		t.Errorf("Expected default tick rate 60, got %v", o.TickRate)
	}
	if o.SlogLevel() != slog.LevelInfo {
		t.Errorf("Expected default info level, got %v", o.SlogLevel())
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("ACTORKIT_TICK_RATE", "120")
	t.Setenv("ACTORKIT_LOG_LEVEL", "debug")
	t.Setenv("ACTORKIT_PROFILE", "profiles/brawler.yaml")
	t.Setenv("ACTORKIT_MUTE", "true")

	o, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if o.TickRate != 120 || o.Profile != "profiles/brawler.yaml" || !o.Mute {
		t.Errorf("Expected env overrides applied, got %+v", o)
	}
	if o.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", o.SlogLevel())
	}
}

func TestParseEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("ACTORKIT_TICK_RATE", "fast")
	if _, err := ParseEnv(); err == nil {
		t.Error("Expected error for non-numeric tick rate")
	}
}
