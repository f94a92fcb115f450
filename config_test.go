package main

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("CHANNEL_USERNAME", "@giveaway_channel")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("COOLDOWN", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cooldown != 5*time.Second {
		t.Fatalf("cooldown = %v, want 5s", cfg.Cooldown)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.IsAdmin(1) {
		t.Fatal("no admins configured, nobody may be admin")
	}
}

func TestLoadConfigAdminIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_IDS", "99, 100")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsAdmin(99) || !cfg.IsAdmin(100) || cfg.IsAdmin(42) {
		t.Fatalf("allow-list = %v", cfg.AdminIDs)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("missing BOT_TOKEN accepted")
	}

	setRequiredEnv(t)
	t.Setenv("ADMIN_IDS", "99,abc")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("non-numeric admin id accepted")
	}

	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("unknown log level accepted")
	}
}

func TestLoadConfigNormalizesChannel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CHANNEL_USERNAME", "giveaway_channel")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChannelUsername != "@giveaway_channel" {
		t.Fatalf("channel = %q", cfg.ChannelUsername)
	}
}
