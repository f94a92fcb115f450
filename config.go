package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the bot configuration.
type Config struct {
	BotToken        string
	AdminIDs        []int64       // user ids allowed to use the admin panel
	ChannelUsername string        // required channel, with a leading @
	YouTubeLink     string
	TwitchLink      string
	SupportUsername string
	BotLink         string        // deep link encoded into the promo QR code
	DBPath          string        // SQLite path
	Cooldown        time.Duration // per-user antispam interval, 0 disables
	LogLevel        string        // debug|info|warn|error
	LogPretty       bool          // console encoder instead of JSON
	BotDebug        bool          // telegram-bot-api debug mode
}

// LoadConfig loads configuration from a .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		ChannelUsername: os.Getenv("CHANNEL_USERNAME"),
		YouTubeLink:     os.Getenv("YOUTUBE_LINK"),
		TwitchLink:      os.Getenv("TWITCH_LINK"),
		SupportUsername: os.Getenv("SUPPORT_USERNAME"),
		BotLink:         os.Getenv("BOT_LINK"),
		DBPath:          getenv("DB_PATH", "giveaway.db"),
		Cooldown:        getdur("COOLDOWN", 5*time.Second),
		LogLevel:        strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:       getbool("LOG_PRETTY", false),
		BotDebug:        getbool("BOT_DEBUG", false),
	}

	if ids := os.Getenv("ADMIN_IDS"); ids != "" {
		parsed, err := parseAdminIDs(ids)
		if err != nil {
			return nil, err
		}
		cfg.AdminIDs = parsed
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.ChannelUsername == "" {
		return nil, fmt.Errorf("CHANNEL_USERNAME is required")
	}
	if !strings.HasPrefix(cfg.ChannelUsername, "@") {
		cfg.ChannelUsername = "@" + cfg.ChannelUsername
	}
	if cfg.Cooldown < 0 {
		return nil, fmt.Errorf("COOLDOWN must not be negative")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return cfg, nil
}

// IsAdmin checks if a user id is in the admin allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// parseAdminIDs parses a comma-separated list of numeric user ids.
func parseAdminIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid id %q", trimmed)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
