package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DiscordToken   string
	GeoguessrToken string

	BotPrefix string

	AllowedChannels []string

	GeoguessrBaseURL string
	HTTPTimeout      time.Duration

	DailyPostHour   int
	DailyPostMinute int
	DailyPostTZ     string

	LeaderboardLimit int

	MsgOverrideDir string
}

// Load reads an optional .env file and then the process environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		BotPrefix:        "!",
		GeoguessrBaseURL: "https://www.geoguessr.com",
		HTTPTimeout:      10 * time.Second,
		DailyPostHour:    12,
		DailyPostMinute:  0,
		DailyPostTZ:      "UTC",
		LeaderboardLimit: 10,
	}

	cfg.DiscordToken = strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	cfg.GeoguessrToken = strings.TrimSpace(os.Getenv("GEOGUESSR_TOKEN"))

	if v := strings.TrimSpace(os.Getenv("BOT_PREFIX")); v != "" {
		cfg.BotPrefix = v
	}

	if v := strings.TrimSpace(os.Getenv("ALLOWED_CHANNELS")); v != "" {
		parts := strings.Split(v, ",")
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				cfg.AllowedChannels = append(cfg.AllowedChannels, s)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("GEOGUESSR_BASE_URL")); v != "" {
		cfg.GeoguessrBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}

	if v := strings.TrimSpace(os.Getenv("DAILY_POST_TIME")); v != "" {
		h, m, err := ParsePostTime(v)
		if err != nil {
			return nil, err
		}
		cfg.DailyPostHour = h
		cfg.DailyPostMinute = m
	}
	if v := strings.TrimSpace(os.Getenv("DAILY_POST_TZ")); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			return nil, fmt.Errorf("DAILY_POST_TZ: %w", err)
		}
		cfg.DailyPostTZ = v
	}

	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LeaderboardLimit = n
		}
	}

	cfg.MsgOverrideDir = strings.TrimSpace(os.Getenv("MSG_OVERRIDE_DIR"))

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.GeoguessrToken == "" {
		return nil, errors.New("GEOGUESSR_TOKEN is required")
	}
	if len(cfg.AllowedChannels) == 0 {
		return nil, errors.New("ALLOWED_CHANNELS is required")
	}

	return cfg, nil
}

// ParsePostTime parses a wall-clock "HH:MM" value.
func ParsePostTime(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("post time %q is not in HH:MM form", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("post time %q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("post time %q has an invalid minute", s)
	}
	return h, m, nil
}

// Location resolves the configured daily post timezone.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.DailyPostTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
