package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "bot-token")
	t.Setenv("GEOGUESSR_TOKEN", "ncfa-token")
	t.Setenv("ALLOWED_CHANNELS", "123, 456")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BotPrefix != "!" {
		t.Fatalf("prefix: got %q", cfg.BotPrefix)
	}
	if len(cfg.AllowedChannels) != 2 || cfg.AllowedChannels[0] != "123" || cfg.AllowedChannels[1] != "456" {
		t.Fatalf("allowed channels: got %v", cfg.AllowedChannels)
	}
	if cfg.DailyPostHour != 12 || cfg.DailyPostMinute != 0 {
		t.Fatalf("daily post time: got %02d:%02d", cfg.DailyPostHour, cfg.DailyPostMinute)
	}
	if cfg.LeaderboardLimit != 10 {
		t.Fatalf("leaderboard limit: got %d", cfg.LeaderboardLimit)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("http timeout: got %v", cfg.HTTPTimeout)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("GEOGUESSR_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing GEOGUESSR_TOKEN")
	}

	setRequired(t)
	t.Setenv("ALLOWED_CHANNELS", " , ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty ALLOWED_CHANNELS")
	}
}

func TestLoadPostTime(t *testing.T) {
	setRequired(t)
	t.Setenv("DAILY_POST_TIME", "09:30")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DailyPostHour != 9 || cfg.DailyPostMinute != 30 {
		t.Fatalf("daily post time: got %02d:%02d", cfg.DailyPostHour, cfg.DailyPostMinute)
	}

	t.Setenv("DAILY_POST_TIME", "25:00")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid hour")
	}
}

func TestParsePostTime(t *testing.T) {
	cases := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"12:00", 12, 0, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"7:5", 7, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"noon", 0, 0, true},
	}
	for _, c := range cases {
		h, m, err := ParsePostTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if h != c.h || m != c.m {
			t.Fatalf("%q: got %02d:%02d", c.in, h, m)
		}
	}
}
