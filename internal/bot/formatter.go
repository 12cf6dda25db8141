package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/0hneB/Daily-Challenge-Bot/internal/challenge"
	"github.com/0hneB/Daily-Challenge-Bot/internal/msgcat"
)

const (
	colorCreate      = 0x00ff00
	colorLeaderboard = 0x0000ff
	colorHelp        = 0x4caf50
)

// Formatter renders lifecycle results into Discord replies. All
// user-facing strings come from the message catalog with hard-coded
// fallbacks.
type Formatter struct {
	catalog *msgcat.Catalog
	prefix  string
}

func NewFormatter(catalog *msgcat.Catalog, prefix string) *Formatter {
	return &Formatter{catalog: catalog, prefix: prefix}
}

func (f *Formatter) render(key string, data map[string]any, fallback string) string {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Prefix"]; !ok {
		data["Prefix"] = f.prefix
	}
	return f.catalog.RenderOr(key, data, fallback)
}

func (f *Formatter) Creating() Response {
	return text(f.render("challenge.creating", nil, "Creating a new GeoGuessr challenge..."))
}

func (f *Formatter) ChallengeCreated(rec challenge.Record) Response {
	return embed(&discordgo.MessageEmbed{
		Title: f.render("challenge.created_title", map[string]any{"Seq": rec.Seq},
			fmt.Sprintf("Daily Challenge #%d", rec.Seq)),
		Description: f.render("challenge.created_desc", nil,
			"A new GeoGuessr challenge has been created! Click the link below to play:"),
		Color: colorCreate,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  f.render("challenge.created_link_field", nil, "Challenge Link"),
				Value: rec.URL,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: f.render("challenge.created_footer", nil,
				fmt.Sprintf("Use %sresults to post the leaderboard when you're ready", f.prefix)),
		},
	})
}

func (f *Formatter) CreateFailed() Response {
	return text(f.render("challenge.create_failed", nil,
		"Failed to create a GeoGuessr challenge. Please try again later."))
}

func (f *Formatter) UnknownMap(key string) Response {
	return text(f.render("challenge.unknown_map", map[string]any{"Key": key},
		fmt.Sprintf("Unknown map %s. Use %smaps to list the available maps.", key, f.prefix)))
}

func (f *Formatter) UnknownMode(key string) Response {
	return text(f.render("challenge.unknown_mode", map[string]any{"Key": key},
		fmt.Sprintf("Unknown mode %s. Use %smodes to list the available modes.", key, f.prefix)))
}

func (f *Formatter) Fetching() Response {
	return text(f.render("leaderboard.fetching", nil,
		"Fetching leaderboard for the current challenge..."))
}

func (f *Formatter) FetchingFor(id string) Response {
	return text(f.render("leaderboard.fetching_for", map[string]any{"ID": id},
		fmt.Sprintf("Fetching leaderboard for challenge %s...", id)))
}

func (f *Formatter) Leaderboard(summary challenge.Summary) Response {
	desc := f.render("leaderboard.empty", nil, "No players have completed this challenge yet.")
	if len(summary.Entries) > 0 {
		lines := make([]string, 0, len(summary.Entries))
		for _, e := range summary.Entries {
			lines = append(lines, fmt.Sprintf("%d. %s (%d)", e.Rank, e.Nick, e.Score))
		}
		desc = strings.Join(lines, "\n")
	}
	return embed(&discordgo.MessageEmbed{
		Title:       f.render("leaderboard.title", nil, "Leaderboard from the challenge:"),
		Description: desc,
		Color:       colorLeaderboard,
		Footer: &discordgo.MessageEmbedFooter{
			Text: f.render("leaderboard.footer", nil,
				fmt.Sprintf("Use %schallenge to create a new challenge!", f.prefix)),
		},
	})
}

func (f *Formatter) FetchFailed() Response {
	return text(f.render("leaderboard.fetch_failed", nil,
		"Failed to retrieve leaderboard for the challenge."))
}

func (f *Formatter) NoActive() Response {
	return text(f.render("errors.no_active", nil,
		fmt.Sprintf("No active challenge found. Create one with %schallenge first.", f.prefix)))
}

func (f *Formatter) Status(st challenge.Status) Response {
	if st.Current == nil {
		return text(f.render("status.none", nil,
			fmt.Sprintf("No active challenge found. Create one with %schallenge.", f.prefix)))
	}
	rec := st.Current
	hours := int(st.Age / time.Hour)
	return embed(&discordgo.MessageEmbed{
		Title: f.render("status.title", nil, "Current Challenge Status"),
		Description: f.render("status.active", map[string]any{"Seq": rec.Seq},
			fmt.Sprintf("Challenge #%d is active.", rec.Seq)),
		Color: colorCreate,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  f.render("status.id_field", nil, "Challenge ID"),
				Value: rec.ID,
			},
			{
				Name:  f.render("status.link_field", nil, "Challenge Link"),
				Value: rec.URL,
			},
			{
				Name: f.render("status.created_field", nil, "Created"),
				Value: f.render("status.created_ago", map[string]any{"Hours": hours},
					fmt.Sprintf("%d hours ago", hours)),
			},
			{
				Name:  f.render("status.history_field", nil, "Challenges so far"),
				Value: fmt.Sprintf("%d", st.HistoryCount+1),
			},
		},
	})
}

func (f *Formatter) Maps() Response {
	var sb strings.Builder
	for _, key := range challenge.MapKeys() {
		cfg, err := challenge.MapByKey(key)
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("`%s` — %s\n", cfg.Key, cfg.Name))
	}
	return embed(&discordgo.MessageEmbed{
		Title:       f.render("listing.maps_title", nil, "Available maps"),
		Description: sb.String(),
		Color:       colorHelp,
	})
}

func (f *Formatter) Modes() Response {
	var sb strings.Builder
	for _, key := range challenge.ModeKeys() {
		cfg, err := challenge.ModeByKey(key)
		if err != nil {
			continue
		}
		s := cfg.Settings
		restrictions := []string{}
		if s.ForbidMoving {
			restrictions = append(restrictions, "no move")
		}
		if s.ForbidZooming {
			restrictions = append(restrictions, "no zoom")
		}
		if s.ForbidRotating {
			restrictions = append(restrictions, "no pan")
		}
		detail := "free"
		if len(restrictions) > 0 {
			detail = strings.Join(restrictions, ", ")
		}
		sb.WriteString(fmt.Sprintf("`%s` — %s (%s, %ds per round)\n", cfg.Key, cfg.Name, detail, s.TimeLimit))
	}
	return embed(&discordgo.MessageEmbed{
		Title:       f.render("listing.modes_title", nil, "Available modes"),
		Description: sb.String(),
		Color:       colorHelp,
	})
}

func (f *Formatter) Schedule(rotation challenge.Rotation) Response {
	var sb strings.Builder
	for day := time.Sunday; day <= time.Saturday; day++ {
		e := rotation.EntryFor(day)
		sb.WriteString(fmt.Sprintf("%s: `%s` / `%s`\n", day, e.MapKey, e.ModeKey))
	}
	return embed(&discordgo.MessageEmbed{
		Title:       f.render("listing.schedule_title", nil, "Weekly rotation"),
		Description: sb.String(),
		Color:       colorHelp,
	})
}

func (f *Formatter) DailyStarted(hour, minute int, tz string) Response {
	at := fmt.Sprintf("%02d:%02d", hour, minute)
	return text(f.render("daily.started", map[string]any{"Time": at, "TZ": tz},
		fmt.Sprintf("Daily challenges have been scheduled to post at %s (%s).", at, tz)))
}

func (f *Formatter) DailyAlreadyRunning() Response {
	return text(f.render("daily.already_running", nil,
		"The daily challenge schedule is already running."))
}

func (f *Formatter) DailyStopped() Response {
	return text(f.render("daily.stopped", nil, "Daily challenges have been stopped."))
}

func (f *Formatter) DailyNotRunning() Response {
	return text(f.render("daily.not_running", nil,
		"The daily challenge schedule is not running."))
}

func (f *Formatter) Forcing() Response {
	return text(f.render("daily.forcing", nil, "Running the daily challenge cycle now..."))
}

func (f *Formatter) Help() Response {
	p := f.prefix
	fields := []*discordgo.MessageEmbedField{
		{Name: p + "challenge [map mode]", Value: "Creates a new GeoGuessr challenge, today's rotation entry or an explicit map/mode pair"},
		{Name: p + "leaderboard", Value: "Shows the current challenge leaderboard"},
		{Name: p + "results [id]", Value: "Posts the leaderboard for the current challenge, or for a specific challenge ID"},
		{Name: p + "status", Value: "Shows the status of the current challenge"},
		{Name: p + "maps", Value: "Lists the available maps"},
		{Name: p + "modes", Value: "Lists the available modes"},
		{Name: p + "schedule", Value: "Shows the weekly rotation"},
		{Name: p + "daily start|stop|now", Value: "Controls the daily challenge schedule"},
	}
	return embed(&discordgo.MessageEmbed{
		Title:       "GeoGuessr Challenge Bot Commands",
		Description: "Here are the available commands:",
		Color:       colorHelp,
		Fields:      fields,
	})
}

// Cycle reports both halves of a daily cycle: the close-out outcome when
// there was a previous challenge, then the creation outcome.
func (f *Formatter) Cycle(res challenge.CycleResult) []Response {
	var out []Response
	if res.Summary != nil {
		out = append(out, f.Leaderboard(*res.Summary))
	} else if res.CloseErr != nil && !errors.Is(res.CloseErr, challenge.ErrNoActiveChallenge) {
		out = append(out, f.FetchFailed())
	}
	if res.StartErr != nil {
		return append(out, f.CreateFailed())
	}
	return append(out, f.ChallengeCreated(res.Record))
}

func (f *Formatter) Unknown() Response {
	return text(fmt.Sprintf("Unknown command. Try '%shelp'.", f.prefix))
}

func (f *Formatter) UsageChallenge() Response {
	return text(fmt.Sprintf("Usage: %schallenge [map mode] — see %smaps and %smodes.", f.prefix, f.prefix, f.prefix))
}

func (f *Formatter) UsageDaily() Response {
	return text(fmt.Sprintf("Usage: %sdaily start|stop|now", f.prefix))
}
