package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0hneB/Daily-Challenge-Bot/internal/challenge"
)

// Lifecycle is the manager surface the dispatcher drives.
type Lifecycle interface {
	StartChallenge(ctx context.Context, mapKey, modeKey string) (challenge.Record, error)
	CloseOutCurrent(ctx context.Context) (challenge.Summary, error)
	ResultsFor(ctx context.Context, token string) (challenge.Summary, error)
	RunDailyCycle(ctx context.Context) challenge.CycleResult
	Status() challenge.Status
}

// Schedule is the scheduler surface the dispatcher drives.
type Schedule interface {
	Start() bool
	Stop() bool
	Running() bool
}

// Dispatcher routes parsed commands to the lifecycle manager and renders
// the outcome. It holds no challenge state of its own.
type Dispatcher struct {
	mgr      Lifecycle
	sched    Schedule
	fmtr     *Formatter
	rotation challenge.Rotation
	logger   *zap.Logger
	now      func() time.Time

	dailyHour   int
	dailyMinute int
	dailyTZ     string
}

type DispatcherOption func(*Dispatcher)

func WithLogger(l *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithClock overrides the dispatcher clock used for no-override challenge
// creation.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// WithDailyTime is display metadata for daily start acknowledgements.
func WithDailyTime(hour, minute int, tz string) DispatcherOption {
	return func(d *Dispatcher) {
		d.dailyHour = hour
		d.dailyMinute = minute
		d.dailyTZ = tz
	}
}

func NewDispatcher(mgr Lifecycle, sched Schedule, fmtr *Formatter, rotation challenge.Rotation, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		mgr:         mgr,
		sched:       sched,
		fmtr:        fmtr,
		rotation:    rotation,
		logger:      zap.NewNop(),
		now:         time.Now,
		dailyHour:   12,
		dailyMinute: 0,
		dailyTZ:     "UTC",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one prefix-stripped command line and returns the replies
// to send. An empty line renders help.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) []Response {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return []Response{d.fmtr.Help()}
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "help_geo":
		return []Response{d.fmtr.Help()}
	case "challenge":
		return d.handleChallenge(ctx, args)
	case "leaderboard":
		return d.handleLeaderboard(ctx)
	case "results", "post_results":
		return d.handleResults(ctx, args)
	case "status":
		return []Response{d.fmtr.Status(d.mgr.Status())}
	case "maps":
		return []Response{d.fmtr.Maps()}
	case "modes":
		return []Response{d.fmtr.Modes()}
	case "schedule":
		return []Response{d.fmtr.Schedule(d.rotation)}
	case "daily":
		return d.handleDaily(ctx, args)
	default:
		return []Response{d.fmtr.Unknown()}
	}
}

func (d *Dispatcher) handleChallenge(ctx context.Context, args []string) []Response {
	var mapKey, modeKey string
	switch len(args) {
	case 0:
		entry := d.rotation.EntryFor(d.now().Weekday())
		mapKey, modeKey = entry.MapKey, entry.ModeKey
	case 2:
		mapKey, modeKey = args[0], args[1]
	default:
		return []Response{d.fmtr.UsageChallenge()}
	}

	out := []Response{d.fmtr.Creating()}
	rec, err := d.mgr.StartChallenge(ctx, mapKey, modeKey)
	if err != nil {
		return append(out, d.startFailure(err, mapKey, modeKey))
	}
	return append(out, d.fmtr.ChallengeCreated(rec))
}

func (d *Dispatcher) startFailure(err error, mapKey, modeKey string) Response {
	switch {
	case errors.Is(err, challenge.ErrUnknownMap):
		return d.fmtr.UnknownMap(mapKey)
	case errors.Is(err, challenge.ErrUnknownMode):
		return d.fmtr.UnknownMode(modeKey)
	default:
		d.logger.Warn("challenge creation failed", zap.Error(err))
		return d.fmtr.CreateFailed()
	}
}

func (d *Dispatcher) handleLeaderboard(ctx context.Context) []Response {
	out := []Response{d.fmtr.Fetching()}
	summary, err := d.mgr.CloseOutCurrent(ctx)
	if err != nil {
		if errors.Is(err, challenge.ErrNoActiveChallenge) {
			return []Response{d.fmtr.NoActive()}
		}
		d.logger.Warn("leaderboard fetch failed", zap.Error(err))
		return append(out, d.fmtr.FetchFailed())
	}
	return append(out, d.fmtr.Leaderboard(summary))
}

func (d *Dispatcher) handleResults(ctx context.Context, args []string) []Response {
	if len(args) == 0 {
		return d.handleLeaderboard(ctx)
	}
	token := args[0]
	out := []Response{d.fmtr.FetchingFor(token)}
	summary, err := d.mgr.ResultsFor(ctx, token)
	if err != nil {
		d.logger.Warn("leaderboard fetch failed", zap.String("id", token), zap.Error(err))
		return append(out, d.fmtr.FetchFailed())
	}
	return append(out, d.fmtr.Leaderboard(summary))
}

func (d *Dispatcher) handleDaily(ctx context.Context, args []string) []Response {
	if len(args) != 1 {
		return []Response{d.fmtr.UsageDaily()}
	}
	switch strings.ToLower(args[0]) {
	case "start":
		if !d.sched.Start() {
			return []Response{d.fmtr.DailyAlreadyRunning()}
		}
		return []Response{d.fmtr.DailyStarted(d.dailyHour, d.dailyMinute, d.dailyTZ)}
	case "stop":
		if !d.sched.Stop() {
			return []Response{d.fmtr.DailyNotRunning()}
		}
		return []Response{d.fmtr.DailyStopped()}
	case "now":
		out := []Response{d.fmtr.Forcing()}
		return append(out, d.fmtr.Cycle(d.mgr.RunDailyCycle(ctx))...)
	default:
		return []Response{d.fmtr.UsageDaily()}
	}
}
