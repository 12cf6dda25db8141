package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0hneB/Daily-Challenge-Bot/internal/geoguessr"
)

const defaultLeaderboardCap = 10

// API is the remote surface the manager needs from the GeoGuessr client.
type API interface {
	CreateChallenge(ctx context.Context, mapID string, settings geoguessr.ModeSettings) (string, error)
	FetchResults(ctx context.Context, token string) (*geoguessr.Highscores, error)
}

// Manager owns the single current challenge record and the append-only
// history log. All state-touching operations serialize on one mutex, so a
// slow remote call can never let a second trigger interleave.
type Manager struct {
	mu sync.Mutex

	api            API
	rotation       Rotation
	leaderboardCap int
	logger         *zap.Logger
	now            func() time.Time

	current *Record
	history []Record
}

type ManagerOption func(*Manager)

func WithLeaderboardCap(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.leaderboardCap = n
		}
	}
}

func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides the manager clock. Tests use this to pin weekdays.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(api API, rotation Rotation, opts ...ManagerOption) *Manager {
	m := &Manager{
		api:            api,
		rotation:       rotation,
		leaderboardCap: defaultLeaderboardCap,
		logger:         zap.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartChallenge validates the keys, creates a remote challenge and installs
// it as current, moving the previous record into history. On any failure the
// state is left untouched.
func (m *Manager) StartChallenge(ctx context.Context, mapKey, modeKey string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startLocked(ctx, mapKey, modeKey)
}

func (m *Manager) startLocked(ctx context.Context, mapKey, modeKey string) (Record, error) {
	mapCfg, err := MapByKey(mapKey)
	if err != nil {
		return Record{}, err
	}
	modeCfg, err := ModeByKey(modeKey)
	if err != nil {
		return Record{}, err
	}

	token, err := m.api.CreateChallenge(ctx, mapCfg.MapID, modeCfg.Settings)
	if err != nil {
		m.logger.Warn("challenge creation failed",
			zap.String("map", mapKey), zap.String("mode", modeKey), zap.Error(err))
		return Record{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	if m.current != nil {
		m.history = append(m.history, *m.current)
	}
	rec := Record{
		ID:        token,
		URL:       geoguessr.ChallengeURL(token),
		MapKey:    mapKey,
		ModeKey:   modeKey,
		CreatedAt: m.now(),
		Seq:       len(m.history) + 1,
	}
	m.current = &rec

	m.logger.Info("challenge started",
		zap.String("id", rec.ID),
		zap.String("map", mapKey),
		zap.String("mode", modeKey),
		zap.Int("seq", rec.Seq))
	return rec, nil
}

// CloseOutCurrent fetches the leaderboard of the current challenge. It is
// read-only with respect to manager state regardless of outcome.
func (m *Manager) CloseOutCurrent(ctx context.Context) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeOutLocked(ctx)
}

func (m *Manager) closeOutLocked(ctx context.Context) (Summary, error) {
	if m.current == nil {
		return Summary{}, ErrNoActiveChallenge
	}
	return m.resultsLocked(ctx, m.current.ID)
}

// ResultsFor builds a leaderboard summary for an explicit challenge token,
// current or not.
func (m *Manager) ResultsFor(ctx context.Context, token string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsLocked(ctx, token)
}

func (m *Manager) resultsLocked(ctx context.Context, token string) (Summary, error) {
	hs, err := m.api.FetchResults(ctx, token)
	if err != nil {
		m.logger.Warn("leaderboard fetch failed", zap.String("id", token), zap.Error(err))
		return Summary{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return buildSummary(token, hs, m.leaderboardCap), nil
}

// buildSummary ranks entries by response order and caps the list. A
// malformed entry degrades to defaults instead of aborting the rest.
func buildSummary(token string, hs *geoguessr.Highscores, limit int) Summary {
	summary := Summary{ChallengeID: token}
	if hs == nil {
		return summary
	}
	for i, item := range hs.Items {
		if limit > 0 && len(summary.Entries) >= limit {
			break
		}
		nick := item.Game.Player.Nick
		if nick == "" {
			nick = "Unknown"
		}
		summary.Entries = append(summary.Entries, LeaderboardEntry{
			Rank:  i + 1,
			Nick:  nick,
			Score: item.Game.Player.TotalScore.Amount,
		})
	}
	return summary
}

// RunDailyCycle closes out the current challenge (when one exists) and then
// starts the challenge assigned to today's weekday. A close-out failure is
// reported in the result but never blocks the creation step. The whole cycle
// holds the manager lock, so triggers cannot interleave.
func (m *Manager) RunDailyCycle(ctx context.Context) CycleResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := CycleResult{RunID: uuid.NewString()}
	log := m.logger.With(zap.String("run_id", res.RunID))

	if m.current != nil {
		summary, err := m.closeOutLocked(ctx)
		if err != nil {
			res.CloseErr = err
			log.Warn("daily cycle close-out failed", zap.Error(err))
		} else {
			res.Summary = &summary
		}
	}

	entry := m.rotation.EntryFor(m.now().Weekday())
	rec, err := m.startLocked(ctx, entry.MapKey, entry.ModeKey)
	if err != nil {
		res.StartErr = err
		log.Warn("daily cycle start failed",
			zap.String("map", entry.MapKey), zap.String("mode", entry.ModeKey), zap.Error(err))
		return res
	}
	res.Record = rec
	log.Info("daily cycle complete", zap.String("id", rec.ID), zap.Int("seq", rec.Seq))
	return res
}

// Status returns a read-only snapshot; the current record is copied.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{HistoryCount: len(m.history)}
	if m.current != nil {
		rec := *m.current
		st.Current = &rec
		st.Age = m.now().Sub(rec.CreatedAt)
	}
	return st
}

// History returns a copy of the history log, oldest first.
func (m *Manager) History() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.history...)
}
