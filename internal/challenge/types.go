package challenge

import (
	"errors"
	"time"
)

var (
	ErrUnknownMap        = errors.New("unknown map key")
	ErrUnknownMode       = errors.New("unknown mode key")
	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrCreateFailed      = errors.New("challenge creation failed")
	ErrFetchFailed       = errors.New("leaderboard fetch failed")
)

// Record describes one created challenge. The manager owns exactly one
// current record at a time; superseded records live in the history log.
type Record struct {
	ID        string
	URL       string
	MapKey    string
	ModeKey   string
	CreatedAt time.Time
	Seq       int
}

// LeaderboardEntry is one ranked row of a challenge leaderboard. Built
// fresh from each remote payload, never cached.
type LeaderboardEntry struct {
	Rank  int
	Nick  string
	Score int
}

// Summary is a capped, ranked leaderboard for one challenge. An empty
// Entries slice is a valid result, not a failure.
type Summary struct {
	ChallengeID string
	Entries     []LeaderboardEntry
}

// Status is a read-only snapshot of the manager state.
type Status struct {
	Current      *Record
	HistoryCount int
	Age          time.Duration
}

// CycleResult reports one daily-cycle invocation. CloseErr carries a
// close-out failure without having blocked the creation step.
type CycleResult struct {
	RunID    string
	Summary  *Summary
	CloseErr error
	Record   Record
	StartErr error
}
