package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestNextFireSameDay(t *testing.T) {
	now := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	next := NextFire(now, 12, 0, time.UTC)
	want := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("got %v, want %v", next, want)
	}
}

func TestNextFireRollsToNextDay(t *testing.T) {
	now := time.Date(2024, 6, 2, 13, 0, 0, 0, time.UTC)
	next := NextFire(now, 12, 0, time.UTC)
	want := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("got %v, want %v", next, want)
	}

	// Exactly at fire time counts as missed; schedule tomorrow.
	at := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	next = NextFire(at, 12, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("at boundary: got %v, want %v", next, want)
	}
}

func TestNextFireHonorsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// 11:00 UTC is 13:00 in UTC+2, past a 12:00 local fire time.
	now := time.Date(2024, 6, 2, 11, 0, 0, 0, time.UTC)
	next := NextFire(now, 12, 0, loc)
	want := time.Date(2024, 6, 3, 12, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("got %v, want %v", next, want)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	d, err := NewDaily(12, 0, time.UTC, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	if !d.Start() {
		t.Fatalf("first Start should succeed")
	}
	defer d.Stop()
	if d.Start() {
		t.Fatalf("second Start must be a no-op")
	}
	if !d.Running() {
		t.Fatalf("scheduler should report running")
	}
}

func TestStopWhenStopped(t *testing.T) {
	d, err := NewDaily(12, 0, time.UTC, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	if d.Stop() {
		t.Fatalf("Stop on a stopped scheduler must return false")
	}
	if !d.Start() {
		t.Fatalf("Start: should succeed")
	}
	if !d.Stop() {
		t.Fatalf("Stop on a running scheduler must return true")
	}
	if d.Running() {
		t.Fatalf("scheduler should report stopped")
	}
	if d.Stop() {
		t.Fatalf("second Stop must return false")
	}
}

func TestRestartAfterStop(t *testing.T) {
	d, err := NewDaily(12, 0, time.UTC, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	if !d.Start() || !d.Stop() {
		t.Fatalf("start/stop cycle failed")
	}
	if !d.Start() {
		t.Fatalf("scheduler must be restartable without process restart")
	}
	d.Stop()
}

func TestLoopFiresAtWallClockTime(t *testing.T) {
	fired := make(chan struct{}, 1)
	// Pin the clock just before noon so the first fire is milliseconds away.
	now := time.Date(2024, 6, 2, 11, 59, 59, int(990*time.Millisecond), time.UTC)
	d, err := NewDaily(12, 0, time.UTC, func(ctx context.Context) {
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("task context must carry a deadline")
		}
		select {
		case fired <- struct{}{}:
		default:
		}
	}, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	if !d.Start() {
		t.Fatalf("Start: should succeed")
	}
	defer d.Stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not fire")
	}
}

func TestInvalidFireTime(t *testing.T) {
	if _, err := NewDaily(24, 0, time.UTC, func(ctx context.Context) {}); err == nil {
		t.Fatalf("expected error for hour 24")
	}
	if _, err := NewDaily(12, 60, time.UTC, func(ctx context.Context) {}); err == nil {
		t.Fatalf("expected error for minute 60")
	}
	if _, err := NewDaily(12, 0, time.UTC, nil); err == nil {
		t.Fatalf("expected error for nil task")
	}
}
