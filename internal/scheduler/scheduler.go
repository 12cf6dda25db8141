// Package scheduler fires a task once per day at a fixed wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is the work invoked on each fire. The context carries the per-run
// deadline.
type Task func(ctx context.Context)

const defaultTaskTimeout = 2 * time.Minute

// Daily triggers its task at the configured time-of-day. Start and Stop are
// idempotent: starting a running scheduler is a reported no-op, never a
// second trigger.
type Daily struct {
	hour   int
	minute int
	loc    *time.Location
	task   Task
	logger *zap.Logger
	now    func() time.Time

	taskTimeout time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

type Option func(*Daily)

func WithLogger(l *zap.Logger) Option {
	return func(d *Daily) { d.logger = l }
}

// WithClock overrides the scheduler clock for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Daily) { d.now = now }
}

func WithTaskTimeout(t time.Duration) Option {
	return func(d *Daily) {
		if t > 0 {
			d.taskTimeout = t
		}
	}
}

func NewDaily(hour, minute int, loc *time.Location, task Task, opts ...Option) (*Daily, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid fire time %02d:%02d", hour, minute)
	}
	if task == nil {
		return nil, fmt.Errorf("scheduler needs a task")
	}
	if loc == nil {
		loc = time.UTC
	}
	d := &Daily{
		hour:        hour,
		minute:      minute,
		loc:         loc,
		task:        task,
		logger:      zap.NewNop(),
		now:         time.Now,
		taskTimeout: defaultTaskTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Start launches the trigger loop. Returns false when already running.
func (d *Daily) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return false
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.loop(d.stop, d.done)
	d.logger.Info("daily scheduler started",
		zap.String("at", fmt.Sprintf("%02d:%02d", d.hour, d.minute)),
		zap.String("tz", d.loc.String()))
	return true
}

// Stop cancels future fires. An in-flight task runs to completion. Returns
// false when not running.
func (d *Daily) Stop() bool {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return false
	}
	d.running = false
	close(d.stop)
	done := d.done
	d.mu.Unlock()

	<-done
	d.logger.Info("daily scheduler stopped")
	return true
}

// Running reports whether the trigger loop is active.
func (d *Daily) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Daily) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		next := NextFire(d.now(), d.hour, d.minute, d.loc)
		timer := time.NewTimer(next.Sub(d.now()))
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		d.logger.Info("daily scheduler firing", zap.Time("at", next))
		ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
		d.task(ctx)
		cancel()
	}
}

// NextFire computes the next wall-clock occurrence of hour:minute in loc,
// strictly after now.
func NextFire(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
