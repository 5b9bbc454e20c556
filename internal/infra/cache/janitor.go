package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	pkgconfig "newsproxy/pkg/config"
)

// Sweeper removes expired entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
}

// Janitor runs Sweep on a cron schedule.
type Janitor struct {
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewJanitor registers a sweep of s on schedule. It accepts exactly what
// config.ValidateCronSchedule accepts. A sweep still running when the next one is
// due is skipped.
func NewJanitor(schedule string, s Sweeper, logger *slog.Logger) (*Janitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sched, err := pkgconfig.ParseSchedule(schedule)
	if err != nil {
		return nil, fmt.Errorf("parse cache sweep schedule %q: %w", schedule, err)
	}

	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	c.Schedule(sched, cron.FuncJob(func() {
		removed := s.Sweep()
		logger.Debug("cache sweep completed", slog.Int("removed", removed))
	}))

	return &Janitor{cron: c, schedule: schedule, logger: logger}, nil
}

// Start starts the scheduler in its own goroutine.
func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("cache janitor started", slog.String("schedule", j.schedule))
}

// Stop stops the scheduler and waits for a running sweep to finish or for ctx to
// be done, whichever comes first.
func (j *Janitor) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		j.logger.Info("cache janitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{slog.Any("error", err)}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}
