package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shiftdesk/internal/shifts"
)

// ExpireStaleSpec runs the stale shift cleanup every day at 03:00.
const ExpireStaleSpec = "0 0 3 * * *"

// Planner holds the periodic jobs run by the scheduler.
type Planner struct {
	shifts *shifts.Service
	log    *zap.Logger
	now    func() time.Time
}

func NewPlanner(svc *shifts.Service, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{shifts: svc, log: log, now: time.Now}
}

// ExpireStaleShifts cancels shifts left waiting since before today.
func (p *Planner) ExpireStaleShifts(ctx context.Context) {
	now := p.now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	n, err := p.shifts.ExpireStale(ctx, cutoff)
	if err != nil {
		p.log.Error("expire stale shifts", zap.Error(err))
		return
	}
	p.log.Info("stale shifts expired", zap.Int64("count", n), zap.Time("cutoff", cutoff))
}

// InitScheduler registers the planner jobs and starts the scheduler. An empty
// spec runs the expiry job at ExpireStaleSpec.
// Jobs run with ctx; stop the returned cron on shutdown.
func InitScheduler(ctx context.Context, p *Planner, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = ExpireStaleSpec
	}
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cronLogger{p.log})))

	_, err := c.AddFunc(spec, func() { p.ExpireStaleShifts(ctx) })
	if err != nil {
		return nil, fmt.Errorf("schedule stale shift expiry %q: %w", spec, err)
	}

	c.Start()
	p.log.Info("cron scheduler started", zap.Int("jobs", len(c.Entries())))
	return c, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
