package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler decides how long the poller sleeps between cycles.
// The delay is measured from the end of a cycle, so a slow cycle never
// leads to back-to-back requests.
type PollScheduler struct {
	schedule cron.Schedule
	spec     string
	logger   *logrus.Entry
	now      func() time.Time
}

// NewPollScheduler builds a scheduler from an optional standard cron expression.
// With an empty cronSpec it waits a constant retryPeriod (whole seconds, at least one).
func NewPollScheduler(retryPeriod time.Duration, cronSpec string, logger *logrus.Entry) (*PollScheduler, error) {
	s := &PollScheduler{logger: logger, now: time.Now}
	if cronSpec != "" {
		sched, err := cron.ParseStandard(cronSpec)
		if err != nil {
			return nil, fmt.Errorf("invalid poll schedule %q: %w", cronSpec, err)
		}
		s.schedule = sched
		s.spec = cronSpec
		return s, nil
	}
	s.schedule = cron.Every(retryPeriod)
	s.spec = "@every " + retryPeriod.String()
	return s, nil
}

// Spec describes the active schedule for logs.
func (s *PollScheduler) Spec() string { return s.spec }

// Next returns the moment of the next poll after t.
func (s *PollScheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Wait blocks until the next activation or until ctx is done.
func (s *PollScheduler) Wait(ctx context.Context) error {
	now := s.now()
	next := s.Next(now)
	delay := next.Sub(now)
	if delay < 0 {
		delay = 0
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"next_poll": next.Format(time.RFC3339),
			"delay":     delay.String(),
		}).Debug("Sleeping until next poll")
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
