// Package worker runs periodic background jobs.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PendingCounter counts items awaiting moderation and publishes the gauge.
type PendingCounter interface {
	CountPendingReview(ctx context.Context) (int64, error)
}

// ReviewGauge refreshes the pending-review gauge on a cron schedule.
type ReviewGauge struct {
	counter  PendingCounter
	schedule string
	timeout  time.Duration
	log      logrus.FieldLogger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewReviewGauge creates a job running on schedule, e.g. "@every 1m" or "*/5 * * * *".
func NewReviewGauge(counter PendingCounter, schedule string, log logrus.FieldLogger) *ReviewGauge {
	return &ReviewGauge{
		counter:  counter,
		schedule: schedule,
		timeout:  30 * time.Second,
		log:      log,
	}
}

// Start refreshes the gauge once and then on every tick until ctx is done or Stop is called.
func (g *ReviewGauge) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(g.schedule, func() { g.Refresh(ctx) }); err != nil {
		return fmt.Errorf("schedule review gauge %q: %w", g.schedule, err)
	}

	g.Refresh(ctx)
	c.Start()
	g.cron = c

	go func() {
		<-ctx.Done()
		g.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (g *ReviewGauge) Stop() {
	g.mu.Lock()
	c := g.cron
	g.cron = nil
	g.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// Refresh counts pending items once.
func (g *ReviewGauge) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	n, err := g.counter.CountPendingReview(ctx)
	if err != nil {
		g.log.WithError(err).Warn("refresh pending review gauge")
		return
	}
	g.log.WithField("pending", n).Debug("pending review gauge refreshed")
}
