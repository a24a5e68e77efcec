package worker

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCounter struct {
	calls atomic.Int64
	err   error
}

func (c *countingCounter) CountPendingReview(ctx context.Context) (int64, error) {
	c.calls.Add(1)
	return 3, c.err
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestReviewGauge_RefreshesOnStartAndSchedule(t *testing.T) {
	counter := &countingCounter{}
	g := NewReviewGauge(counter, "@every 1s", quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, g.Start(ctx))
	assert.Equal(t, int64(1), counter.calls.Load(), "refreshes immediately")

	assert.Eventually(t, func() bool { return counter.calls.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)

	g.Stop()
	stopped := counter.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, counter.calls.Load(), "no refresh after Stop")
}

func TestReviewGauge_InvalidSchedule(t *testing.T) {
	g := NewReviewGauge(&countingCounter{}, "every minute please", quietLogger())
	assert.Error(t, g.Start(context.Background()))
}

func TestReviewGauge_RefreshSurvivesErrors(t *testing.T) {
	counter := &countingCounter{err: assert.AnError}
	g := NewReviewGauge(counter, "@every 1m", quietLogger())
	g.Refresh(context.Background())
	assert.Equal(t, int64(1), counter.calls.Load())
}
