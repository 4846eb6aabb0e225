package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kustommania/models"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) (*models.BlueRate, error) {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("refresh without deadline")
	}
	if r.err != nil {
		return nil, r.err
	}
	return &models.BlueRate{Buy: 1180, Sell: 1200}, nil
}

func TestRateRefreshJob_FetchesImmediatelyAndOnTick(t *testing.T) {
	refresher := &countingRefresher{}
	job := NewRateRefreshJob(refresher, 20*time.Millisecond, time.Second)
	job.Start()
	defer job.Stop()

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestRateRefreshJob_KeepsRunningAfterFailure(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("feed down")}
	job := NewRateRefreshJob(refresher, 10*time.Millisecond, time.Second)
	job.Start()

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	job.Stop()

	stopped := refresher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, refresher.calls.Load(), stopped+1)
}
