// File: /jobs/rate_refresh_job.go
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/models"
)

// RateRefresher fetches a fresh blue dollar quote
type RateRefresher interface {
	Refresh(ctx context.Context) (*models.BlueRate, error)
}

// RateRefreshJob polls the blue dollar feed on a fixed interval
type RateRefreshJob struct {
	rates   RateRefresher
	timeout time.Duration
	ticker  *time.Ticker
	done    chan bool
}

// NewRateRefreshJob creates a job that refreshes every interval. Each fetch
// is bounded by timeout.
func NewRateRefreshJob(rates RateRefresher, interval, timeout time.Duration) *RateRefreshJob {
	return &RateRefreshJob{
		rates:   rates,
		timeout: timeout,
		ticker:  time.NewTicker(interval),
		done:    make(chan bool),
	}
}

// Start fetches once right away, then on every tick
func (j *RateRefreshJob) Start() {
	logger.GetLogger().Info("rate refresh job started")

	go func() {
		j.refresh()

		for {
			select {
			case <-j.ticker.C:
				j.refresh()
			case <-j.done:
				logger.GetLogger().Info("rate refresh job stopped")
				return
			}
		}
	}()
}

// Stop ends the loop. It must be called at most once, after Start.
func (j *RateRefreshJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *RateRefreshJob) refresh() {
	log := logger.GetLogger()
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background(), log), j.timeout)
	defer cancel()

	rate, err := j.rates.Refresh(ctx)
	if err != nil {
		log.Warn("blue rate refresh failed", zap.Error(err))
		return
	}
	log.Debug("blue rate refreshed", zap.Float64("sell", rate.Sell), zap.Float64("buy", rate.Buy))
}
