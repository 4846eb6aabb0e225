// File: /services/currency_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"kustommania/cache"
	applog "kustommania/logger"
	"kustommania/metrics"
	"kustommania/models"
)

const (
	blueRateCacheKey = "rates:blue"
	blueRateCacheTTL = 10 * time.Minute
)

// CurrencyService polls the blue dollar feed and converts between ARS and
// USD at the sell rate.
type CurrencyService struct {
	client  *http.Client
	feedURL string
	cache   cache.Store

	mu      sync.RWMutex
	last    *models.BlueRate
	lastErr error
}

func NewCurrencyService(feedURL string, timeout time.Duration, store cache.Store) *CurrencyService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	return &CurrencyService{
		client:  &http.Client{Timeout: timeout},
		feedURL: feedURL,
		cache:   store,
	}
}

// Refresh performs one GET against the feed and stores the result
func (s *CurrencyService) Refresh(ctx context.Context) (*models.BlueRate, error) {
	rate, err := s.fetch(ctx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.last = rate
	}
	s.mu.Unlock()

	if err != nil {
		metrics.RateFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RateFetches.WithLabelValues("ok").Inc()
	metrics.BlueDollarSell.Set(rate.Sell)
	if err := s.cache.Set(ctx, blueRateCacheKey, rate, blueRateCacheTTL); err != nil {
		applog.FromContext(ctx).Warn("could not cache blue rate", zap.Error(err))
	}
	return rate, nil
}

func (s *CurrencyService) fetch(ctx context.Context) (*models.BlueRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %d", ErrRateUnavailable, resp.StatusCode)
	}

	var rate models.BlueRate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrRateUnavailable, err)
	}
	if rate.Sell <= 0 {
		return nil, fmt.Errorf("%w: feed returned no sell rate", ErrRateUnavailable)
	}
	return &rate, nil
}

// Current returns the last known rate, from memory, then the shared cache,
// then the feed.
func (s *CurrencyService) Current(ctx context.Context) (*models.BlueRate, error) {
	if rate := s.Last(); rate != nil {
		return rate, nil
	}

	var cached models.BlueRate
	found, err := s.cache.Get(ctx, blueRateCacheKey, &cached)
	if err != nil {
		applog.FromContext(ctx).Warn("could not read cached blue rate", zap.Error(err))
	}
	if found {
		s.mu.Lock()
		s.last = &cached
		s.mu.Unlock()
		return &cached, nil
	}

	return s.Refresh(ctx)
}

// Last returns the in-memory rate without any I/O
func (s *CurrencyService) Last() *models.BlueRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	rate := *s.last
	return &rate
}

// LastError is the error of the most recent refresh, nil on success
func (s *CurrencyService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ConvertToUSD divides by the sell rate; zero without a rate
func (s *CurrencyService) ConvertToUSD(ars float64) float64 {
	return ConvertToUSD(s.Last(), ars)
}

// ConvertToARS multiplies by the sell rate; zero without a rate
func (s *CurrencyService) ConvertToARS(usd float64) float64 {
	return ConvertToARS(s.Last(), usd)
}

func ConvertToUSD(rate *models.BlueRate, ars float64) float64 {
	if rate == nil || rate.Sell == 0 {
		return 0
	}
	return ars / rate.Sell
}

func ConvertToARS(rate *models.BlueRate, usd float64) float64 {
	if rate == nil || rate.Sell == 0 {
		return 0
	}
	return usd * rate.Sell
}
