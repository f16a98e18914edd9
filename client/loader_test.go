// File: questly/client/loader_test.go
package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"questly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "request timed out" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// scriptFetcher returns a scripted result per call, 1-indexed.
type scriptFetcher struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) (*models.DashboardOverview, error)
}

func (s *scriptFetcher) DashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	fn := s.fn
	s.mu.Unlock()
	return fn(call)
}

func (s *scriptFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *scriptFetcher) setScript(fn func(call int) (*models.DashboardOverview, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

func newTestLoader(fetcher OverviewFetcher) *DataLoader {
	return NewDataLoader(LoaderConfig{
		Fetcher:          fetcher,
		Role:             models.RoleLearner,
		RetryBaseDelay:   10 * time.Millisecond,
		ServerRetryDelay: 10 * time.Millisecond,
		FetchTimeout:     time.Second,
	})
}

func drainToasts(l *DataLoader) []models.Toast {
	var out []models.Toast
	for {
		select {
		case t := <-l.Toasts():
			out = append(out, t)
		default:
			return out
		}
	}
}

func TestDataLoaderSuccessReplacesState(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return &models.DashboardOverview{
			Role: models.RoleLearner,
			KPIs: []models.KPI{{Label: "XP", Value: "120"}},
		}, nil
	}}
	loader := newTestLoader(fetcher)
	defer loader.Close()

	loader.Refresh()

	require.Eventually(t, func() bool {
		return len(loader.State().KPIs) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, fetcher.callCount())
	assert.False(t, loader.Offline())
	assert.False(t, loader.State().Degraded)
}

func TestDataLoaderTimeoutRetriesTwiceThenFallsBack(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return nil, timeoutErr{}
	}}
	loader := newTestLoader(fetcher)
	defer loader.Close()

	loader.Refresh()

	require.Eventually(t, loader.Offline, time.Second, 5*time.Millisecond)

	// Initial attempt plus exactly two retries, never more.
	assert.Equal(t, 3, fetcher.callCount())
	assert.True(t, loader.State().Degraded)
	assert.Equal(t, models.RoleLearner, loader.State().Role)

	toasts := drainToasts(loader)
	require.NotEmpty(t, toasts)
	sticky := toasts[len(toasts)-1]
	assert.Equal(t, models.SeverityWarning, sticky.Severity)
	assert.Equal(t, 0, sticky.AutoDismissMs, "offline toast must be sticky")
}

func TestDataLoaderServerErrorRetriesOnce(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return nil, &APIError{Status: 503, Message: "unavailable"}
	}}
	loader := newTestLoader(fetcher)
	defer loader.Close()

	loader.Refresh()

	require.Eventually(t, loader.Offline, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestDataLoaderClientErrorDoesNotRetry(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return nil, &APIError{Status: 404, Message: "not found"}
	}}
	loader := newTestLoader(fetcher)
	defer loader.Close()

	loader.Refresh()

	require.Eventually(t, loader.Offline, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestDataLoaderCloseCancelsPendingRetry(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return nil, timeoutErr{}
	}}
	loader := NewDataLoader(LoaderConfig{
		Fetcher:          fetcher,
		Role:             models.RoleLearner,
		RetryBaseDelay:   100 * time.Millisecond,
		ServerRetryDelay: 100 * time.Millisecond,
		FetchTimeout:     time.Second,
	})

	loader.Refresh()

	// Wait for the first attempt to fail and arm the retry timer.
	require.Eventually(t, func() bool {
		return fetcher.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	loader.Close()

	// Well past the retry delay: the cancelled timer must not have fired.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestDataLoaderRecoversFromOffline(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		return nil, &APIError{Status: 500, Message: "boom"}
	}}
	loader := newTestLoader(fetcher)
	defer loader.Close()

	loader.Refresh()
	require.Eventually(t, loader.Offline, time.Second, 5*time.Millisecond)
	drainToasts(loader)

	fetcher.setScript(func(call int) (*models.DashboardOverview, error) {
		return &models.DashboardOverview{Role: models.RoleLearner}, nil
	})
	loader.Refresh()

	require.Eventually(t, func() bool {
		return !loader.Offline()
	}, time.Second, 5*time.Millisecond)

	assert.False(t, loader.State().Degraded)
	toasts := drainToasts(loader)
	require.Len(t, toasts, 1)
	assert.Equal(t, models.SeverityInfo, toasts[0].Severity)
}

func TestDataLoaderRefreshCollapsesPendingRetry(t *testing.T) {
	fetcher := &scriptFetcher{fn: func(call int) (*models.DashboardOverview, error) {
		if call == 1 {
			return nil, timeoutErr{}
		}
		return &models.DashboardOverview{Role: models.RoleLearner}, nil
	}}
	loader := NewDataLoader(LoaderConfig{
		Fetcher:          fetcher,
		Role:             models.RoleLearner,
		RetryBaseDelay:   200 * time.Millisecond,
		ServerRetryDelay: 200 * time.Millisecond,
		FetchTimeout:     time.Second,
	})
	defer loader.Close()

	loader.Refresh()
	require.Eventually(t, func() bool {
		return fetcher.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// A manual refresh supersedes the scheduled retry.
	loader.Refresh()
	require.Eventually(t, func() bool {
		return !loader.State().Degraded && fetcher.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	// The superseded timer must not add a third attempt.
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 2, fetcher.callCount())
}
