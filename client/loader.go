// File: questly/client/loader.go
package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"questly/models"

	"github.com/google/uuid"
)

const (
	maxTimeoutRetries = 2
	maxServerRetries  = 1

	defaultRetryBaseDelay   = 2 * time.Second
	defaultServerRetryDelay = 3 * time.Second
	defaultFetchTimeout     = 10 * time.Second
	defaultToastBuffer      = 8
)

// OverviewFetcher is the slice of the API the loader needs. *Client
// satisfies it.
type OverviewFetcher interface {
	DashboardOverview(ctx context.Context) (*models.DashboardOverview, error)
}

// LoaderConfig configures a DataLoader.
type LoaderConfig struct {
	Fetcher OverviewFetcher
	Role    models.Role

	// RetryBaseDelay scales the linear backoff for timeout retries
	// (attempt 1 waits 1x, attempt 2 waits 2x). ServerRetryDelay is the
	// single fixed wait after a 5xx.
	RetryBaseDelay   time.Duration
	ServerRetryDelay time.Duration
	FetchTimeout     time.Duration
}

// DataLoader keeps a dashboard overview fresh. A refresh that times out is
// retried up to two times with linear backoff; a 5xx is retried once after a
// fixed delay; 4xx and decode errors are not retried. When retries are
// exhausted the loader switches to a role-shaped fallback overview and stays
// in offline mode until a later refresh succeeds.
//
// All state lives behind one mutex. At most one retry timer is pending at a
// time, and Close stops it, so no attempt fires after Close.
type DataLoader struct {
	fetcher OverviewFetcher
	role    models.Role

	retryBase    time.Duration
	serverDelay  time.Duration
	fetchTimeout time.Duration

	mu             sync.Mutex
	state          models.DashboardOverview
	offline        bool
	timeoutRetries int
	serverRetries  int
	retryTimer     *time.Timer
	closed         bool

	toasts chan models.Toast
}

// NewDataLoader builds a loader seeded with the role's fallback overview.
// Call Refresh to start the first fetch.
func NewDataLoader(cfg LoaderConfig) *DataLoader {
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	if cfg.ServerRetryDelay <= 0 {
		cfg.ServerRetryDelay = defaultServerRetryDelay
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	return &DataLoader{
		fetcher:      cfg.Fetcher,
		role:         cfg.Role,
		retryBase:    cfg.RetryBaseDelay,
		serverDelay:  cfg.ServerRetryDelay,
		fetchTimeout: cfg.FetchTimeout,
		state:        models.NewFallbackOverview(cfg.Role),
		toasts:       make(chan models.Toast, defaultToastBuffer),
	}
}

// Refresh starts a fetch cycle. Any pending retry from an earlier cycle is
// cancelled and its counters reset, so overlapping refreshes collapse into
// the newest one.
func (l *DataLoader) Refresh() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.stopTimerLocked()
	l.timeoutRetries = 0
	l.serverRetries = 0
	l.mu.Unlock()

	go l.attempt()
}

// State returns a copy of the current overview.
func (l *DataLoader) State() models.DashboardOverview {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Offline reports whether the loader is serving fallback data.
func (l *DataLoader) Offline() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offline
}

// Toasts yields user-facing notices (retrying, offline, back online). The
// channel is buffered and never blocks the loader; if the consumer falls
// behind, toasts are dropped.
func (l *DataLoader) Toasts() <-chan models.Toast {
	return l.toasts
}

// Close stops the loader. A pending retry timer is cancelled and any attempt
// still in flight has its result discarded.
func (l *DataLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.stopTimerLocked()
}

func (l *DataLoader) attempt() {
	ctx, cancel := context.WithTimeout(context.Background(), l.fetchTimeout)
	defer cancel()

	overview, err := l.fetcher.DashboardOverview(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	if err == nil {
		wasOffline := l.offline
		l.state = *overview
		l.offline = false
		l.timeoutRetries = 0
		l.serverRetries = 0
		l.stopTimerLocked()
		if wasOffline {
			l.pushToastLocked(models.SeverityInfo, "Back online. Your dashboard is up to date.", 4000)
		}
		return
	}

	switch classifyFetchError(err) {
	case fetchErrTimeout:
		if l.timeoutRetries < maxTimeoutRetries {
			l.timeoutRetries++
			delay := time.Duration(l.timeoutRetries) * l.retryBase
			l.pushToastLocked(models.SeverityWarning, "Connection is slow, retrying...", 3000)
			l.scheduleLocked(delay)
			return
		}
	case fetchErrServer:
		if l.serverRetries < maxServerRetries {
			l.serverRetries++
			l.pushToastLocked(models.SeverityWarning, "Something went wrong on our side, retrying...", 3000)
			l.scheduleLocked(l.serverDelay)
			return
		}
	}

	// Client errors, decode failures, or exhausted retries: fall back.
	l.enterOfflineLocked()
}

type fetchErrKind int

const (
	fetchErrTimeout fetchErrKind = iota
	fetchErrServer
	fetchErrClient
	fetchErrOther
)

func classifyFetchError(err error) fetchErrKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fetchErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fetchErrTimeout
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsServerError() {
			return fetchErrServer
		}
		return fetchErrClient
	}
	return fetchErrOther
}

// scheduleLocked arms the single retry timer. Caller holds l.mu.
func (l *DataLoader) scheduleLocked(delay time.Duration) {
	l.stopTimerLocked()
	l.retryTimer = time.AfterFunc(delay, l.attempt)
}

func (l *DataLoader) stopTimerLocked() {
	if l.retryTimer != nil {
		l.retryTimer.Stop()
		l.retryTimer = nil
	}
}

func (l *DataLoader) enterOfflineLocked() {
	l.state = models.NewFallbackOverview(l.role)
	l.timeoutRetries = 0
	l.serverRetries = 0
	if !l.offline {
		l.offline = true
		// Sticky toast: stays up until a refresh succeeds.
		l.pushToastLocked(models.SeverityWarning, "You are in offline mode. Showing saved data.", 0)
	}
}

func (l *DataLoader) pushToastLocked(severity models.Severity, message string, autoDismissMs int) {
	toast := models.Toast{
		ID:            uuid.New().String(),
		Severity:      severity,
		Message:       message,
		AutoDismissMs: autoDismissMs,
	}
	select {
	case l.toasts <- toast:
	default:
	}
}
