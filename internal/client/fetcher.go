package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"backend-reservation/internal/models"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the waiting status is refreshed.
const DefaultPollInterval = 60 * time.Second

// SummaryState is the current snapshot of the waiting status poller.
// Err carries a user-displayable message, never a raw error chain.
type SummaryState struct {
	Status  *models.WaitingStatusSummary
	Loading bool
	Err     string
}

// StatusFetcher polls the waiting status summary for one branch: an
// immediate fetch on start, then one fetch per interval until the context
// is cancelled. Failed polls surface a message and wait for the next tick,
// there are no retries in between.
type StatusFetcher struct {
	api      *Client
	company  string
	branch   string
	interval time.Duration
	logger   *zap.Logger

	// Called when the server rejects our credentials. The owner decides
	// what session expiry means (re-login, redirect, shutdown).
	OnAuthRequired func()

	mu      sync.RWMutex
	state   SummaryState
	refetch chan struct{}
}

func NewStatusFetcher(api *Client, companyID, branchID string, logger *zap.Logger) *StatusFetcher {
	return &StatusFetcher{
		api:      api,
		company:  companyID,
		branch:   branchID,
		interval: DefaultPollInterval,
		logger:   logger,
		refetch:  make(chan struct{}, 1),
	}
}

// SetInterval overrides the poll cadence. Call before Run.
func (f *StatusFetcher) SetInterval(d time.Duration) {
	if d > 0 {
		f.interval = d
	}
}

// State returns the latest snapshot.
func (f *StatusFetcher) State() SummaryState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Refetch requests an out-of-band poll. Non-blocking; coalesces with any
// pending request.
func (f *StatusFetcher) Refetch() {
	select {
	case f.refetch <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled. With no branch selected it is a
// no-op: the state stays idle and no request is ever issued.
func (f *StatusFetcher) Run(ctx context.Context) {
	if f.company == "" || f.branch == "" {
		return
	}

	f.fetchOnce(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fetchOnce(ctx)
		case <-f.refetch:
			f.fetchOnce(ctx)
		}
	}
}

func (f *StatusFetcher) fetchOnce(ctx context.Context) {
	f.setState(func(s *SummaryState) {
		s.Loading = true
	})

	summary, err := f.api.Summary(ctx, f.company, f.branch)

	// A response that lands after cancellation must not touch the state.
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		if errors.Is(err, ErrAuthRequired) {
			f.logger.Warn("Waiting status poll rejected, session expired")
			if f.OnAuthRequired != nil {
				f.OnAuthRequired()
			}
			f.setState(func(s *SummaryState) {
				s.Loading = false
				s.Err = "Session expired. Please sign in again."
			})
			return
		}

		message := "Failed to fetch waiting status."
		var fe *FetchError
		if errors.As(err, &fe) && fe.Message != "" {
			message = fe.Message
		}

		f.logger.Warn("Waiting status poll failed",
			zap.String("company_id", f.company),
			zap.String("branch_id", f.branch),
			zap.Error(err),
		)

		f.setState(func(s *SummaryState) {
			s.Loading = false
			s.Err = message
		})
		return
	}

	f.setState(func(s *SummaryState) {
		s.Status = summary
		s.Loading = false
		s.Err = ""
	})
}

func (f *StatusFetcher) setState(apply func(*SummaryState)) {
	f.mu.Lock()
	apply(&f.state)
	f.mu.Unlock()
}
