package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"backend-reservation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func summaryTestServer(t *testing.T, calls *int32, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "denied"})
			return
		}
		current := 7
		latest := 12
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.WaitingStatusSummary{
			CurrentTime:           "10:30",
			CurrentNumber:         &current,
			LatestReceptionNumber: &latest,
			WaitingCount:          5,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatusFetcherImmediateFetchThenTicks(t *testing.T) {
	var calls int32
	srv := summaryTestServer(t, &calls, http.StatusOK)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewStatusFetcher(api, "comp-1", "branch-1", zap.NewNop())
	fetcher.SetInterval(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fetcher.Run(ctx)
		close(done)
	}()

	time.Sleep(70 * time.Millisecond)
	cancel()
	<-done

	got := atomic.LoadInt32(&calls)
	assert.GreaterOrEqual(t, got, int32(3), "one immediate fetch plus interval ticks")

	state := fetcher.State()
	require.NotNil(t, state.Status)
	assert.Equal(t, 5, state.Status.WaitingCount)
	assert.Empty(t, state.Err)
	assert.False(t, state.Loading)

	// Cancellation must stop the polling entirely.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, got, atomic.LoadInt32(&calls))
}

func TestStatusFetcherIdleWithoutBranch(t *testing.T) {
	var calls int32
	srv := summaryTestServer(t, &calls, http.StatusOK)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewStatusFetcher(api, "", "", zap.NewNop())

	// Run returns immediately when no branch is selected.
	fetcher.Run(context.Background())

	state := fetcher.State()
	assert.Nil(t, state.Status)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestStatusFetcherAuthRequired(t *testing.T) {
	var calls int32
	srv := summaryTestServer(t, &calls, http.StatusUnauthorized)

	api := New(srv.URL, staticTokens("expired"), zap.NewNop())
	fetcher := NewStatusFetcher(api, "comp-1", "branch-1", zap.NewNop())
	fetcher.SetInterval(time.Hour)

	var expired int32
	fetcher.OnAuthRequired = func() {
		atomic.AddInt32(&expired, 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fetcher.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&expired) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	state := fetcher.State()
	assert.Nil(t, state.Status)
	assert.NotEmpty(t, state.Err)
}

func TestStatusFetcherErrorIsDisplayableMessage(t *testing.T) {
	var calls int32
	srv := summaryTestServer(t, &calls, http.StatusInternalServerError)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewStatusFetcher(api, "comp-1", "branch-1", zap.NewNop())
	fetcher.SetInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fetcher.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return fetcher.State().Err != ""
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	state := fetcher.State()
	assert.Nil(t, state.Status)
	assert.Equal(t, "Failed to fetch waiting status", state.Err)
	assert.False(t, state.Loading)
}

func TestStatusFetcherRefetch(t *testing.T) {
	var calls int32
	srv := summaryTestServer(t, &calls, http.StatusOK)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewStatusFetcher(api, "comp-1", "branch-1", zap.NewNop())
	fetcher.SetInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fetcher.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 5*time.Millisecond)

	fetcher.Refetch()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
