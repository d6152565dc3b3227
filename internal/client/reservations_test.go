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

func listTestServer(t *testing.T, reservations []models.Reservation, listCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.UserInfo{ID: "user-1", Username: "taro", Role: "customer"})
	})
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(listCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reservations)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListFetcherSortsByReceptionNumberDesc(t *testing.T) {
	var listCalls int32
	srv := listTestServer(t, []models.Reservation{
		res("a", "user-9", 3, models.StatusAccepted),
		res("b", "user-1", 8, models.StatusCalling),
		res("c", "user-7", 5, models.StatusAccepted),
	}, &listCalls)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewListFetcher(api, newFakeKV(), zap.NewNop())

	got, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{8, 5, 3}, []int{
		got[0].ReceptionNumber,
		got[1].ReceptionNumber,
		got[2].ReceptionNumber,
	})
}

func TestListFetcherUnauthenticatedIsEmptyNotError(t *testing.T) {
	var listCalls int32
	srv := listTestServer(t, nil, &listCalls)

	api := New(srv.URL, noTokens{}, zap.NewNop())
	fetcher := NewListFetcher(api, newFakeKV(), zap.NewNop())

	got, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&listCalls))
}

func TestListFetcherFreshCacheSkipsFetch(t *testing.T) {
	var listCalls int32
	srv := listTestServer(t, []models.Reservation{
		res("a", "user-1", 4, models.StatusAccepted),
	}, &listCalls)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	kv := newFakeKV()
	fetcher := NewListFetcher(api, kv, zap.NewNop())

	first, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
	assert.Equal(t, listRetainFor, kv.ttls[listCacheKey("comp-1", "branch-1")])

	second, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "fresh cache must skip the network")

	// The hit renews the entry, so retention runs from last use
	assert.Equal(t, 2, kv.sets)
	assert.Equal(t, listRetainFor, kv.ttls[listCacheKey("comp-1", "branch-1")])
}

func TestListFetcherStaleCacheRefetches(t *testing.T) {
	var listCalls int32
	srv := listTestServer(t, []models.Reservation{
		res("a", "user-1", 4, models.StatusAccepted),
	}, &listCalls)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	kv := newFakeKV()
	fetcher := NewListFetcher(api, kv, zap.NewNop())

	stale, err := json.Marshal(cachedList{
		FetchedAt: time.Now().Add(-6 * time.Minute),
		Reservations: []models.Reservation{
			res("old", "user-1", 1, models.StatusAccepted),
		},
	})
	require.NoError(t, err)
	kv.entries[listCacheKey("comp-1", "branch-1")] = string(stale)

	got, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
}

func TestListFetcherDedupsDuplicateRows(t *testing.T) {
	var listCalls int32
	srv := listTestServer(t, []models.Reservation{
		res("a", "user-1", 4, models.StatusAccepted),
		res("a", "user-1", 4, models.StatusCalling),
	}, &listCalls)

	api := New(srv.URL, staticTokens("tok"), zap.NewNop())
	fetcher := NewListFetcher(api, newFakeKV(), zap.NewNop())

	got, err := fetcher.Fetch(context.Background(), "comp-1", "branch-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusCalling, got[0].Status)
}
