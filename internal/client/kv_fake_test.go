package client

import (
	"context"
	"time"
)

// fakeKV is an in-memory KVStore for tests. TTLs are recorded but not
// enforced; tests that care about expiry manipulate the entries directly.
type fakeKV struct {
	entries map[string]string
	ttls    map[string]time.Duration
	sets    int
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	val, ok := f.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	f.entries[key] = value
	f.ttls[key] = ttl
	f.sets++
	return nil
}

// staticTokens always yields the same bearer token.
type staticTokens string

func (s staticTokens) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// noTokens simulates a signed-out principal.
type noTokens struct{}

func (noTokens) Token(_ context.Context) (string, error) {
	return "", ErrAuthRequired
}
