package client

import (
	"errors"
	"fmt"
)

// ErrAuthRequired means no authenticated principal is available. Callers
// treat this as a session-expiry condition (redirect to login), never as a
// data error to render.
var ErrAuthRequired = errors.New("authentication required")

// FetchError is a non-2xx upstream response. It carries a user-displayable
// message; it never crosses the fetcher boundary as a raw error.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
