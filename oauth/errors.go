package oauth

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrStateNotFound  = errors.New("oauth state not found")
	ErrStateExpired   = errors.New("oauth state expired")
)

// UpstreamError is returned when the tenant token endpoint responds with a
// non-success status. The relay surfaces it unmodified, without retrying.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("token endpoint returned %d: %s", e.Status, e.Body)
}
