package weather

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every failure of the weather provider
var ErrUpstream = errors.New("weather provider failed")

// UpstreamError describes a failed provider call. StatusCode is zero when the
// provider was unreachable or answered with an unusable payload.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
