package health

import "errors"

var (
	// ErrCheckFailed is returned when a dependency reports itself unhealthy.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is returned when a check does not finish before its deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
