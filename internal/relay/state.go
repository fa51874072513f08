package relay

import (
	"context"
	"fmt"
	"log/slog"
)

// State is a step of a single relay call.
type State uint8

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateForwarding
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateForwarding:
		return "forwarding"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateRejected, StateForwarding},
	StateForwarding: {StateSucceeded, StateFailed},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// tracker follows one relay call through its states.
type tracker struct {
	logger *slog.Logger
	state  State
}

func (t *tracker) advance(ctx context.Context, to State) {
	if !CanTransition(t.state, to) {
		panic(fmt.Sprintf("relay: illegal transition %s -> %s", t.state, to))
	}
	t.logger.DebugContext(ctx, "relay transition",
		slog.String("from", t.state.String()),
		slog.String("to", to.String()),
	)
	t.state = to
}
