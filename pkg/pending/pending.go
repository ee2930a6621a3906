package pending

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when an operation is begun while a previous run has
// not settled yet.
var ErrInFlight = errors.New("operation already in flight")

// State tracks one asynchronous action through its lifecycle.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateInFlight:
		return "IN_FLIGHT"
	case StateSettled:
		return "SETTLED"
	default:
		return "IDLE"
	}
}

// Operation is the explicit issue -> settle state of a single asynchronous
// action. Re-issuing while in flight is rejected; a settled operation may be
// begun again (user-initiated re-submit).
type Operation struct {
	mu    sync.Mutex
	state State
	err   error
}

// TryBegin moves the operation to in-flight. It fails with ErrInFlight when a
// previous begin has not settled.
func (o *Operation) TryBegin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateInFlight {
		return ErrInFlight
	}
	o.state = StateInFlight
	o.err = nil
	return nil
}

// Settle records the outcome of the in-flight run.
func (o *Operation) Settle(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateSettled
	o.err = err
}

// State returns the current lifecycle state.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Err returns the error the last run settled with, if any.
func (o *Operation) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// InFlight reports whether a run is currently outstanding.
func (o *Operation) InFlight() bool {
	return o.State() == StateInFlight
}
