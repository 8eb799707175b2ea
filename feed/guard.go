package feed

import (
	"errors"
	"sync/atomic"
)

// ErrInFlight is returned when an action is started while the previous one has not finished.
var ErrInFlight = errors.New("already in progress")

// Guard lets a single call of an action run at a time. The zero value is ready to use.
type Guard struct {
	busy atomic.Bool
}

// Busy returns true while an action runs, hosts use it to disable the control.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// Do runs f unless another call is running, in which case it returns ErrInFlight. The guard is released when f
// returns, also when it fails or panics.
func (g *Guard) Do(f func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer g.busy.Store(false)
	return f()
}
