package htmlapp

import "context"

// Control is an input element that is disabled while the remote call it started is in flight.
type Control interface {
	SetDisabled(bool)
}

// runRemote disables c, runs call on its own goroutine and posts done to the event loop. The control is enabled
// again on the event loop even when done panics.
func runRemote(post func(func()), c Control, call func(ctx context.Context) error, done func(error)) {
	if c != nil {
		c.SetDisabled(true)
	}
	go func() {
		err := call(context.Background())
		post(func() {
			if c != nil {
				defer c.SetDisabled(false)
			}
			done(err)
		})
	}()
}
