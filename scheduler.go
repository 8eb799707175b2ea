package meme

import "time"

// Timer is a scheduled callback that can be canceled.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs a callback after a delay on the goroutine that owns the editor.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules callbacks on the wall clock. When the delay elapses the callback is handed to Post,
// which must run it on the event loop of the host. A nil Post runs the callback on the timer's goroutine.
type ClockScheduler struct {
	Post func(func())
}

// AfterFunc implements Scheduler.
func (s ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if s.Post == nil {
		return time.AfterFunc(d, f)
	}
	post := s.Post
	return time.AfterFunc(d, func() {
		post(f)
	})
}
