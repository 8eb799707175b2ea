package htmlapp

import (
	"context"
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

type button struct {
	states []bool
}

func (b *button) SetDisabled(disabled bool) {
	b.states = append(b.states, disabled)
}

func (b *button) disabled() bool {
	return 0 < len(b.states) && b.states[len(b.states)-1]
}

func TestRunRemote(t *testing.T) {
	loop := make(chan func(), 1)
	post := func(f func()) { loop <- f }

	btn := &button{}
	release := make(chan struct{})
	var inFlight bool
	var got error
	errVote := errors.New("vote failed")
	runRemote(post, btn, func(ctx context.Context) error {
		inFlight = btn.disabled()
		<-release
		return errVote
	}, func(err error) {
		test.That(t, btn.disabled(), "enabled before done")
		got = err
	})
	test.That(t, btn.disabled(), "not disabled while in flight")

	close(release)
	(<-loop)()
	test.That(t, inFlight, "enabled during the call")
	test.T(t, got, errVote)
	test.That(t, !btn.disabled(), "not enabled after done")
	test.T(t, btn.states, []bool{true, false})
}

func TestRunRemotePanic(t *testing.T) {
	loop := make(chan func(), 1)
	btn := &button{}
	runRemote(func(f func()) { loop <- f }, btn, func(context.Context) error {
		return nil
	}, func(error) {
		panic("notice failed")
	})

	f := <-loop
	func() {
		defer func() { test.That(t, recover() != nil) }()
		f()
	}()
	test.That(t, !btn.disabled(), "stays disabled after a panic")
}

func TestRunRemoteNoControl(t *testing.T) {
	loop := make(chan func(), 1)
	done := false
	runRemote(func(f func()) { loop <- f }, nil, func(context.Context) error {
		return nil
	}, func(err error) {
		test.Error(t, err)
		done = true
	})
	(<-loop)()
	test.That(t, done)
}
