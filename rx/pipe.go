package rx

import (
	"sync"

	"github.com/7vars/rxcore"
)

// FromChan emits every value received from ch on sched and completes when ch
// is closed. Unsubscribing stops the reading goroutine; values already read
// but not yet delivered are dropped.
func FromChan[T any](sched rxcore.Scheduler, ch <-chan T) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case v, open := <-ch:
					if !open {
						sched.Post(s.Complete)
						return
					}
					sched.Post(func() { s.Next(v) })
				}
			}
		}()
		return func() {
			close(done)
		}
	})
}

// ToChan subscribes to src on sched and forwards every notification into the
// returned channel, which is closed after the terminal notification or after
// cancel. Sends block the scheduler until the reader receives them or calls
// cancel.
func ToChan[T any](sched rxcore.Scheduler, src Observable[T], buffer int) (<-chan Notification[T], func()) {
	if buffer < 0 {
		buffer = 0
	}
	out := make(chan Notification[T], buffer)
	done := make(chan struct{})
	var (
		sub    Subscription
		closed bool
	)
	finish := func() {
		if !closed {
			closed = true
			close(out)
		}
	}
	send := func(n Notification[T]) {
		select {
		case out <- n:
		case <-done:
		}
		if n.IsTerminal() {
			finish()
		}
	}

	sched.Post(func() {
		select {
		case <-done:
			finish()
			return
		default:
		}
		sub = src.Subscribe(ObserverFuncs[T]{
			OnNext:     func(v T) { send(NextOf(v)) },
			OnError:    func(err error) { send(ErrorOf[T](err)) },
			OnComplete: func() { send(CompleteOf[T]()) },
		})
	})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			sched.Post(func() {
				if sub != nil {
					sub.Unsubscribe()
				}
				finish()
			})
		})
	}
	return out, cancel
}
