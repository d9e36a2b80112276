package rx

import (
	"context"
	"time"

	"github.com/7vars/rxcore"
)

// Timer emits 0 after d on sched, then completes.
func Timer(sched rxcore.Scheduler, d time.Duration) Observable[int] {
	return Create(func(s Subscriber[int]) func() {
		return sched.Schedule(d, func() {
			s.Next(0)
			s.Complete()
		})
	})
}

// Interval emits 0, 1, 2, ... every d on sched. It never completes.
func Interval(sched rxcore.Scheduler, d time.Duration) Observable[int] {
	return Create(func(s Subscriber[int]) func() {
		var (
			n      int
			cancel func()
			tick   func()
		)
		tick = func() {
			cancel = sched.Schedule(d, tick)
			v := n
			n++
			s.Next(v)
		}
		cancel = sched.Schedule(d, tick)
		return func() {
			cancel()
		}
	})
}

// FromAsync runs f on its own goroutine and delivers its result on sched:
// the value followed by completion, or the error. The context passed to f is
// cancelled on unsubscribe.
func FromAsync[T any](sched rxcore.Scheduler, f func(context.Context) (T, error)) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			var (
				v   T
				err error
			)
			if rerr := rxcore.Recover(func() { v, err = f(ctx) }); rerr != nil {
				err = rerr
			}
			if ctx.Err() != nil {
				return
			}
			sched.Post(func() {
				if err != nil {
					s.Error(err)
					return
				}
				s.Next(v)
				s.Complete()
			})
		}()
		return cancel
	})
}

// FromEvent emits the events target dispatches under name. Handlers may fire
// on any goroutine; delivery is moved onto sched. With a nil sched events are
// delivered on the goroutine that dispatched them.
func FromEvent[E any](sched rxcore.Scheduler, target EventTarget[E], name string) Observable[E] {
	return Create(func(s Subscriber[E]) func() {
		handler := s.Next
		if sched != nil {
			handler = func(e E) {
				sched.Post(func() { s.Next(e) })
			}
		}
		return target.Listen(name, handler)
	})
}
