package rx

import (
	"errors"
	"time"

	"github.com/7vars/rxcore"
)

var ErrTimeout = errors.New("rx: timeout")

// DebounceTime emits a value only after d passed without a newer one. A value
// still pending when the source completes is flushed before completion.
func DebounceTime[T any](d time.Duration, sched rxcore.Scheduler) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			var (
				value   T
				pending bool
				cancel  func()
			)
			stop := func() {
				if cancel != nil {
					cancel()
					cancel = nil
				}
			}
			flush := func() {
				if pending {
					v := value
					var zero T
					value, pending = zero, false
					dst.Next(v)
				}
			}
			dst.Add(stop)
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					stop()
					value, pending = v, true
					cancel = sched.Schedule(d, func() {
						cancel = nil
						flush()
					})
				},
				OnError: func(err error) {
					stop()
					pending = false
					dst.Error(err)
				},
				OnComplete: func() {
					stop()
					flush()
					dst.Complete()
				},
			})
			return nil
		})
	}
}

// ThrottleTime emits the first value, then drops values for d.
func ThrottleTime[T any](d time.Duration, sched rxcore.Scheduler) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			var cancel func()
			dst.Add(func() {
				if cancel != nil {
					cancel()
				}
			})
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					if cancel != nil {
						return
					}
					cancel = sched.Schedule(d, func() {
						cancel = nil
					})
					dst.Next(v)
				},
				OnError:    dst.Error,
				OnComplete: dst.Complete,
			})
			return nil
		})
	}
}

// Delay shifts every value by d. Completion is delayed until the last value
// was emitted; errors are forwarded at once.
func Delay[T any](d time.Duration, sched rxcore.Scheduler) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			var (
				seq  int
				done bool
			)
			timers := make(map[int]func())
			dst.Add(func() {
				for id, cancel := range timers {
					delete(timers, id)
					cancel()
				}
			})
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					id := seq
					seq++
					timers[id] = sched.Schedule(d, func() {
						delete(timers, id)
						dst.Next(v)
						if done && len(timers) == 0 {
							dst.Complete()
						}
					})
				},
				OnError: dst.Error,
				OnComplete: func() {
					done = true
					if len(timers) == 0 {
						dst.Complete()
					}
				},
			})
			return nil
		})
	}
}

// Timeout fails with ErrTimeout when d passes after subscription, or after the
// latest value, without a notification from the source.
func Timeout[T any](d time.Duration, sched rxcore.Scheduler) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			var cancel func()
			stop := func() {
				if cancel != nil {
					cancel()
					cancel = nil
				}
			}
			arm := func() {
				stop()
				cancel = sched.Schedule(d, func() {
					cancel = nil
					dst.Error(ErrTimeout)
				})
			}
			dst.Add(stop)
			arm()
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					arm()
					dst.Next(v)
				},
				OnError: func(err error) {
					stop()
					dst.Error(err)
				},
				OnComplete: func() {
					stop()
					dst.Complete()
				},
			})
			return nil
		})
	}
}
