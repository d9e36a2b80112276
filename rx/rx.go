// Package rx implements cold, unicast, push based Observables.
//
// An Observable wraps a subscribe function that runs synchronously and
// afresh on every Subscribe call. Operators are plain functions from
// Observable to Observable; all per-subscription state lives inside the
// subscribe function they return.
//
// Delivery is single threaded. A chain that involves timers or asynchronous
// sources must be subscribed, driven and unsubscribed on one rxcore.Scheduler
// (an rxcore.Loop in production, rxtest.Scheduler in tests).
package rx

import (
	"github.com/7vars/rxcore"
)

// Observer is the sink every Observable pushes into. After Error or Complete
// no further notification is delivered.
type Observer[T any] interface {
	Next(T)
	Error(error)
	Complete()
}

// Subscription disposes a running subscription. Unsubscribe is idempotent and
// synchronous: once it returns, no further notification reaches the observer.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// Subscriber is what a subscribe function receives: the observer to push into
// plus the subscription it can attach teardown logic to.
type Subscriber[T any] interface {
	Observer[T]
	Subscription
	Add(teardown func())
}

type Operator[T, K any] func(Observable[T]) Observable[K]

// ObserverFuncs adapts optional callbacks into an Observer. A nil OnError
// reports the error to the rxcore default logger.
type ObserverFuncs[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (o ObserverFuncs[T]) Next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o ObserverFuncs[T]) Error(err error) {
	if o.OnError != nil {
		o.OnError(err)
		return
	}
	rxcore.DefaultLogger().Errorf("rx: unhandled error: %v", err)
}

func (o ObserverFuncs[T]) Complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

// EventTarget is an external source of named events. Listen attaches handler
// and returns the function that detaches it.
type EventTarget[E any] interface {
	Listen(name string, handler func(E)) (remove func())
}

type EventTargetFunc[E any] func(name string, handler func(E)) func()

func (f EventTargetFunc[E]) Listen(name string, handler func(E)) func() {
	return f(name, handler)
}

func call[T, K any](f func(T) K, v T) (k K, err error) {
	err = rxcore.Recover(func() {
		k = f(v)
	})
	return
}

func call2[A, B, K any](f func(A, B) K, a A, b B) (k K, err error) {
	err = rxcore.Recover(func() {
		k = f(a, b)
	})
	return
}
