package rx

import (
	"context"
	"errors"

	"github.com/7vars/rxcore"
)

var ErrEmpty = errors.New("rx: no elements in sequence")

// tryPoster is a scheduler that can refuse tasks, like a closed rxcore.Loop.
type tryPoster interface {
	TryPost(func()) error
}

// Run subscribes obs to src on sched and blocks until src terminates or ctx
// is done. obs sees values and completion; an error is returned instead of
// being delivered. On ctx cancellation the subscription is torn down on
// sched. Run must not be called from a task running on sched. A scheduler
// that refuses the subscription, such as a closed rxcore.Loop, makes Run
// return its error at once.
func Run[T any](ctx context.Context, sched rxcore.Scheduler, src Observable[T], obs Observer[T]) error {
	if obs == nil {
		obs = ObserverFuncs[T]{}
	}
	result := make(chan error, 1)
	var sub Subscription
	subscribe := func() {
		sub = src.Subscribe(ObserverFuncs[T]{
			OnNext: obs.Next,
			OnError: func(err error) {
				result <- err
			},
			OnComplete: func() {
				obs.Complete()
				result <- nil
			},
		})
	}
	if p, ok := sched.(tryPoster); ok {
		if err := p.TryPost(subscribe); err != nil {
			return err
		}
	} else {
		sched.Post(subscribe)
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		sched.Post(func() {
			if sub != nil {
				sub.Unsubscribe()
			}
		})
		return ctx.Err()
	}
}

// ToSlice collects every value of src.
func ToSlice[T any](ctx context.Context, sched rxcore.Scheduler, src Observable[T]) ([]T, error) {
	values := make([]T, 0)
	err := Run(ctx, sched, src, ObserverFuncs[T]{
		OnNext: func(v T) {
			values = append(values, v)
		},
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// First returns the first value of src, or ErrEmpty if it completes without
// one.
func First[T any](ctx context.Context, sched rxcore.Scheduler, src Observable[T]) (T, error) {
	var zero T
	values, err := ToSlice(ctx, sched, Take[T](1)(src))
	if err != nil {
		return zero, err
	}
	if len(values) == 0 {
		return zero, ErrEmpty
	}
	return values[0], nil
}
