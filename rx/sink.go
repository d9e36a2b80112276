package rx

import (
	"context"
	"fmt"
	"io"

	"github.com/7vars/rxcore"
)

// ForEach calls f for every value of src on sched and blocks until src
// terminates. A panic in f ends the subscription with that error.
func ForEach[T any](ctx context.Context, sched rxcore.Scheduler, src Observable[T], f func(T)) error {
	return Run(ctx, sched, Tap(ObserverFuncs[T]{OnNext: f})(src), nil)
}

// Fprintln writes every value of src as a line to w.
func Fprintln[T any](ctx context.Context, sched rxcore.Scheduler, src Observable[T], w io.Writer) error {
	return ForEach(ctx, sched, src, func(v T) {
		if _, err := fmt.Fprintln(w, v); err != nil {
			panic(err)
		}
	})
}
