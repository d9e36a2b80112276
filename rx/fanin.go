package rx

func identity[T any](o Observable[T]) Observable[T] {
	return o
}

// Merge subscribes to all sources at once and forwards their values in
// arrival order. It completes after every source completed; the first error
// tears all other sources down.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return MergeMap(identity[T])(From(sources))
}

// Concat subscribes to each source only after the previous one completed.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return ConcatMap(identity[T])(From(sources))
}

// Race mirrors the first source to notify and unsubscribes the others.
func Race[T any](sources ...Observable[T]) Observable[T] {
	if len(sources) == 0 {
		return Empty[T]()
	}
	return Create(func(dst Subscriber[T]) func() {
		subs := make([]*subscriber[T], len(sources))
		winner := -1

		win := func(i int) bool {
			if winner == -1 {
				winner = i
				for j, sub := range subs {
					if j != i && sub != nil {
						sub.Unsubscribe()
					}
				}
			}
			return winner == i
		}

		for i, src := range sources {
			if winner != -1 || dst.Closed() {
				break
			}
			i := i
			subs[i] = subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					if win(i) {
						dst.Next(v)
					}
				},
				OnError: func(err error) {
					if win(i) {
						dst.Error(err)
					}
				},
				OnComplete: func() {
					if win(i) {
						dst.Complete()
					}
				},
			})
		}
		return nil
	})
}

// ForkJoin waits for every source to complete and emits their last values in
// source order. A source that completes without a value completes the result
// without emission.
func ForkJoin[T any](sources ...Observable[T]) Observable[[]T] {
	if len(sources) == 0 {
		return Empty[[]T]()
	}
	return Create(func(dst Subscriber[[]T]) func() {
		last := make([]T, len(sources))
		seen := make([]bool, len(sources))
		remaining := len(sources)

		for i, src := range sources {
			if dst.Closed() {
				break
			}
			i := i
			subscribeChild[T, []T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					last[i], seen[i] = v, true
				},
				OnError: dst.Error,
				OnComplete: func() {
					if !seen[i] {
						dst.Complete()
						return
					}
					remaining--
					if remaining == 0 {
						dst.Next(last)
						dst.Complete()
					}
				},
			})
		}
		return nil
	})
}

// TakeUntil mirrors the source until notifier emits, then completes.
func TakeUntil[T, N any](notifier Observable[N]) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			subscribeChild[N, T](dst, notifier, ObserverFuncs[N]{
				OnNext: func(N) {
					dst.Complete()
				},
				OnError: dst.Error,
			})
			if !dst.Closed() {
				subscribeChild[T, T](dst, src, dst)
			}
			return nil
		})
	}
}

// SkipUntil drops source values until notifier emits.
func SkipUntil[T, N any](notifier Observable[N]) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			open := false
			var gate *subscriber[N]
			gate = subscribeChild[N, T](dst, notifier, ObserverFuncs[N]{
				OnNext: func(N) {
					open = true
					if gate != nil {
						gate.Unsubscribe()
					}
				},
				OnError: dst.Error,
			})
			if open {
				gate.Unsubscribe()
			}
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: func(v T) {
					if open {
						dst.Next(v)
					}
				},
				OnError:    dst.Error,
				OnComplete: dst.Complete,
			})
			return nil
		})
	}
}
