package rx

import "github.com/7vars/rxcore"

// Flow describes how an operator reacts to upstream notifications for one
// subscription. OnNext is required; a nil OnError or OnComplete forwards the
// notification downstream unchanged.
type Flow[T, K any] struct {
	OnNext     func(Subscriber[K], T)
	OnError    func(Subscriber[K], error)
	OnComplete func(Subscriber[K])
}

type flowObserver[T, K any] struct {
	flow Flow[T, K]
	dst  Subscriber[K]
}

func (o flowObserver[T, K]) Next(v T) {
	if o.dst.Closed() {
		return
	}
	o.flow.OnNext(o.dst, v)
}

func (o flowObserver[T, K]) Error(err error) {
	if o.flow.OnError != nil {
		o.flow.OnError(o.dst, err)
		return
	}
	o.dst.Error(err)
}

func (o flowObserver[T, K]) Complete() {
	if o.flow.OnComplete != nil {
		o.flow.OnComplete(o.dst)
		return
	}
	o.dst.Complete()
}

// Lift turns a Flow factory into an Operator. create runs once per
// subscription, so any state it captures is private to that subscription.
func Lift[T, K any](create func() Flow[T, K]) Operator[T, K] {
	return func(src Observable[T]) Observable[K] {
		return Create(func(dst Subscriber[K]) func() {
			flow := create()
			if flow.OnNext == nil {
				panic("rx: flow without OnNext")
			}
			subscribeChild[T, K](dst, src, flowObserver[T, K]{flow: flow, dst: dst})
			return nil
		})
	}
}

// ===== transformations =====

// Map projects every value with f. A panic in f is delivered as an error and
// unsubscribes the source.
func Map[T, K any](f func(T) K) Operator[T, K] {
	return Lift(func() Flow[T, K] {
		return Flow[T, K]{
			OnNext: func(dst Subscriber[K], v T) {
				k, err := call(f, v)
				if err != nil {
					dst.Error(err)
					return
				}
				dst.Next(k)
			},
		}
	})
}

// TryMap is Map for projections that can fail.
func TryMap[T, K any](f func(T) (K, error)) Operator[T, K] {
	return Lift(func() Flow[T, K] {
		return Flow[T, K]{
			OnNext: func(dst Subscriber[K], v T) {
				var (
					k   K
					err error
				)
				if rerr := rxcore.Recover(func() { k, err = f(v) }); rerr != nil {
					err = rerr
				}
				if err != nil {
					dst.Error(err)
					return
				}
				dst.Next(k)
			},
		}
	})
}

func MapTo[T, K any](k K) Operator[T, K] {
	return Lift(func() Flow[T, K] {
		return Flow[T, K]{
			OnNext: func(dst Subscriber[K], _ T) {
				dst.Next(k)
			},
		}
	})
}

func Filter[T any](f func(T) bool) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				ok, err := call(f, v)
				if err != nil {
					dst.Error(err)
					return
				}
				if ok {
					dst.Next(v)
				}
			},
		}
	})
}

// Scan emits the running accumulation. The seed itself is never emitted.
func Scan[T, A any](reducer func(A, T) A, seed A) Operator[T, A] {
	return Lift(func() Flow[T, A] {
		acc := seed
		return Flow[T, A]{
			OnNext: func(dst Subscriber[A], v T) {
				next, err := call2(reducer, acc, v)
				if err != nil {
					dst.Error(err)
					return
				}
				acc = next
				dst.Next(acc)
			},
		}
	})
}

// Reduce emits only the final accumulation when the source completes (the
// seed for an empty source).
func Reduce[T, A any](reducer func(A, T) A, seed A) Operator[T, A] {
	return Lift(func() Flow[T, A] {
		acc := seed
		return Flow[T, A]{
			OnNext: func(dst Subscriber[A], v T) {
				next, err := call2(reducer, acc, v)
				if err != nil {
					dst.Error(err)
					return
				}
				acc = next
			},
			OnComplete: func(dst Subscriber[A]) {
				dst.Next(acc)
				dst.Complete()
			},
		}
	})
}

// Tap runs side effects for each notification and passes it on unchanged.
func Tap[T any](obs ObserverFuncs[T]) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				if obs.OnNext != nil {
					if err := rxcore.Recover(func() { obs.OnNext(v) }); err != nil {
						dst.Error(err)
						return
					}
				}
				dst.Next(v)
			},
			OnError: func(dst Subscriber[T], err error) {
				if obs.OnError != nil {
					if terr := rxcore.Recover(func() { obs.OnError(err) }); terr != nil {
						err = terr
					}
				}
				dst.Error(err)
			},
			OnComplete: func(dst Subscriber[T]) {
				if obs.OnComplete != nil {
					if err := rxcore.Recover(obs.OnComplete); err != nil {
						dst.Error(err)
						return
					}
				}
				dst.Complete()
			},
		}
	})
}

// ===== filtering =====

// Take emits the first n values, completes and unsubscribes the source.
// n <= 0 completes without subscribing to the source.
func Take[T any](n int) Operator[T, T] {
	if n <= 0 {
		return func(Observable[T]) Observable[T] {
			return Empty[T]()
		}
	}
	return Lift(func() Flow[T, T] {
		var count int
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				count++
				dst.Next(v)
				if count >= n {
					dst.Complete()
				}
			},
		}
	})
}

// TakeWhile emits values while f holds and completes on the first that fails.
func TakeWhile[T any](f func(T) bool) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				ok, err := call(f, v)
				if err != nil {
					dst.Error(err)
					return
				}
				if !ok {
					dst.Complete()
					return
				}
				dst.Next(v)
			},
		}
	})
}

func Skip[T any](n int) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		var count int
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				if count < n {
					count++
					return
				}
				dst.Next(v)
			},
		}
	})
}

func SkipWhile[T any](f func(T) bool) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		skipping := true
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				if skipping {
					ok, err := call(f, v)
					if err != nil {
						dst.Error(err)
						return
					}
					if ok {
						return
					}
					skipping = false
				}
				dst.Next(v)
			},
		}
	})
}

// DistinctUntilChanged drops values equal (==) to the previous emission.
func DistinctUntilChanged[T comparable]() Operator[T, T] {
	return DistinctUntilChangedFunc(func(a, b T) bool {
		return a == b
	})
}

func DistinctUntilChangedFunc[T any](equal func(T, T) bool) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		var (
			last T
			has  bool
		)
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], v T) {
				if has {
					same, err := call2(equal, last, v)
					if err != nil {
						dst.Error(err)
						return
					}
					if same {
						return
					}
				}
				last, has = v, true
				dst.Next(v)
			},
		}
	})
}

func DefaultIfEmpty[T any](v T) Operator[T, T] {
	return Lift(func() Flow[T, T] {
		var seen bool
		return Flow[T, T]{
			OnNext: func(dst Subscriber[T], t T) {
				seen = true
				dst.Next(t)
			},
			OnComplete: func(dst Subscriber[T]) {
				if !seen {
					dst.Next(v)
				}
				dst.Complete()
			},
		}
	})
}

// StartWith emits values before subscribing to the source.
func StartWith[T any](values ...T) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Concat(From(values), src)
	}
}
