package rx

import "github.com/7vars/rxcore"

// Observable is an immutable, lazy producer. The zero value completes
// immediately.
type Observable[T any] struct {
	onSubscribe func(Subscriber[T]) func()
}

// Create builds an Observable from a subscribe function. The function runs
// synchronously on every Subscribe; it may return a teardown (or nil) and may
// attach further teardowns with Subscriber.Add. A panic inside it is delivered
// as an error notification.
func Create[T any](onSubscribe func(Subscriber[T]) func()) Observable[T] {
	return Observable[T]{onSubscribe: onSubscribe}
}

func (o Observable[T]) Subscribe(obs Observer[T]) Subscription {
	s := newSubscriber(obs)
	if rxcore.Tracing() {
		s.trace()
	}
	o.subscribeWith(s)
	return s
}

// SubscribeFunc is Subscribe with callbacks; any of them may be nil.
func (o Observable[T]) SubscribeFunc(next func(T), onError func(error), complete func()) Subscription {
	return o.Subscribe(ObserverFuncs[T]{
		OnNext:     next,
		OnError:    onError,
		OnComplete: complete,
	})
}

func (o Observable[T]) subscribeWith(s *subscriber[T]) {
	if s.Closed() {
		return
	}
	if o.onSubscribe == nil {
		s.Complete()
		return
	}
	var teardown func()
	if err := rxcore.Recover(func() { teardown = o.onSubscribe(s) }); err != nil {
		s.Error(err)
	}
	s.Add(teardown)
}

// Pipe applies same typed operators left to right.
func (o Observable[T]) Pipe(ops ...Operator[T, T]) Observable[T] {
	out := o
	for _, op := range ops {
		if op != nil {
			out = op(out)
		}
	}
	return out
}

func Pipe2[A, B, C any](src Observable[A], op1 Operator[A, B], op2 Operator[B, C]) Observable[C] {
	return op2(op1(src))
}

func Pipe3[A, B, C, D any](src Observable[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D]) Observable[D] {
	return op3(op2(op1(src)))
}

func Pipe4[A, B, C, D, E any](src Observable[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D], op4 Operator[D, E]) Observable[E] {
	return op4(op3(op2(op1(src))))
}
