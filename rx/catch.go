package rx

// Retry resubscribes to the source when it errors, at most n times (n+1
// attempts in total), then forwards the error. Every attempt is a fresh cold
// subscription. A negative n retries forever.
func Retry[T any](n int) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			st := &retryState[T]{src: src, dst: dst, limit: n}
			dst.Add(st.teardown)
			st.subscribe()
			return nil
		})
	}
}

type retryState[T any] struct {
	src      Observable[T]
	dst      Subscriber[T]
	limit    int
	attempts int
	current  *subscriber[T]

	subscribing bool
	again       bool
}

// subscribe runs attempts in a loop; an attempt that fails synchronously only
// flags the next one instead of recursing.
func (st *retryState[T]) subscribe() {
	if st.subscribing {
		st.again = true
		return
	}
	st.subscribing = true
	defer func() { st.subscribing = false }()

	for {
		st.again = false
		if st.dst.Closed() {
			return
		}
		st.attempts++
		st.current = newSubscriber[T](ObserverFuncs[T]{
			OnNext:     st.dst.Next,
			OnError:    st.fail,
			OnComplete: st.dst.Complete,
		})
		st.src.subscribeWith(st.current)
		if !st.again {
			return
		}
	}
}

func (st *retryState[T]) fail(err error) {
	if st.limit >= 0 && st.attempts > st.limit {
		st.dst.Error(err)
		return
	}
	// the failed attempt is released before the next one starts
	st.current.Unsubscribe()
	st.subscribe()
}

func (st *retryState[T]) teardown() {
	if st.current != nil {
		st.current.Unsubscribe()
	}
}

// CatchError replaces a failing source with the Observable returned by
// handler. A panic in handler is delivered as the error instead.
func CatchError[T any](handler func(error) Observable[T]) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return Create(func(dst Subscriber[T]) func() {
			subscribeChild[T, T](dst, src, ObserverFuncs[T]{
				OnNext: dst.Next,
				OnError: func(err error) {
					replacement, herr := call(handler, err)
					if herr != nil {
						dst.Error(herr)
						return
					}
					subscribeChild[T, T](dst, replacement, dst)
				},
				OnComplete: dst.Complete,
			})
			return nil
		})
	}
}
