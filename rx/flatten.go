package rx

// ===== merge =====

// MergeMap projects every source value to an Observable and subscribes to
// all of them concurrently.
func MergeMap[T, K any](project func(T) Observable[K]) Operator[T, K] {
	return MergeMapN(project, 0)
}

// ConcatMap is MergeMapN with a concurrency of one: projected Observables run
// one after another in source order.
func ConcatMap[T, K any](project func(T) Observable[K]) Operator[T, K] {
	return MergeMapN(project, 1)
}

// MergeMapN is MergeMap with at most concurrency inner subscriptions active;
// further source values are buffered. concurrency <= 0 means unbounded.
func MergeMapN[T, K any](project func(T) Observable[K], concurrency int) Operator[T, K] {
	return func(src Observable[T]) Observable[K] {
		return Create(func(dst Subscriber[K]) func() {
			st := &mergeState[T, K]{
				dst:     dst,
				project: project,
				limit:   concurrency,
				active:  make(map[*subscriber[K]]struct{}),
			}
			dst.Add(st.teardown)
			subscribeChild[T, K](dst, src, ObserverFuncs[T]{
				OnNext:     st.next,
				OnError:    dst.Error,
				OnComplete: st.complete,
			})
			return nil
		})
	}
}

type mergeState[T, K any] struct {
	dst       Subscriber[K]
	project   func(T) Observable[K]
	limit     int
	active    map[*subscriber[K]]struct{}
	buffer    []T
	outerDone bool
	draining  bool
}

func (st *mergeState[T, K]) next(v T) {
	st.buffer = append(st.buffer, v)
	st.drain()
}

func (st *mergeState[T, K]) complete() {
	st.outerDone = true
	st.drain()
}

// drain subscribes buffered values while capacity allows. Inner Observables
// that complete synchronously re-enter drain; the draining flag turns that
// recursion into iteration.
func (st *mergeState[T, K]) drain() {
	if st.draining {
		return
	}
	st.draining = true
	for len(st.buffer) > 0 && !st.dst.Closed() && (st.limit <= 0 || len(st.active) < st.limit) {
		v := st.buffer[0]
		var zero T
		st.buffer[0] = zero
		st.buffer = st.buffer[1:]
		st.subscribe(v)
	}
	st.draining = false
	if st.outerDone && len(st.active) == 0 && len(st.buffer) == 0 {
		st.dst.Complete()
	}
}

func (st *mergeState[T, K]) subscribe(v T) {
	inner, err := call(st.project, v)
	if err != nil {
		st.dst.Error(err)
		return
	}
	var in *subscriber[K]
	in = newSubscriber[K](ObserverFuncs[K]{
		OnNext:  st.dst.Next,
		OnError: st.dst.Error,
		OnComplete: func() {
			delete(st.active, in)
			st.drain()
		},
	})
	st.active[in] = struct{}{}
	inner.subscribeWith(in)
}

func (st *mergeState[T, K]) teardown() {
	st.buffer = nil
	for in := range st.active {
		delete(st.active, in)
		in.Unsubscribe()
	}
}

// ===== switch & exhaust =====

// SwitchMap subscribes to the projection of the latest source value,
// unsubscribing the previous inner Observable first. It completes once the
// source and the latest inner Observable have completed.
func SwitchMap[T, K any](project func(T) Observable[K]) Operator[T, K] {
	return singleInner(project, true)
}

// ExhaustMap ignores source values while an inner Observable is active.
func ExhaustMap[T, K any](project func(T) Observable[K]) Operator[T, K] {
	return singleInner(project, false)
}

func singleInner[T, K any](project func(T) Observable[K], switching bool) Operator[T, K] {
	return func(src Observable[T]) Observable[K] {
		return Create(func(dst Subscriber[K]) func() {
			st := &innerState[T, K]{
				dst:       dst,
				project:   project,
				switching: switching,
			}
			dst.Add(st.teardown)
			subscribeChild[T, K](dst, src, ObserverFuncs[T]{
				OnNext:     st.next,
				OnError:    dst.Error,
				OnComplete: st.complete,
			})
			return nil
		})
	}
}

type innerState[T, K any] struct {
	dst       Subscriber[K]
	project   func(T) Observable[K]
	switching bool
	inner     *subscriber[K]
	outerDone bool
}

func (st *innerState[T, K]) next(v T) {
	if st.inner != nil {
		if !st.switching {
			return
		}
		prev := st.inner
		st.inner = nil
		prev.Unsubscribe()
	}
	obs, err := call(st.project, v)
	if err != nil {
		st.dst.Error(err)
		return
	}
	var in *subscriber[K]
	in = newSubscriber[K](ObserverFuncs[K]{
		OnNext:  st.dst.Next,
		OnError: st.dst.Error,
		OnComplete: func() {
			if st.inner == in {
				st.inner = nil
			}
			if st.outerDone && st.inner == nil {
				st.dst.Complete()
			}
		},
	})
	st.inner = in
	obs.subscribeWith(in)
}

func (st *innerState[T, K]) complete() {
	st.outerDone = true
	if st.inner == nil {
		st.dst.Complete()
	}
}

func (st *innerState[T, K]) teardown() {
	if st.inner != nil {
		inner := st.inner
		st.inner = nil
		inner.Unsubscribe()
	}
}
