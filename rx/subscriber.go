package rx

import "github.com/7vars/rxcore"

// subscriber guards an Observer: it drops notifications after a terminal one
// or after Unsubscribe, and tears itself down on Error and Complete, even when
// the observer panics.
type subscriber[T any] struct {
	CompositeSubscription
	dst     Observer[T]
	stopped bool
}

func newSubscriber[T any](dst Observer[T]) *subscriber[T] {
	if dst == nil {
		dst = ObserverFuncs[T]{}
	}
	return &subscriber[T]{dst: dst}
}

func (s *subscriber[T]) Next(v T) {
	if s.Closed() {
		return
	}
	s.dst.Next(v)
}

func (s *subscriber[T]) Error(err error) {
	if s.Closed() {
		return
	}
	s.stopped = true
	defer s.Unsubscribe()
	s.dst.Error(err)
}

func (s *subscriber[T]) Complete() {
	if s.Closed() {
		return
	}
	s.stopped = true
	defer s.Unsubscribe()
	s.dst.Complete()
}

func (s *subscriber[T]) Closed() bool {
	return s.stopped || s.CompositeSubscription.Closed()
}

func (s *subscriber[T]) trace() {
	log := rxcore.DefaultLogger().WithField("subscription", rxcore.NewID())
	log.Debugf("subscribe %T", s.dst)
	s.Add(func() {
		log.Debug("unsubscribe")
	})
}

// subscribeChild subscribes obs to src and ties the child subscription to
// parent, so tearing parent down stops src even while it is still emitting
// synchronously.
func subscribeChild[T, K any](parent Subscriber[K], src Observable[T], obs Observer[T]) *subscriber[T] {
	child := newSubscriber(obs)
	parent.Add(child.Unsubscribe)
	src.subscribeWith(child)
	return child
}
