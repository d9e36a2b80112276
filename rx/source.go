package rx

import (
	"errors"
	"io"

	"github.com/7vars/rxcore"
)

func Of[T any](values ...T) Observable[T] {
	return From(values)
}

// From emits the elements of slice synchronously, then completes.
func From[T any](slice []T) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		for _, v := range slice {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		s.Complete()
		return nil
	})
}

func Range(start, count int) Observable[int] {
	return Create(func(s Subscriber[int]) func() {
		for i := start; i < start+count; i++ {
			if s.Closed() {
				return nil
			}
			s.Next(i)
		}
		s.Complete()
		return nil
	})
}

func Empty[T any]() Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		s.Complete()
		return nil
	})
}

func Never[T any]() Observable[T] {
	return Create(func(Subscriber[T]) func() {
		return nil
	})
}

func Throw[T any](err error) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		s.Error(err)
		return nil
	})
}

// Generate pulls values from f until it returns an error. io.EOF completes the
// stream, any other error is delivered as is.
func Generate[T any](f func() (T, error)) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		for !s.Closed() {
			var (
				t   T
				err error
			)
			if rerr := rxcore.Recover(func() { t, err = f() }); rerr != nil {
				err = rerr
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					s.Complete()
					return nil
				}
				s.Error(err)
				return nil
			}
			s.Next(t)
		}
		return nil
	})
}

// Defer calls factory on every subscription and subscribes to the Observable
// it returns.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return Create(func(s Subscriber[T]) func() {
		var src Observable[T]
		if err := rxcore.Recover(func() { src = factory() }); err != nil {
			s.Error(err)
			return nil
		}
		subscribeChild[T, T](s, src, s)
		return nil
	})
}
