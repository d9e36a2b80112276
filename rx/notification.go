package rx

import "fmt"

type Kind int

const (
	NextKind Kind = iota
	ErrorKind
	CompleteKind
)

func (k Kind) String() string {
	switch k {
	case NextKind:
		return "next"
	case ErrorKind:
		return "error"
	case CompleteKind:
		return "complete"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Notification reifies one call on an Observer.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

func NextOf[T any](v T) Notification[T] {
	return Notification[T]{Kind: NextKind, Value: v}
}

func ErrorOf[T any](err error) Notification[T] {
	return Notification[T]{Kind: ErrorKind, Err: err}
}

func CompleteOf[T any]() Notification[T] {
	return Notification[T]{Kind: CompleteKind}
}

func (n Notification[T]) IsError() bool {
	return n.Kind == ErrorKind
}

func (n Notification[T]) IsCompleted() bool {
	return n.Kind == CompleteKind
}

// IsTerminal reports whether n is an error or a completion.
func (n Notification[T]) IsTerminal() bool {
	return n.Kind != NextKind
}

// Accept replays n onto obs.
func (n Notification[T]) Accept(obs Observer[T]) {
	switch n.Kind {
	case NextKind:
		obs.Next(n.Value)
	case ErrorKind:
		obs.Error(n.Err)
	case CompleteKind:
		obs.Complete()
	}
}

func (n Notification[T]) String() string {
	switch n.Kind {
	case NextKind:
		return fmt.Sprintf("next(%v)", n.Value)
	case ErrorKind:
		return fmt.Sprintf("error(%v)", n.Err)
	}
	return n.Kind.String()
}

// Materialize turns every notification of the source into a value; the result
// completes after the source's terminal notification.
func Materialize[T any]() Operator[T, Notification[T]] {
	return Lift(func() Flow[T, Notification[T]] {
		return Flow[T, Notification[T]]{
			OnNext: func(dst Subscriber[Notification[T]], v T) {
				dst.Next(NextOf(v))
			},
			OnError: func(dst Subscriber[Notification[T]], err error) {
				dst.Next(ErrorOf[T](err))
				dst.Complete()
			},
			OnComplete: func(dst Subscriber[Notification[T]]) {
				dst.Next(CompleteOf[T]())
				dst.Complete()
			},
		}
	})
}
