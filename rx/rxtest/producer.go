package rxtest

import (
	"time"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
)

func NextAt[T any](at time.Duration, v T) Record[T] {
	return Record[T]{Notification: rx.NextOf(v), At: at}
}

func ErrorAt[T any](at time.Duration, err error) Record[T] {
	return Record[T]{Notification: rx.ErrorOf[T](err), At: at}
}

func CompleteAt[T any](at time.Duration) Record[T] {
	return Record[T]{Notification: rx.CompleteOf[T](), At: at}
}

// Timed replays records on sched, each At after the moment of subscription.
// Every subscription gets its own timeline.
func Timed[T any](sched rxcore.Scheduler, records ...Record[T]) rx.Observable[T] {
	return rx.Create(func(s rx.Subscriber[T]) func() {
		cancels := make([]func(), 0, len(records))
		for _, rec := range records {
			n := rec.Notification
			cancels = append(cancels, sched.Schedule(rec.At, func() {
				n.Accept(s)
			}))
		}
		return func() {
			for _, cancel := range cancels {
				cancel()
			}
		}
	})
}

// Producer is a hand driven source. Every notification is pushed to all
// subscriptions that are active at that moment.
type Producer[T any] struct {
	subs         []rx.Subscriber[T]
	subscribed   int
	unsubscribed int
}

func NewProducer[T any]() *Producer[T] {
	return &Producer[T]{}
}

func (p *Producer[T]) Observable() rx.Observable[T] {
	return rx.Create(func(s rx.Subscriber[T]) func() {
		p.subscribed++
		p.subs = append(p.subs, s)
		return func() {
			p.unsubscribed++
			p.remove(s)
		}
	})
}

func (p *Producer[T]) Next(v T) {
	for _, s := range p.active() {
		s.Next(v)
	}
}

func (p *Producer[T]) Error(err error) {
	for _, s := range p.active() {
		s.Error(err)
	}
}

func (p *Producer[T]) Complete() {
	for _, s := range p.active() {
		s.Complete()
	}
}

// Active is the number of subscriptions that were not torn down yet.
func (p *Producer[T]) Active() int {
	return len(p.subs)
}

func (p *Producer[T]) Subscribed() int {
	return p.subscribed
}

func (p *Producer[T]) Unsubscribed() int {
	return p.unsubscribed
}

func (p *Producer[T]) active() []rx.Subscriber[T] {
	cp := make([]rx.Subscriber[T], len(p.subs))
	copy(cp, p.subs)
	return cp
}

func (p *Producer[T]) remove(s rx.Subscriber[T]) {
	for i, sub := range p.subs {
		if sub == s {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return
		}
	}
}
