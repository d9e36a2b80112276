package rx

import "github.com/7vars/rxcore"

// CompositeSubscription runs a list of teardown functions once, in the order
// they were added. Teardowns added after Unsubscribe run immediately.
type CompositeSubscription struct {
	closed    bool
	teardowns []func()
}

func NewSubscription(teardowns ...func()) *CompositeSubscription {
	sub := &CompositeSubscription{}
	for _, t := range teardowns {
		sub.Add(t)
	}
	return sub
}

func (sub *CompositeSubscription) Add(teardown func()) {
	if teardown == nil {
		return
	}
	if sub.closed {
		runTeardown(teardown)
		return
	}
	sub.teardowns = append(sub.teardowns, teardown)
}

// AddSubscription ties the lifetime of s to sub.
func (sub *CompositeSubscription) AddSubscription(s Subscription) {
	if s == nil {
		return
	}
	sub.Add(s.Unsubscribe)
}

func (sub *CompositeSubscription) Closed() bool {
	return sub.closed
}

func (sub *CompositeSubscription) Unsubscribe() {
	if sub.closed {
		return
	}
	sub.closed = true
	teardowns := sub.teardowns
	sub.teardowns = nil
	for _, t := range teardowns {
		runTeardown(t)
	}
}

func runTeardown(teardown func()) {
	if err := rxcore.Recover(teardown); err != nil {
		rxcore.DefaultLogger().Errorf("rx: teardown failed: %v", err)
	}
}
