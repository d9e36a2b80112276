package rx_test

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/7vars/rxcore/rx/rxtest"
	"github.com/stretchr/testify/assert"
)

func TestCreationFunctions(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, record(rx.Of(1, 2, 3)).Values())
	assert.Equal(t, []string{"a", "b"}, record(rx.From([]string{"a", "b"})).Values())
	assert.Equal(t, []int{5, 6, 7}, record(rx.Range(5, 3)).Values())
	assert.Empty(t, record(rx.Range(5, 0)).Values())

	empty := record(rx.Empty[int]())
	assert.Empty(t, empty.Values())
	assert.True(t, empty.Completed())

	never := record(rx.Never[int]())
	assert.Empty(t, never.Records())

	assert.ErrorIs(t, record(rx.Throw[int](boom)).Err(), boom)
}

func TestGenerate(t *testing.T) {
	words := []string{"a", "b", "c"}
	i := 0
	next := func() (string, error) {
		if i == len(words) {
			return "", io.EOF
		}
		i++
		return words[i-1], nil
	}
	rec := record(rx.Generate(next))
	assert.Equal(t, words, rec.Values())
	assert.True(t, rec.Completed())

	failed := record(rx.Generate(func() (int, error) { return 0, boom }))
	assert.ErrorIs(t, failed.Err(), boom)

	panicked := record(rx.Generate(func() (int, error) { panic("kaput") }))
	assert.IsType(t, rxcore.RuntimeErr{}, panicked.Err())
}

func TestDeferCallsFactoryPerSubscription(t *testing.T) {
	calls := 0
	src := rx.Defer(func() rx.Observable[int] {
		calls++
		return rx.Of(calls)
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, []int{1}, record(src).Values())
	assert.Equal(t, []int{2}, record(src).Values())

	rec := record(rx.Defer(func() rx.Observable[int] { panic(boom) }))
	assert.ErrorIs(t, rec.Err(), boom)
}

type dispatcher struct {
	mu       sync.Mutex
	seq      int
	handlers map[string]map[int]func(string)
}

func newDispatcher() *dispatcher {
	return &dispatcher{handlers: make(map[string]map[int]func(string))}
}

func (d *dispatcher) Listen(name string, handler func(string)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handlers[name] == nil {
		d.handlers[name] = make(map[int]func(string))
	}
	id := d.seq
	d.seq++
	d.handlers[name][id] = handler
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.handlers[name], id)
	}
}

func (d *dispatcher) dispatch(name, e string) {
	d.mu.Lock()
	handlers := make([]func(string), 0, len(d.handlers[name]))
	for _, h := range d.handlers[name] {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

func (d *dispatcher) listeners(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[name])
}

func TestFromEvent(t *testing.T) {
	d := newDispatcher()
	rec, sub := rxtest.Subscribe(rx.FromEvent[string](nil, d, "click"), nil)
	assert.Equal(t, 1, d.listeners("click"))

	d.dispatch("click", "x")
	d.dispatch("hover", "y")
	d.dispatch("click", "z")
	assert.Equal(t, []string{"x", "z"}, rec.Values())

	sub.Unsubscribe()
	assert.Equal(t, 0, d.listeners("click"))
	d.dispatch("click", "late")
	assert.Equal(t, []string{"x", "z"}, rec.Values())
}

func TestFromEventOnScheduler(t *testing.T) {
	s := rxtest.NewScheduler()
	var handler func(int)
	target := rx.EventTargetFunc[int](func(name string, h func(int)) func() {
		handler = h
		return func() { handler = nil }
	})
	rec, sub := rxtest.Subscribe(rx.FromEvent[int](s, target, "tick"), s)

	handler(1)
	handler(2)
	assert.Empty(t, rec.Values())
	s.Flush()
	assert.Equal(t, []int{1, 2}, rec.Values())

	handler(3)
	sub.Unsubscribe()
	assert.Nil(t, handler)
	s.Flush()
	assert.Equal(t, []int{1, 2}, rec.Values())
}

func TestErrorsSurfaceUnchanged(t *testing.T) {
	err := errors.New("producer")
	rec := record(rx.Map(func(v int) int { return v })(rx.Throw[int](err)))
	assert.Same(t, err, rec.Err())
}
