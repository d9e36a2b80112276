// Package term exposes the events of a tcell screen as an rx.EventTarget.
package term

import (
	"sort"
	"sync"
	"time"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/gdamore/tcell/v2"
)

// Event names a Target dispatches under. Every event is also dispatched
// under Any.
const (
	Key       = "key"
	Mouse     = "mouse"
	Resize    = "resize"
	Paste     = "paste"
	Interrupt = "interrupt"
	Failure   = "error"
	Other     = "other"
	Any       = "*"
)

// Source is the part of tcell.Screen a Target reads from.
type Source interface {
	PollEvent() tcell.Event
	PostEvent(tcell.Event) error
}

// Name returns the name ev is dispatched under.
func Name(ev tcell.Event) string {
	switch ev.(type) {
	case *tcell.EventKey:
		return Key
	case *tcell.EventMouse:
		return Mouse
	case *tcell.EventResize:
		return Resize
	case *tcell.EventPaste:
		return Paste
	case *tcell.EventInterrupt:
		return Interrupt
	case *tcell.EventError:
		return Failure
	}
	return Other
}

// stopEvent wakes the pump so it can notice that nobody listens anymore.
type stopEvent struct {
	at time.Time
}

func (e *stopEvent) When() time.Time {
	return e.at
}

// Target polls its Source on a dedicated goroutine while at least one
// listener is attached. Handlers run on that goroutine.
type Target struct {
	rxcore.Logger

	src Source

	mu        sync.Mutex
	seq       int
	listeners map[string]map[int]func(tcell.Event)
	count     int
	running   bool
	wg        sync.WaitGroup
}

var _ rx.EventTarget[tcell.Event] = (*Target)(nil)

func NewTarget(src Source, opts ...rxcore.Option) *Target {
	var log rxcore.Logger
	for _, opt := range opts {
		if opt.Name == "logger" {
			if l, ok := opt.Value.(rxcore.Logger); ok && l != nil {
				log = l
			}
		}
	}
	if log == nil {
		log = rxcore.DefaultLogger()
	}
	return &Target{
		Logger:    log.WithField("target", "term"),
		src:       src,
		listeners: make(map[string]map[int]func(tcell.Event)),
	}
}

func (t *Target) Listen(name string, handler func(tcell.Event)) func() {
	if handler == nil {
		return func() {}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listeners[name] == nil {
		t.listeners[name] = make(map[int]func(tcell.Event))
	}
	id := t.seq
	t.seq++
	t.listeners[name][id] = handler
	t.count++
	if !t.running {
		t.running = true
		t.wg.Add(1)
		go t.pump()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			t.remove(name, id)
		})
	}
}

// Listeners counts the attached handlers.
func (t *Target) Listeners() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Wait blocks until the polling goroutine has stopped.
func (t *Target) Wait() {
	t.wg.Wait()
}

func (t *Target) remove(name string, id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.listeners[name][id]; !ok {
		return
	}
	delete(t.listeners[name], id)
	if len(t.listeners[name]) == 0 {
		delete(t.listeners, name)
	}
	t.count--
	if t.count == 0 && t.running {
		if err := t.src.PostEvent(&stopEvent{at: time.Now()}); err != nil {
			t.Warnf("cannot stop event pump: %v", err)
		}
	}
}

func (t *Target) pump() {
	defer t.wg.Done()
	t.Debug("event pump started")
	for {
		ev := t.src.PollEvent()
		if ev == nil {
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			t.Debug("event source finished")
			return
		}
		if _, ok := ev.(*stopEvent); ok {
			t.mu.Lock()
			if t.count == 0 {
				t.running = false
				t.mu.Unlock()
				t.Debug("event pump stopped")
				return
			}
			t.mu.Unlock()
			continue
		}
		t.dispatch(ev)
	}
}

func (t *Target) dispatch(ev tcell.Event) {
	name := Name(ev)
	t.mu.Lock()
	handlers := append(inOrder(t.listeners[name]), inOrder(t.listeners[Any])...)
	t.mu.Unlock()

	for _, h := range handlers {
		if err := rxcore.Recover(func() { h(ev) }); err != nil {
			t.Errorf("%s handler failed: %v", name, err)
		}
	}
}

// inOrder returns the handlers in the order they were added.
func inOrder(listeners map[int]func(tcell.Event)) []func(tcell.Event) {
	ids := make([]int, 0, len(listeners))
	for id := range listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(tcell.Event), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, listeners[id])
	}
	return handlers
}
