package rxcore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultQueueSize = 64

func WithQueueSize(n int) Option {
	return Option{Name: "queue", Value: n}
}

func WithLogger(l Logger) Option {
	return Option{Name: "logger", Value: l}
}

// WithClock replaces time.Now as the loop's notion of the current time.
func WithClock(now func() time.Time) Option {
	return Option{Name: "clock", Value: now}
}

// Loop is a single goroutine event loop. Every task posted to it runs on that
// goroutine, so state touched only from loop tasks needs no locking.
type Loop struct {
	Logger

	name  string
	clock func() time.Time

	mu     sync.Mutex
	queue  []task
	done   bool
	wake   chan struct{}
	close  chan struct{}
	closed chan struct{}
	once   sync.Once
}

var _ Scheduler = (*Loop)(nil)

func NewLoop(name string, opts ...Option) *Loop {
	size := Settings().GetIntDefault("rxcore.loop.queue", defaultQueueSize)
	l := &Loop{
		name:   name,
		clock:  time.Now,
		wake:   make(chan struct{}, 1),
		close:  make(chan struct{}),
		closed: make(chan struct{}),
	}
	var log Logger
	for _, opt := range opts {
		switch opt.Name {
		case "queue":
			if n, ok := opt.Value.(int); ok && n > 0 {
				size = n
			}
		case "logger":
			if lg, ok := opt.Value.(Logger); ok && lg != nil {
				log = lg
			}
		case "clock":
			if now, ok := opt.Value.(func() time.Time); ok && now != nil {
				l.clock = now
			}
		}
	}
	if log == nil {
		log = DefaultLogger()
	}
	l.Logger = log.WithField("loop", name)
	l.queue = make([]task, 0, size)

	go l.run()

	return l
}

func (l *Loop) Name() string {
	return l.name
}

func (l *Loop) Now() time.Time {
	return l.clock()
}

// Post enqueues fn. Tasks posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	if err := l.enqueue(sendOnly(fn)); err != nil {
		l.Debugf("drop task: %v", err)
	}
}

// TryPost is Post reporting ErrLoopClosed instead of dropping silently.
func (l *Loop) TryPost(fn func()) error {
	if fn == nil {
		return nil
	}
	return l.enqueue(sendOnly(fn))
}

func (l *Loop) Schedule(delay time.Duration, fn func()) func() {
	if fn == nil {
		return noop
	}
	var cancelled atomic.Bool
	run := func() {
		if !cancelled.Load() {
			fn()
		}
	}
	if delay <= 0 {
		l.Post(run)
		return func() { cancelled.Store(true) }
	}
	timer := time.AfterFunc(delay, func() {
		l.Post(run)
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Call runs fn on the loop and waits for its result. It must not be called
// from a loop task.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	if fn == nil {
		return nil
	}
	reply := make(chan error, 1)
	if err := l.enqueue(request(fn, reply)); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-reply:
		return err
	case <-l.closed:
		select {
		case err := <-reply:
			return err
		default:
			return ErrLoopClosed
		}
	}
}

func (l *Loop) CallWithTimeout(timeout time.Duration, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.Call(ctx, fn)
}

// Close stops the loop after the task currently running. Pending tasks are
// discarded. Close does not wait; use Closed for that.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.done = true
		l.mu.Unlock()
		close(l.close)
	})
}

func (l *Loop) Closed() <-chan struct{} {
	return l.closed
}

func (l *Loop) enqueue(t task) error {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.queue = append(l.queue, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

func (l *Loop) next() (task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done || len(l.queue) == 0 {
		return task{}, false
	}
	t := l.queue[0]
	l.queue[0] = task{}
	l.queue = l.queue[1:]
	return t, true
}

func (l *Loop) run() {
	defer close(l.closed)
	l.Debugf("loop %s started", l.name)

	for {
		for {
			t, ok := l.next()
			if !ok {
				break
			}
			if err := t.run(); err != nil && !t.replies() {
				l.Errorf("task failed: %v", err)
			}
		}
		select {
		case <-l.wake:
		case <-l.close:
			goto close
		}
	}
close:
	l.mu.Lock()
	l.queue = nil
	l.mu.Unlock()
	l.Debugf("loop %s stopped", l.name)
}
