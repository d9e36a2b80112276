package rxtest

import (
	"sync"
	"time"

	"github.com/7vars/rxcore/rx"
)

// Record is a notification stamped with the virtual time it arrived at.
type Record[T any] struct {
	rx.Notification[T]
	At time.Duration
}

// Recorder is an rx.Observer that records every notification. It is safe for
// concurrent use.
type Recorder[T any] struct {
	mu      sync.Mutex
	clock   *Scheduler
	records []Record[T]
}

var _ rx.Observer[int] = (*Recorder[int])(nil)

// NewRecorder stamps records with the elapsed time of clock; a nil clock
// stamps zero.
func NewRecorder[T any](clock *Scheduler) *Recorder[T] {
	return &Recorder[T]{clock: clock}
}

// Subscribe records src and returns the subscription.
func Subscribe[T any](src rx.Observable[T], clock *Scheduler) (*Recorder[T], rx.Subscription) {
	rec := NewRecorder[T](clock)
	return rec, src.Subscribe(rec)
}

func (r *Recorder[T]) Next(v T) {
	r.record(rx.NextOf(v))
}

func (r *Recorder[T]) Error(err error) {
	r.record(rx.ErrorOf[T](err))
}

func (r *Recorder[T]) Complete() {
	r.record(rx.CompleteOf[T]())
}

func (r *Recorder[T]) record(n rx.Notification[T]) {
	var at time.Duration
	if r.clock != nil {
		at = r.clock.Elapsed()
	}
	r.mu.Lock()
	r.records = append(r.records, Record[T]{Notification: n, At: at})
	r.mu.Unlock()
}

// Records returns a snapshot copy of everything recorded.
func (r *Recorder[T]) Records() []Record[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Record[T], len(r.records))
	copy(cp, r.records)
	return cp
}

func (r *Recorder[T]) Notifications() []rx.Notification[T] {
	records := r.Records()
	out := make([]rx.Notification[T], len(records))
	for i, rec := range records {
		out[i] = rec.Notification
	}
	return out
}

func (r *Recorder[T]) Values() []T {
	values := make([]T, 0)
	for _, rec := range r.Records() {
		if rec.Kind == rx.NextKind {
			values = append(values, rec.Value)
		}
	}
	return values
}

// Err returns the recorded error, if any.
func (r *Recorder[T]) Err() error {
	for _, rec := range r.Records() {
		if rec.IsError() {
			return rec.Err
		}
	}
	return nil
}

func (r *Recorder[T]) Completed() bool {
	for _, rec := range r.Records() {
		if rec.IsCompleted() {
			return true
		}
	}
	return false
}

// Terminals counts error and complete notifications; a well-behaved chain
// never records more than one.
func (r *Recorder[T]) Terminals() int {
	n := 0
	for _, rec := range r.Records() {
		if rec.IsTerminal() {
			n++
		}
	}
	return n
}

func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}

func (r *Recorder[T]) String() string {
	return Table(r.Records())
}
