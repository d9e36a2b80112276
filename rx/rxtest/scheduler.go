// Package rxtest provides a virtual clock and recording observers for
// testing rx chains deterministically.
package rxtest

import (
	"sort"
	"sync"
	"time"

	"github.com/7vars/rxcore"
)

// Epoch is the virtual time a new Scheduler starts at.
var Epoch = time.Unix(0, 0).UTC()

// Scheduler is an rxcore.Scheduler driven by virtual time. Tasks only run
// inside AdvanceBy, AdvanceTo and Flush, on the calling goroutine.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*task
}

type task struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

var _ rxcore.Scheduler = (*Scheduler)(nil)

func NewScheduler() *Scheduler {
	return &Scheduler{now: Epoch}
}

func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Elapsed is the virtual time passed since Epoch.
func (s *Scheduler) Elapsed() time.Duration {
	return s.Now().Sub(Epoch)
}

func (s *Scheduler) Post(fn func()) {
	s.Schedule(0, fn)
}

func (s *Scheduler) Schedule(delay time.Duration, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	t := &task{at: s.now.Add(delay), seq: s.seq, fn: fn}
	s.seq++
	i := sort.Search(len(s.tasks), func(i int) bool {
		o := s.tasks[i]
		return o.at.After(t.at) || (o.at.Equal(t.at) && o.seq > t.seq)
	})
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// Pending counts the tasks that have not run and were not cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs every task due at the current virtual time, including tasks
// those tasks post.
func (s *Scheduler) Flush() {
	s.AdvanceTo(s.Now())
}

func (s *Scheduler) AdvanceBy(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// AdvanceTo runs due tasks in time order, moving the clock to each task's
// time before running it, and finally sets the clock to until.
func (s *Scheduler) AdvanceTo(until time.Time) {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].at.After(until) {
			if until.After(s.now) {
				s.now = until
			}
			s.mu.Unlock()
			return
		}
		t := s.tasks[0]
		s.tasks[0] = nil
		s.tasks = s.tasks[1:]
		if t.at.After(s.now) {
			s.now = t.at
		}
		cancelled := t.cancelled
		s.mu.Unlock()

		if !cancelled {
			t.fn()
		}
	}
}
