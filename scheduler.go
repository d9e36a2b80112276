package rxcore

import "time"

// Scheduler runs tasks one at a time on a single execution context.
//
// Post and Schedule may be called from any goroutine. The returned cancel
// function is idempotent; a cancelled task never runs.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, task func()) (cancel func())
	Post(task func())
}

func noop() {}
