package main

import (
	"fmt"
	"time"

	"github.com/7vars/rxcore/rx"
)

func init() {
	registerScenario("counter", counter)
}

// counter counts seconds while running. start and pause switch between a
// ticking interval and a silent one; stop ends the demo.
func counter(env *Env) rx.Observable[string] {
	start, pause, stop := newElement("start"), newElement("pause"), newElement("stop")
	tick := env.Duration("rxdemo.counter.tick", time.Second)

	running := rx.Merge(
		rx.MapTo[string](true)(env.Events(start, "click")),
		rx.MapTo[string](false)(env.Events(pause, "click")),
	)
	count := rx.Pipe4(
		running,
		rx.DistinctUntilChanged[bool](),
		rx.SwitchMap(func(on bool) rx.Observable[int] {
			if on {
				return rx.Interval(env.Sched, tick)
			}
			return rx.Never[int]()
		}),
		rx.Scan(func(n, _ int) int { return n + 1 }, 0),
		rx.Map(func(n int) string { return fmt.Sprintf("count %d", n) }),
	)

	return env.play(
		rx.TakeUntil[string](env.Events(stop, "click"))(count),
		start.clickAt(500*time.Millisecond),
		start.clickAt(1200*time.Millisecond),
		pause.clickAt(3700*time.Millisecond),
		start.clickAt(5*time.Second),
		stop.clickAt(7200*time.Millisecond),
	)
}
