package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/7vars/rxcore/rx"
)

func init() {
	registerScenario("timelines", timelines)
}

// timelines plays the same two interval timelines through merge, concat,
// forkJoin and race, one after another.
func timelines(env *Env) rx.Observable[string] {
	period := env.Duration("rxdemo.timelines.period", 500*time.Millisecond)
	count := env.Config.GetIntDefault("rxdemo.timelines.count", 4)

	timeline := func(label string) rx.Observable[string] {
		return rx.Pipe2(
			rx.Interval(env.Sched, period),
			rx.Map(func(n int) string { return fmt.Sprintf("%s %d", label, n) }),
			rx.Take[string](count),
		)
	}
	first, second := timeline("First"), timeline("Second")

	prefix := func(name string) rx.Operator[string, string] {
		return rx.Map(func(v string) string { return fmt.Sprintf("%-8s %s", name, v) })
	}

	return rx.Concat(
		prefix("merge")(rx.Merge(first, second)),
		prefix("concat")(rx.Concat(first, second)),
		prefix("forkJoin")(rx.Map(func(last []string) string {
			return strings.Join(last, " / ")
		})(rx.ForkJoin(first, second))),
		prefix("race")(rx.Race(first, second)),
	)
}
