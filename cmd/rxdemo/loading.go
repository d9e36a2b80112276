package main

import (
	"fmt"
	"time"

	"github.com/7vars/rxcore/rx"
)

func init() {
	registerScenario("loading", loading)
}

// loading shows a loading indicator around every submitted request. The
// indicator appears only after a grace period and stays for a minimum time;
// submits during a running request are ignored.
func loading(env *Env) rx.Observable[string] {
	form, done := newElement("form"), newElement("done")
	after := env.Duration("rxdemo.loading.after", 200*time.Millisecond)
	response := env.Duration("rxdemo.loading.response", time.Second)
	atLeast := env.Duration("rxdemo.loading.atleast", 500*time.Millisecond)
	timeout := env.Duration("rxdemo.loading.timeout", 3*time.Second)

	delayed := func(d time.Duration, v string) rx.Observable[string] {
		return rx.Delay[string](d, env.Sched)(rx.Of(v))
	}

	submits := 0
	request := func(string) rx.Observable[string] {
		submits++
		n := submits
		data := rx.Pipe2(
			delayed(response, fmt.Sprintf("data: request %d answered", n)),
			rx.Timeout[string](timeout, env.Sched),
			rx.CatchError(func(err error) rx.Observable[string] {
				return rx.Of(fmt.Sprintf("data: request %d failed: %v", n, err))
			}),
		)
		return rx.Concat(
			delayed(after, "loading..."),
			data,
			delayed(atLeast, "loading done"),
		)
	}

	lines := rx.ExhaustMap(request)(env.Events(form, "submit"))
	return env.play(
		rx.TakeUntil[string](env.Events(done, "click"))(lines),
		step{at: 0, do: func() { form.fire("submit", "") }},
		step{at: 300 * time.Millisecond, do: func() { form.fire("submit", "") }},
		step{at: 2500 * time.Millisecond, do: func() { form.fire("submit", "") }},
		done.clickAt(5*time.Second),
	)
}
