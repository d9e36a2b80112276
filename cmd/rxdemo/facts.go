package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/7vars/rxcore/rx"
	"github.com/oklog/ulid/v2"
)

func init() {
	registerScenario("facts", facts)
}

var errUnavailable = errors.New("facts service unavailable")

var dogFacts = []string{
	"Dogs have about 1,700 taste buds.",
	"A Greyhound can reach 45 miles per hour.",
	"Dogs' noses are wet to help absorb scent chemicals.",
	"The Basenji does not bark, it yodels.",
}

// factServer answers requests in order from a pattern of "ok" and "fail"
// outcomes; requests past the end of the pattern succeed.
type factServer struct {
	env      *Env
	outcomes []string
	requests int
	served   int
	entropy  *ulid.MonotonicEntropy
}

func newFactServer(env *Env) *factServer {
	pattern := env.Config.GetStringDefault("rxdemo.facts.pattern", "ok,fail,ok,fail,fail,fail,fail")
	seed := int64(env.Config.GetIntDefault("rxdemo.facts.seed", 1))
	return &factServer{
		env:      env,
		outcomes: strings.Split(pattern, ","),
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// fetch is cold: every subscription is a new request.
func (srv *factServer) fetch(latency time.Duration) rx.Observable[string] {
	return rx.Defer(func() rx.Observable[string] {
		srv.requests++
		outcome := "ok"
		if srv.requests <= len(srv.outcomes) {
			outcome = strings.TrimSpace(srv.outcomes[srv.requests-1])
		}
		srv.env.Debugf("request %d: %s", srv.requests, outcome)

		var line string
		if outcome != "fail" {
			id := ulid.MustNew(ulid.Timestamp(srv.env.Sched.Now()), srv.entropy)
			line = fmt.Sprintf("fact %s: %s", id, dogFacts[srv.served%len(dogFacts)])
			srv.served++
		}
		return rx.TryMap(func(int) (string, error) {
			if outcome == "fail" {
				return "", errUnavailable
			}
			return line, nil
		})(rx.Timer(srv.env.Sched, latency))
	})
}

// facts fetches a fact per click on fetch. Clicks during a fetch are ignored;
// a failing fetch is retried and finally replaced by an error line.
func facts(env *Env) rx.Observable[string] {
	fetch, stop := newElement("fetch"), newElement("stop")
	srv := newFactServer(env)
	latency := env.Duration("rxdemo.facts.latency", 400*time.Millisecond)
	retries := env.Config.GetIntDefault("rxdemo.facts.retries", 3)

	request := func(string) rx.Observable[string] {
		return rx.Pipe3(
			srv.fetch(latency),
			rx.Tap(rx.ObserverFuncs[string]{
				OnError: func(err error) { env.Debugf("fetch failed: %v", err) },
			}),
			rx.Retry[string](retries),
			rx.CatchError(func(err error) rx.Observable[string] {
				return rx.Of(fmt.Sprintf("error: %v (after %d attempts)", err, retries+1))
			}),
		)
	}

	lines := rx.ExhaustMap(request)(env.Events(fetch, "click"))
	return env.play(
		rx.TakeUntil[string](env.Events(stop, "click"))(lines),
		fetch.clickAt(0),
		fetch.clickAt(200*time.Millisecond),
		fetch.clickAt(time.Second),
		fetch.clickAt(2500*time.Millisecond),
		stop.clickAt(5*time.Second),
	)
}
