package main

import (
	"sort"
	"sync"
	"time"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
)

// Scenario builds the output lines of one demo. It is called once per run,
// inside rx.Defer, so all simulated inputs are private to that run.
type Scenario func(env *Env) rx.Observable[string]

var (
	scenarioMu sync.RWMutex
	scenarios  = make(map[string]Scenario)
)

func registerScenario(name string, scenario Scenario) {
	scenarioMu.Lock()
	defer scenarioMu.Unlock()
	if scenario == nil {
		panic("rxdemo: scenario " + name + " is nil")
	}
	if _, exists := scenarios[name]; exists {
		panic("rxdemo: scenario " + name + " is already registered")
	}
	scenarios[name] = scenario
}

func lookupScenario(name string) (Scenario, bool) {
	scenarioMu.RLock()
	defer scenarioMu.RUnlock()
	s, ok := scenarios[name]
	return s, ok
}

func scenarioNames() []string {
	scenarioMu.RLock()
	defer scenarioMu.RUnlock()
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Env is what a scenario runs against. All durations a scenario uses pass
// through Scale, so Speed 2 plays the demo twice as fast.
type Env struct {
	rxcore.Logger
	Sched  rxcore.Scheduler
	Config rxcore.Config
	Speed  float64
}

func newEnv(sched rxcore.Scheduler, conf rxcore.Config, log rxcore.Logger) *Env {
	speed := conf.GetFloat64Default("rxdemo.speed", 1)
	if speed <= 0 {
		speed = 1
	}
	return &Env{
		Logger: log,
		Sched:  sched,
		Config: conf,
		Speed:  speed,
	}
}

func (e *Env) Scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / e.Speed)
}

// Duration reads key from the config and scales it.
func (e *Env) Duration(key string, def time.Duration) time.Duration {
	return e.Scale(e.Config.GetDurationDefault(key, def))
}

// Since is the scenario time passed since start, i.e. scaled back by Speed.
func (e *Env) Since(start time.Time) time.Duration {
	elapsed := time.Duration(float64(e.Sched.Now().Sub(start)) * e.Speed)
	return elapsed.Round(10 * time.Millisecond)
}

func (e *Env) Events(el *element, name string) rx.Observable[string] {
	return rx.FromEvent[string](e.Sched, el, name)
}

type step struct {
	at time.Duration
	do func()
}

// play subscribes src and then runs the scripted steps, each at its scenario
// time after subscription. Unsubscribing cancels the steps still pending.
func (e *Env) play(src rx.Observable[string], steps ...step) rx.Observable[string] {
	return rx.Create(func(s rx.Subscriber[string]) func() {
		s.Add(src.Subscribe(s).Unsubscribe)
		for _, st := range steps {
			s.Add(e.Sched.Schedule(e.Scale(st.at), st.do))
		}
		return nil
	})
}

// element stands in for a UI control: it dispatches named events to its
// listeners, the way a button dispatches clicks.
type element struct {
	name string

	mu       sync.Mutex
	seq      int
	handlers map[string]map[int]func(string)
}

var _ rx.EventTarget[string] = (*element)(nil)

func newElement(name string) *element {
	return &element{
		name:     name,
		handlers: make(map[string]map[int]func(string)),
	}
}

func (el *element) Listen(event string, handler func(string)) func() {
	el.mu.Lock()
	defer el.mu.Unlock()
	if el.handlers[event] == nil {
		el.handlers[event] = make(map[int]func(string))
	}
	id := el.seq
	el.seq++
	el.handlers[event][id] = handler
	return func() {
		el.mu.Lock()
		defer el.mu.Unlock()
		delete(el.handlers[event], id)
	}
}

func (el *element) fire(event, payload string) {
	el.mu.Lock()
	ids := make([]int, 0, len(el.handlers[event]))
	for id := range el.handlers[event] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(string), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, el.handlers[event][id])
	}
	el.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}

func (el *element) click() {
	el.fire("click", el.name)
}

// input sets the text of a field, like typing into it.
func (el *element) input(text string) {
	el.fire("input", text)
}

func (el *element) clickAt(at time.Duration) step {
	return step{at: at, do: el.click}
}

func (el *element) inputAt(at time.Duration, text string) step {
	return step{at: at, do: func() { el.input(text) }}
}
