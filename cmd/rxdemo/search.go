package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/7vars/rxcore/rx"
	"github.com/mattn/go-runewidth"
)

func init() {
	registerScenario("search", search)
}

var pokedex = []string{
	"Bulbasaur", "Ivysaur", "Venusaur",
	"Charmander", "Charmeleon", "Charizard",
	"Squirtle", "Wartortle", "Blastoise",
	"Pikachu", "Raichu",
}

func lookup(query string) []string {
	found := make([]string, 0)
	for _, name := range pokedex {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(query)) {
			found = append(found, name)
		}
	}
	return found
}

// search is a typeahead: keystrokes are debounced, repeated queries dropped,
// and a newer query cancels the lookup still in flight.
func search(env *Env) rx.Observable[string] {
	field, done := newElement("query"), newElement("done")
	quiet := env.Duration("rxdemo.search.debounce", 500*time.Millisecond)
	latency := env.Duration("rxdemo.search.latency", 800*time.Millisecond)
	width := env.Config.GetIntDefault("rxdemo.width", 48)

	query := func(q string) rx.Observable[string] {
		results := rx.Pipe2(
			rx.Defer(func() rx.Observable[[]string] {
				env.Debugf("lookup %q", q)
				return rx.Of(lookup(q))
			}),
			rx.Delay[[]string](latency, env.Sched),
			rx.Map(func(names []string) string {
				if len(names) == 0 {
					return q + ": no match"
				}
				return q + ": " + strings.Join(names, ", ")
			}),
		)
		return rx.Concat(rx.Of(fmt.Sprintf("searching %s...", q)), results)
	}

	lines := rx.Pipe4(
		env.Events(field, "input"),
		rx.DebounceTime[string](quiet, env.Sched),
		rx.DistinctUntilChanged[string](),
		rx.SwitchMap(query),
		rx.Map(func(line string) string {
			return runewidth.Truncate(line, width, "...")
		}),
	)

	return env.play(
		rx.TakeUntil[string](env.Events(done, "click"))(lines),
		field.inputAt(0, "b"),
		field.inputAt(100*time.Millisecond, "bu"),
		field.inputAt(200*time.Millisecond, "bul"),
		field.inputAt(1500*time.Millisecond, "bu"),
		field.inputAt(1600*time.Millisecond, "bul"),
		field.inputAt(2500*time.Millisecond, "ch"),
		field.inputAt(2600*time.Millisecond, "cha"),
		field.inputAt(3200*time.Millisecond, "char"),
		field.inputAt(5*time.Second, "zz"),
		done.clickAt(7*time.Second),
	)
}
