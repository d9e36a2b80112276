package main

import (
	"strings"
	"time"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/7vars/rxcore/term"
	"github.com/gdamore/tcell/v2"
)

func init() {
	registerScenario("keys", keys)
}

type keyStroke struct {
	key tcell.Key
	r   rune
}

func typed(text string) []keyStroke {
	strokes := make([]keyStroke, 0, len(text))
	for _, r := range text {
		strokes = append(strokes, keyStroke{key: tcell.KeyRune, r: r})
	}
	return strokes
}

// keys edits a line from terminal key events until Enter and draws it on the
// screen. Without rxdemo.keys.tty it runs on a simulated screen with scripted
// key strokes.
func keys(env *Env) rx.Observable[string] {
	tty := env.Config.GetBoolDefault("rxdemo.keys.tty", false)
	gap := env.Config.GetDurationDefault("rxdemo.keys.gap", 150*time.Millisecond)

	return rx.Create(func(s rx.Subscriber[string]) func() {
		var (
			screen tcell.Screen
			sim    tcell.SimulationScreen
			err    error
		)
		if tty {
			screen, err = tcell.NewScreen()
		} else {
			sim = tcell.NewSimulationScreen("")
			screen = sim
		}
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			s.Error(err)
			return nil
		}

		target := term.NewTarget(screen, rxcore.WithLogger(env.Logger))
		s.Add(func() {
			screen.Fini()
			target.Wait()
		})

		line := rx.Pipe4(
			term.Keys(env.Sched, target),
			rx.TakeWhile(func(ev *tcell.EventKey) bool {
				return ev.Key() != tcell.KeyEnter && ev.Key() != tcell.KeyEscape
			}),
			rx.Scan(edit, ""),
			rx.Tap(rx.ObserverFuncs[string]{
				OnNext: func(text string) {
					term.DrawText(screen, 0, 0, "> "+text, tcell.StyleDefault)
					screen.Show()
				},
			}),
			rx.Map(func(text string) string { return "typed: " + text }),
		)
		screenRow := rx.Defer(func() rx.Observable[string] {
			return rx.Of("screen: " + strings.TrimRight(readRow(screen, 0), " "))
		})
		s.Add(rx.Concat(line, screenRow).Subscribe(s).Unsubscribe)

		if sim != nil {
			script := append(typed("hi!"), keyStroke{key: tcell.KeyBackspace2})
			script = append(script, typed(" rx")...)
			script = append(script, keyStroke{key: tcell.KeyEnter})
			for i, k := range script {
				k := k
				s.Add(env.Sched.Schedule(env.Scale(time.Duration(i+1)*gap), func() {
					sim.InjectKey(k.key, k.r, tcell.ModNone)
				}))
			}
		}
		return nil
	})
}

func edit(text string, ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(text); len(r) > 0 {
			return string(r[:len(r)-1])
		}
		return text
	case tcell.KeyRune:
		return text + string(ev.Rune())
	}
	return text
}

func readRow(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; {
		r, _, _, w := screen.GetContent(x, y)
		if w < 1 {
			w = 1
		}
		b.WriteRune(r)
		x += w
	}
	return b.String()
}
