package term

import (
	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/gdamore/tcell/v2"
)

// Events emits the events t dispatches under name on sched.
func Events(sched rxcore.Scheduler, t *Target, name string) rx.Observable[tcell.Event] {
	return rx.FromEvent[tcell.Event](sched, t, name)
}

func Keys(sched rxcore.Scheduler, t *Target) rx.Observable[*tcell.EventKey] {
	return rx.Map(func(ev tcell.Event) *tcell.EventKey {
		return ev.(*tcell.EventKey)
	})(Events(sched, t, Key))
}

// Runes emits the runes of typed characters and drops special keys.
func Runes(sched rxcore.Scheduler, t *Target) rx.Observable[rune] {
	return rx.Pipe2(
		Keys(sched, t),
		rx.Filter(func(ev *tcell.EventKey) bool {
			return ev.Key() == tcell.KeyRune
		}),
		rx.Map(func(ev *tcell.EventKey) rune {
			return ev.Rune()
		}),
	)
}

type Size struct {
	Width  int
	Height int
}

func Resizes(sched rxcore.Scheduler, t *Target) rx.Observable[Size] {
	return rx.Map(func(ev tcell.Event) Size {
		w, h := ev.(*tcell.EventResize).Size()
		return Size{Width: w, Height: h}
	})(Events(sched, t, Resize))
}
