package rx_test

import (
	"testing"
	"time"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/7vars/rxcore/rx/rxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// after returns an Observable that emits v after d and completes.
func after(s *rxtest.Scheduler, d time.Duration, v int) rx.Observable[int] {
	return rxtest.Timed(s, rxtest.NextAt(d, v), rxtest.CompleteAt[int](d))
}

func TestSwitchMapTearsDownPreviousInner(t *testing.T) {
	outer := rxtest.NewProducer[string]()
	inners := map[string]*rxtest.Producer[string]{
		"a": rxtest.NewProducer[string](),
		"b": rxtest.NewProducer[string](),
	}
	rec := record(rx.SwitchMap(func(k string) rx.Observable[string] {
		return inners[k].Observable()
	})(outer.Observable()))

	outer.Next("a")
	inners["a"].Next("a1")
	outer.Next("b")
	assert.Equal(t, 0, inners["a"].Active())
	assert.Equal(t, 1, inners["a"].Unsubscribed())

	inners["a"].Next("a2")
	inners["b"].Next("b1")
	outer.Complete()
	assert.False(t, rec.Completed())

	inners["b"].Complete()
	assert.Equal(t, []string{"a1", "b1"}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestSwitchMapCompletesWithoutInner(t *testing.T) {
	rec := record(rx.SwitchMap(func(v int) rx.Observable[int] {
		return rx.Of(v, v)
	})(rx.Of(1, 2)))
	assert.Equal(t, []int{1, 1, 2, 2}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestSwitchMapOnVirtualTime(t *testing.T) {
	s := rxtest.NewScheduler()
	src := rxtest.Timed(s, rxtest.NextAt(0, 30), rxtest.NextAt(10*ms, 5), rxtest.CompleteAt[int](12*ms))
	rec, _ := rxtest.Subscribe(rx.SwitchMap(func(v int) rx.Observable[int] {
		return after(s, time.Duration(v)*ms, v)
	})(src), s)

	s.AdvanceBy(time.Second)
	assert.Equal(t, []int{5}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 15*ms, rec.Records()[1].At)
}

func TestExhaustMapIgnoresWhileActive(t *testing.T) {
	outer := rxtest.NewProducer[int]()
	var inners []*rxtest.Producer[int]
	rec := record(rx.ExhaustMap(func(v int) rx.Observable[int] {
		p := rxtest.NewProducer[int]()
		inners = append(inners, p)
		return rx.Map(func(x int) int { return v*10 + x })(p.Observable())
	})(outer.Observable()))

	outer.Next(1)
	outer.Next(2)
	require.Len(t, inners, 1)

	inners[0].Next(5)
	inners[0].Complete()
	outer.Next(3)
	require.Len(t, inners, 2)

	inners[1].Next(7)
	outer.Complete()
	assert.False(t, rec.Completed())
	inners[1].Complete()

	assert.Equal(t, []int{15, 37}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestMergeMapRunsConcurrently(t *testing.T) {
	s := rxtest.NewScheduler()
	rec, _ := rxtest.Subscribe(rx.MergeMap(func(v int) rx.Observable[int] {
		return after(s, time.Duration(4-v)*10*ms, v)
	})(rx.Of(1, 2, 3)), s)

	s.AdvanceBy(time.Second)
	assert.Equal(t, []int{3, 2, 1}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 30*ms, rec.Records()[3].At)
}

func TestConcatMapPreservesOrder(t *testing.T) {
	s := rxtest.NewScheduler()
	rec, _ := rxtest.Subscribe(rx.ConcatMap(func(v int) rx.Observable[int] {
		return after(s, time.Duration(4-v)*10*ms, v)
	})(rx.Of(1, 2, 3)), s)

	s.AdvanceBy(time.Second)
	assert.Equal(t, []rxtest.Record[int]{
		rxtest.NextAt(30*ms, 1),
		rxtest.NextAt(50*ms, 2),
		rxtest.NextAt(60*ms, 3),
		rxtest.CompleteAt[int](60*ms),
	}, rec.Records())
}

func TestMergeMapNBoundsConcurrency(t *testing.T) {
	s := rxtest.NewScheduler()
	active, peak := 0, 0
	rec, _ := rxtest.Subscribe(rx.MergeMapN(func(v int) rx.Observable[int] {
		return rx.Defer(func() rx.Observable[int] {
			active++
			if active > peak {
				peak = active
			}
			return rx.Tap(rx.ObserverFuncs[int]{OnComplete: func() { active-- }})(after(s, time.Duration(4-v)*10*ms, v))
		})
	}, 2)(rx.Of(1, 2, 3)), s)

	s.AdvanceBy(time.Second)
	assert.Equal(t, []int{2, 1, 3}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 2, peak)
}

func TestMergeMapInnerErrorTearsDownEverything(t *testing.T) {
	outer := rxtest.NewProducer[int]()
	var inners []*rxtest.Producer[int]
	rec := record(rx.MergeMap(func(int) rx.Observable[int] {
		p := rxtest.NewProducer[int]()
		inners = append(inners, p)
		return p.Observable()
	})(outer.Observable()))

	outer.Next(1)
	outer.Next(2)
	inners[0].Next(10)
	inners[1].Error(boom)

	assert.Equal(t, []int{10}, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)
	assert.Equal(t, 0, outer.Active())
	assert.Equal(t, 0, inners[0].Active())
	assert.Equal(t, 1, rec.Terminals())
}

func TestMergeMapUnsubscribeReleasesInners(t *testing.T) {
	s := rxtest.NewScheduler()
	_, sub := rxtest.Subscribe(rx.MergeMap(func(v int) rx.Observable[int] {
		return rx.Interval(s, time.Duration(v)*ms)
	})(rx.Of(1, 2, 3)), s)

	s.AdvanceBy(10 * ms)
	assert.Equal(t, 3, s.Pending())
	sub.Unsubscribe()
	assert.Equal(t, 0, s.Pending())
}

func TestMergeMapProjectionPanic(t *testing.T) {
	rec := record(rx.MergeMap(func(v int) rx.Observable[int] {
		if v == 2 {
			panic("kaput")
		}
		return rx.Of(v)
	})(rx.Of(1, 2, 3)))
	assert.Equal(t, []int{1}, rec.Values())
	assert.IsType(t, rxcore.RuntimeErr{}, rec.Err())

	rec = record(rx.SwitchMap(func(v int) rx.Observable[int] {
		panic("kaput")
	})(rx.Of(1)))
	assert.IsType(t, rxcore.RuntimeErr{}, rec.Err())
}

func TestMergeMapSynchronousInnersDoNotRecurse(t *testing.T) {
	rec := record(rx.ConcatMap(func(v int) rx.Observable[int] {
		return rx.Of(v)
	})(rx.Range(0, 100000)))
	assert.Len(t, rec.Values(), 100000)
	assert.True(t, rec.Completed())
}
