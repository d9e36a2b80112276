package rx_test

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/7vars/rxcore"
	"github.com/7vars/rxcore/rx"
	"github.com/7vars/rxcore/rx/rxtest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var boom = errors.New("boom")

func record[T any](src rx.Observable[T]) *rxtest.Recorder[T] {
	rec, _ := rxtest.Subscribe(src, nil)
	return rec
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	rxcore.SetLogger(rxcore.LoggerFrom(l))
	t.Cleanup(func() { rxcore.SetLogger(nil) })
	return &buf
}

func TestColdSubscriptionsAreIndependent(t *testing.T) {
	calls := 0
	src := rx.Create(func(s rx.Subscriber[int]) func() {
		calls++
		s.Next(calls)
		s.Complete()
		return nil
	})

	first := record(src)
	second := record(src)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{1}, first.Values())
	assert.Equal(t, []int{2}, second.Values())
}

func TestZeroObservableCompletes(t *testing.T) {
	var src rx.Observable[string]
	rec := record(src)
	assert.True(t, rec.Completed())
	assert.Empty(t, rec.Values())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	p := rxtest.NewProducer[int]()
	rec := rxtest.NewRecorder[int](nil)
	sub := p.Observable().Subscribe(rec)
	require.Equal(t, 1, p.Active())

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.True(t, sub.Closed())
	assert.Equal(t, 1, p.Unsubscribed())
	p.Next(1)
	p.Complete()
	assert.Empty(t, rec.Records())
}

func TestNoDeliveryAfterUnsubscribe(t *testing.T) {
	var late rx.Subscriber[int]
	rec := rxtest.NewRecorder[int](nil)
	sub := rx.Create(func(s rx.Subscriber[int]) func() {
		late = s
		return nil
	}).Subscribe(rec)
	sub.Unsubscribe()

	late.Next(1)
	late.Error(boom)
	late.Complete()
	assert.Empty(t, rec.Records())
}

func TestAtMostOneTerminal(t *testing.T) {
	rec := record(rx.Create(func(s rx.Subscriber[int]) func() {
		s.Next(1)
		s.Complete()
		s.Next(2)
		s.Error(boom)
		s.Complete()
		return nil
	}))
	assert.Equal(t, []int{1}, rec.Values())
	assert.Equal(t, 1, rec.Terminals())
	assert.True(t, rec.Completed())
}

func TestSubscribePanicBecomesError(t *testing.T) {
	rec := record(rx.Create(func(s rx.Subscriber[int]) func() {
		s.Next(1)
		panic("kaput")
	}))
	assert.Equal(t, []int{1}, rec.Values())
	var rerr rxcore.RuntimeErr
	require.ErrorAs(t, rec.Err(), &rerr)
	assert.Equal(t, "runtime-error: kaput", rerr.Error())
}

func TestTeardownRunsOnTerminal(t *testing.T) {
	torn := 0
	src := rx.Create(func(s rx.Subscriber[int]) func() {
		s.Add(func() { torn++ })
		s.Complete()
		return func() { torn++ }
	})
	sub := src.Subscribe(rxtest.NewRecorder[int](nil))
	assert.Equal(t, 2, torn)
	sub.Unsubscribe()
	assert.Equal(t, 2, torn)
}

func TestPanickingNextBecomesError(t *testing.T) {
	released := false
	var (
		got []int
		err error
	)
	src := rx.Create(func(s rx.Subscriber[int]) func() {
		s.Add(func() { released = true })
		for i := 1; i <= 3; i++ {
			s.Next(i)
		}
		s.Complete()
		return nil
	})
	sub := src.Subscribe(rx.ObserverFuncs[int]{
		OnNext: func(v int) {
			if v == 2 {
				panic("kaput")
			}
			got = append(got, v)
		},
		OnError: func(e error) { err = e },
	})

	assert.Equal(t, []int{1}, got)
	assert.IsType(t, rxcore.RuntimeErr{}, err)
	assert.True(t, released)
	assert.True(t, sub.Closed())
}

func TestPanickingErrorCallbackStillTearsDown(t *testing.T) {
	released := false
	src := rx.Create(func(s rx.Subscriber[int]) func() {
		s.Add(func() { released = true })
		s.Error(boom)
		return nil
	})
	sub := src.Subscribe(rx.ObserverFuncs[int]{
		OnError: func(error) { panic("kaput") },
	})
	assert.True(t, released)
	assert.True(t, sub.Closed())
}

func TestPanickingCompleteCallbackStopsTimers(t *testing.T) {
	s := rxtest.NewScheduler()
	sub := rx.Take[int](1)(rx.Interval(s, 10*ms)).Subscribe(rx.ObserverFuncs[int]{
		OnComplete: func() { panic("kaput") },
	})
	require.Equal(t, 1, s.Pending())

	assert.Panics(t, func() { s.AdvanceBy(10 * ms) })
	assert.True(t, sub.Closed())
	assert.Equal(t, 0, s.Pending())
}

func TestSubscribeFunc(t *testing.T) {
	var got []int
	done := false
	rx.Of(1, 2).SubscribeFunc(func(v int) { got = append(got, v) }, nil, func() { done = true })
	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, done)
}

func TestUnhandledErrorIsLogged(t *testing.T) {
	buf := captureLog(t)
	rx.Throw[int](boom).SubscribeFunc(nil, nil, nil)
	assert.Contains(t, buf.String(), "rx: unhandled error: boom")
}

func TestTracing(t *testing.T) {
	buf := captureLog(t)
	rxcore.SetTracing(true)
	defer rxcore.SetTracing(false)

	rx.Of(1).Subscribe(rxtest.NewRecorder[int](nil))
	assert.Contains(t, buf.String(), "subscription=")
	assert.Contains(t, buf.String(), "unsubscribe")
}

func TestTeardownPanicIsLogged(t *testing.T) {
	buf := captureLog(t)
	sub := rx.NewSubscription(func() { panic("kaput") })
	ran := false
	sub.Add(func() { ran = true })
	sub.Unsubscribe()
	assert.True(t, ran)
	assert.Contains(t, buf.String(), "rx: teardown failed: runtime-error: kaput")

	late := false
	sub.Add(func() { late = true })
	assert.True(t, late)
}

func TestPipe(t *testing.T) {
	even := rx.Filter(func(v int) bool { return v%2 == 0 })
	double := rx.Map(func(v int) int { return v * 2 })
	rec := record(rx.Range(1, 6).Pipe(even, nil, double))
	assert.Equal(t, []int{4, 8, 12}, rec.Values())

	text := record(rx.Pipe2(rx.Of(1, 2), double, rx.Map(strconv.Itoa)))
	assert.Equal(t, []string{"2", "4"}, text.Values())

	sum := record(rx.Pipe3(rx.Of(1, 2, 3), double, rx.Scan(func(acc, v int) int { return acc + v }, 0), rx.Map(strconv.Itoa)))
	assert.Equal(t, []string{"2", "6", "12"}, sum.Values())

	last := record(rx.Pipe4(rx.Of(1, 2, 3), double, even, rx.Reduce(func(acc, v int) int { return acc + v }, 0), rx.Map(strconv.Itoa)))
	assert.Equal(t, []string{"12"}, last.Values())
}
