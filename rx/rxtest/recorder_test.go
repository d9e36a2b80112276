package rxtest

import (
	"errors"
	"testing"
	"time"

	"github.com/7vars/rxcore/rx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	s := NewScheduler()
	rec, sub := Subscribe(rx.Interval(s, 10*time.Millisecond).Pipe(rx.Take[int](3)), s)
	defer sub.Unsubscribe()

	s.AdvanceBy(time.Second)

	assert.Equal(t, []int{0, 1, 2}, rec.Values())
	assert.True(t, rec.Completed())
	assert.NoError(t, rec.Err())
	assert.Equal(t, 1, rec.Terminals())

	records := rec.Records()
	require.Len(t, records, 4)
	assert.Equal(t, 10*time.Millisecond, records[0].At)
	assert.Equal(t, 30*time.Millisecond, records[3].At)
	assert.Equal(t, "----------0---------1---------(2|)", Marbles(records, time.Millisecond))
	assert.Equal(t, "-01(2|)", Marbles(records, 10*time.Millisecond))
}

func TestRecorderError(t *testing.T) {
	boom := errors.New("boom")
	rec := NewRecorder[string](nil)
	rx.Concat(rx.Of("x"), rx.Throw[string](boom)).Subscribe(rec)

	assert.Equal(t, []string{"x"}, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)
	assert.False(t, rec.Completed())
	assert.Equal(t, []rx.Notification[string]{rx.NextOf("x"), rx.ErrorOf[string](boom)}, rec.Notifications())
	assert.Equal(t, "(x#)", Marbles(rec.Records(), time.Millisecond))

	rec.Reset()
	assert.Empty(t, rec.Records())
}

func TestMarblesGroupsFrames(t *testing.T) {
	records := []Record[string]{
		{Notification: rx.NextOf("a"), At: 2 * time.Millisecond},
		{Notification: rx.NextOf("b"), At: 5 * time.Millisecond},
		{Notification: rx.NextOf("c"), At: 5 * time.Millisecond},
		{Notification: rx.CompleteOf[string](), At: 5 * time.Millisecond},
	}
	assert.Equal(t, "--a--(bc|)", Marbles(records, time.Millisecond))
	assert.Equal(t, "", Marbles[int](nil, time.Millisecond))
}

func TestTableAlignsWideRunes(t *testing.T) {
	records := []Record[string]{
		{Notification: rx.NextOf("日本"), At: 0},
		{Notification: rx.CompleteOf[string](), At: 1500 * time.Millisecond},
	}
	assert.Equal(t, "0s    next      日本\n1.5s  complete\n", Table(records))
}
