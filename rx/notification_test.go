package rx_test

import (
	"testing"

	"github.com/7vars/rxcore/rx"
	"github.com/7vars/rxcore/rx/rxtest"
	"github.com/stretchr/testify/assert"
)

func TestMaterialize(t *testing.T) {
	rec := record(rx.Materialize[int]()(rx.Concat(rx.Of(1), rx.Throw[int](boom))))
	assert.Equal(t, []rx.Notification[int]{rx.NextOf(1), rx.ErrorOf[int](boom)}, rec.Values())
	assert.True(t, rec.Completed())

	rec = record(rx.Materialize[int]()(rx.Of(2)))
	assert.Equal(t, []rx.Notification[int]{rx.NextOf(2), rx.CompleteOf[int]()}, rec.Values())
}

func TestNotificationAccept(t *testing.T) {
	rec := rxtest.NewRecorder[string](nil)
	for _, n := range []rx.Notification[string]{rx.NextOf("a"), rx.CompleteOf[string]()} {
		n.Accept(rec)
	}
	assert.Equal(t, []string{"a"}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestNotificationString(t *testing.T) {
	assert.Equal(t, "next(1)", rx.NextOf(1).String())
	assert.Equal(t, "error(boom)", rx.ErrorOf[int](boom).String())
	assert.Equal(t, "complete", rx.CompleteOf[int]().String())
	assert.Equal(t, "kind(7)", rx.Kind(7).String())

	assert.True(t, rx.ErrorOf[int](boom).IsTerminal())
	assert.False(t, rx.NextOf(1).IsTerminal())
}
