package rxcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendOnlyTask(t *testing.T) {
	calls := 0
	tk := sendOnly(func() { calls++ })
	assert.False(t, tk.replies())
	assert.NoError(t, tk.run())
	assert.Equal(t, 1, calls)
}

func TestRequestTask(t *testing.T) {
	reply := make(chan error, 1)
	defer close(reply)
	boom := errors.New("boom")
	tk := request(func() error { return boom }, reply)
	assert.True(t, tk.replies())
	assert.ErrorIs(t, tk.run(), boom)
	assert.ErrorIs(t, <-reply, boom)
}

func TestTaskRecoversPanic(t *testing.T) {
	reply := make(chan error, 1)
	tk := request(func() error { panic("kaput") }, reply)
	err := tk.run()
	assert.IsType(t, RuntimeErr{}, err)
	assert.EqualError(t, err, "runtime-error: kaput")
	assert.Equal(t, err, <-reply)
}
