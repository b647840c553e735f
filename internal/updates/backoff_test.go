package updates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffController_GrowsAndCaps(t *testing.T) {
	c := newBackoffController(time.Second, 64)
	now := testEpoch

	var delays []time.Duration
	for range 9 {
		delays = append(delays, c.OnFailure(GlobalScope, now, 0))
	}

	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		32 * time.Second,
		64 * time.Second,
		64 * time.Second,
		64 * time.Second,
	}, delays)
	assert.Equal(t, 9, c.State(GlobalScope).Failures)
	assert.Equal(t, now, c.State(GlobalScope).LastFailureAt)
}

func TestBackoffController_ResetOnSuccess(t *testing.T) {
	c := newBackoffController(time.Second, 64)

	first := c.OnFailure(GlobalScope, testEpoch, 0)
	second := c.OnFailure(GlobalScope, testEpoch, 0)
	third := c.OnFailure(GlobalScope, testEpoch, 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	c.OnSuccess(GlobalScope)
	assert.Equal(t, time.Second, c.State(GlobalScope).CurrentDelay)
	assert.Equal(t, 0, c.State(GlobalScope).Failures)
	assert.Equal(t, time.Second, c.OnFailure(GlobalScope, testEpoch, 0))
}

func TestBackoffController_HintWins(t *testing.T) {
	c := newBackoffController(time.Second, 64)

	assert.Equal(t, 30*time.Second, c.OnFailure(GlobalScope, testEpoch, 30*time.Second))
	// подсказка меньше текущей задержки игнорируется
	assert.Equal(t, 2*time.Second, c.OnFailure(GlobalScope, testEpoch, 500*time.Millisecond))
}

func TestBackoffController_ScopesAreIndependent(t *testing.T) {
	c := newBackoffController(time.Second, 64)

	c.OnFailure(ChannelScope(100), testEpoch, 0)
	c.OnFailure(ChannelScope(100), testEpoch, 0)

	assert.Equal(t, time.Second, c.OnFailure(ChannelScope(200), testEpoch, 0))
	assert.Equal(t, time.Second, c.OnFailure(GlobalScope, testEpoch, 0))
	assert.Equal(t, 4*time.Second, c.State(ChannelScope(100)).CurrentDelay)
}
