package gametime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_DefaultsTickInterval(t *testing.T) {
	c := NewClock(0)
	assert.Equal(t, DefaultTickInterval, c.TickInterval())
}

func TestClock_AdvanceAndSeconds(t *testing.T) {
	c := NewClock(1.0 / 30.0)

	c.Advance(64)
	assert.EqualValues(t, 64, c.Tick())
	assert.InDelta(t, 64*float64(float32(1.0/30.0)), c.Seconds(), 1e-9)

	c.Advance(90)
	assert.InDelta(t, 90*float64(float32(1.0/30.0)), c.Seconds(), 1e-9)
}

func TestClock_Reset(t *testing.T) {
	c := NewClock(DefaultTickInterval)
	c.Advance(500)
	c.Reset()
	assert.EqualValues(t, 0, c.Tick())
	assert.Equal(t, 0.0, c.Seconds())
}
