package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_TickFirstCallIsZero(t *testing.T) {
	c := NewManual(1000)

	assert.Equal(t, int64(0), c.Tick(), "first tick has no previous interval")

	c.Advance(16)
	assert.Equal(t, int64(16), c.Tick())

	c.Advance(20)
	c.Advance(5)
	assert.Equal(t, int64(25), c.Tick())
	assert.Equal(t, int64(0), c.Tick(), "no time passed")
}

func TestManual_Monotonic(t *testing.T) {
	c := NewManual(500)

	c.Set(400)
	assert.Equal(t, int64(500), c.Now(), "Set must not move backwards")

	c.Advance(-10)
	assert.Equal(t, int64(500), c.Now(), "negative advance ignored")

	c.Set(750)
	assert.Equal(t, int64(750), c.Now())
}

func TestSystem_NowAndTick(t *testing.T) {
	c := NewSystem()

	assert.Equal(t, int64(0), c.Tick())

	time.Sleep(5 * time.Millisecond)
	d := c.Tick()
	assert.GreaterOrEqual(t, d, int64(5))
	assert.GreaterOrEqual(t, c.Now(), d)
}

func TestClockInterface(t *testing.T) {
	var _ Clock = NewSystem()
	var _ Clock = NewManual(0)
}
