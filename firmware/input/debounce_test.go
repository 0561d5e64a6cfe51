package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebounceAcceptsAfterTimeout(t *testing.T) {
	d := NewDebounce(50000)

	assert.False(t, d.Update(true, 0), "change just seen")
	assert.False(t, d.Update(true, 40000), "before timeout")
	assert.True(t, d.Update(true, 60000), "after timeout")
	assert.True(t, d.Stable())
}

func TestDebounceExactTimeout(t *testing.T) {
	d := NewDebounce(1000)
	d.Update(true, 5000)
	assert.False(t, d.Update(true, 5999))
	assert.True(t, d.Update(true, 6000))
}

func TestDebounceBounceRestartsTimer(t *testing.T) {
	d := NewDebounce(1000)

	assert.False(t, d.Update(true, 100))
	assert.False(t, d.Update(false, 900), "bounced back to stable")
	assert.False(t, d.Update(true, 1200), "timer restarted at 1200")
	assert.False(t, d.Update(true, 2100))
	assert.True(t, d.Update(true, 2200))
}

func TestDebounceFallingEdge(t *testing.T) {
	d := NewDebounce(1000)
	d.Update(true, 0)
	d.Update(true, 1000)
	assert.True(t, d.Stable())

	assert.True(t, d.Update(false, 2000))
	assert.True(t, d.Update(false, 2500))
	assert.False(t, d.Update(false, 3000))
}

func TestDebounceNilPassesThrough(t *testing.T) {
	var d *Debounce
	assert.True(t, d.Update(true, 0))
	assert.False(t, d.Update(false, 0))
	assert.False(t, d.Stable())
}
