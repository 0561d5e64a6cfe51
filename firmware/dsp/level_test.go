package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMS(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, RMS(nil))
	})

	t.Run("constant offset reads as level", func(t *testing.T) {
		buf := make([]int16, N)
		for i := range buf {
			buf[i] = 1000
		}
		assert.Equal(t, uint32(1000), RMS(buf))
	})

	t.Run("square wave", func(t *testing.T) {
		buf := make([]int16, N)
		for i := range buf {
			if i%2 == 0 {
				buf[i] = 100
			} else {
				buf[i] = -100
			}
		}
		assert.Equal(t, uint32(100), RMS(buf))
	})

	t.Run("asymmetric pulse train", func(t *testing.T) {
		buf := make([]int16, N)
		for i := 0; i < len(buf); i += 8 {
			buf[i] = 8000
		}
		assert.Equal(t, uint32(2828), RMS(buf))
	})

	t.Run("full scale sine", func(t *testing.T) {
		buf := make([]int16, N)
		for i := range buf {
			buf[i] = int16(20000 * math.Sin(2*math.Pi*4*float64(i)/N))
		}
		got := RMS(buf)
		assert.InDelta(t, 20000/math.Sqrt2, float64(got), 3)
	})
}

func TestUsqrt(t *testing.T) {
	for _, x := range []uint64{0, 1, 2, 3, 4, 15, 16, 17, 99, 100, 1 << 32, 4294836225} {
		r := uint64(usqrt(x))
		assert.LessOrEqual(t, r*r, x, "x=%d", x)
		assert.Greater(t, (r+1)*(r+1), x, "x=%d", x)
	}
}

func TestLowPassConvergesToConstantInput(t *testing.T) {
	for _, weight := range []uint32{1, 3, 9} {
		f := NewLowPass(weight)
		for i := 0; i < 200; i++ {
			f.Update(7000)
		}
		assert.Equal(t, uint32(7000), f.Output(), "weight=%d", weight)

		for i := 0; i < 200; i++ {
			f.Update(5)
		}
		assert.Equal(t, uint32(5), f.Output(), "weight=%d", weight)
	}
}

func TestLowPassNeverOvershoots(t *testing.T) {
	f := NewLowPass(3)
	inputs := []uint32{1000, 1000, 20, 9000, 9001, 0, 1, 16384}
	for _, in := range inputs {
		before := f.Output()
		after := f.Update(in)
		if in >= before {
			require.GreaterOrEqual(t, after, before)
			require.LessOrEqual(t, after, in)
		} else {
			require.LessOrEqual(t, after, before)
			require.GreaterOrEqual(t, after, in)
		}
	}
}

func TestLowPassStep(t *testing.T) {
	f := NewLowPass(1)
	// weight/(weight+1) = 1/2
	assert.Equal(t, uint32(500), f.Update(1000))
	assert.Equal(t, uint32(750), f.Update(1000))

	f = NewLowPass(3)
	// 3/4
	assert.Equal(t, uint32(750), f.Update(1000))
	assert.Equal(t, uint32(3), f.Weight())
}

func TestLowPassZeroWeightHolds(t *testing.T) {
	f := NewLowPass(0)
	assert.Zero(t, f.Update(1000))
}

func TestLevelMeterUpdatesOneChannel(t *testing.T) {
	m := NewLevelMeter(DefaultWeight, DefaultWeight)
	buf := make([]int16, N)
	for i := range buf {
		if i%2 == 0 {
			buf[i] = 400
		} else {
			buf[i] = -400
		}
	}

	m.Update(Left, buf)
	lv := m.Levels()
	assert.Equal(t, uint32(200), lv.Left)
	assert.Zero(t, lv.Right)
	assert.Equal(t, uint32(400), m.Raw(Left))

	m.Update(Right, buf)
	lv = m.Levels()
	assert.Equal(t, uint32(200), lv.Left)
	assert.Equal(t, uint32(200), lv.Right)
}

func TestLevelMeterNil(t *testing.T) {
	var m *LevelMeter
	m.Update(Left, []int16{1, 2})
	assert.Equal(t, Levels{}, m.Levels())
	assert.Zero(t, m.Raw(Right))
}

func TestChannelOther(t *testing.T) {
	assert.Equal(t, Right, Left.Other())
	assert.Equal(t, Left, Right.Other())
	assert.Equal(t, "right", Right.String())
}
