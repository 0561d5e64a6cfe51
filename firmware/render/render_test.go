package render

import (
	"strings"
	"testing"

	"manageaudio/firmware/dsp"
	"manageaudio/firmware/glyph"
	"manageaudio/hal/vfd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisplay(t *testing.T) *vfd.Controller {
	t.Helper()
	d := vfd.New(1, 10, nil)
	require.NoError(t, d.Init())
	return d
}

func TestMeterTypeClamp(t *testing.T) {
	assert.Equal(t, MeterHarrow, MeterType(9).Clamp())
	assert.Equal(t, MeterVULines, MeterVULines.Clamp())
	assert.Equal(t, "FFT", MeterFFT.String())
	assert.Equal(t, "?", NumMeters.String())
}

func TestActivateLoadsGlyphsOnce(t *testing.T) {
	d := newDisplay(t)
	r := New(d, DefaultConfig())

	r.Activate(MeterFFT)
	assert.Equal(t, glyph.Slots, d.GlyphLoads())
	for i, g := range glyph.VerticalBars {
		assert.Equal(t, g, d.Glyph(i))
	}

	var spec dsp.Spectrum
	for i := 0; i < 20; i++ {
		r.Refresh(dsp.Levels{}, &spec)
	}
	assert.Equal(t, glyph.Slots, d.GlyphLoads(), "refresh must not reload glyphs")

	r.Activate(MeterHarrow)
	assert.Equal(t, glyph.Slots+len(glyph.Harrows), d.GlyphLoads())
	assert.Equal(t, glyph.Harrows[glyph.HarrowBoth], d.Glyph(glyph.HarrowBoth))
}

func TestRefreshInactiveDoesNothing(t *testing.T) {
	d := newDisplay(t)
	d.WriteString("SOURCE")
	r := New(d, DefaultConfig())
	r.Refresh(dsp.Levels{Left: dsp.FullScale}, &dsp.Spectrum{})
	assert.Equal(t, "SOURCE    ", d.Text(0))

	r.Activate(MeterHarrow)
	r.Deactivate()
	assert.False(t, r.Active())
	d.WriteString("X")
	r.Refresh(dsp.Levels{Left: dsp.FullScale}, nil)
	assert.Equal(t, "X         ", d.Text(0))
}

func TestSpectrumBars(t *testing.T) {
	d := newDisplay(t)
	r := New(d, DefaultConfig())
	r.Activate(MeterFFT)

	var spec dsp.Spectrum
	// Group 0 sums to full scale, group 1 to 244 (one cell), group 2 to 8124 (six cells).
	spec[0], spec[1], spec[2] = 0, 8192, 8192
	spec[3] = 244
	spec[6], spec[7] = 8000, 124
	r.Refresh(dsp.Levels{}, &spec)

	assert.Equal(t, "\x06\x00\x05       ", d.Text(0))
}

func TestHarrowCells(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		levels dsp.Levels
		want   string
	}{
		{"silent", LeftToRight, dsp.Levels{}, strings.Repeat(" ", 10)},
		{"left only", LeftToRight, dsp.Levels{Left: 9927}, "\x01\x01\x01\x01\x01\x01\x01\x01\x01 "},
		{"both then right", LeftToRight, dsp.Levels{Left: 811, Right: 1338}, "\x02\x02\x02\x02\x00     "},
		{"reversed", RightToLeft, dsp.Levels{Left: 180, Right: 298}, "        \x00\x02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDisplay(t)
			r := New(d, Config{PhaseCycles: 1, Direction: tt.dir})
			r.Activate(MeterHarrow)
			r.Refresh(tt.levels, nil)
			assert.Equal(t, tt.want, d.Text(0))
		})
	}
}

func TestLinesPhasesAlternateChannels(t *testing.T) {
	d := newDisplay(t)
	r := New(d, Config{PhaseCycles: 2})
	r.Activate(MeterVULines)
	require.Equal(t, glyph.HorizontalUpper[0], d.Glyph(0))
	loads := d.GlyphLoads()

	levels := dsp.Levels{Left: 13408, Right: 14822}
	blank := strings.Repeat(" ", 10)

	// Blank before the left bar.
	d.WriteString("junk")
	r.Refresh(levels, nil)
	assert.Equal(t, blank, d.Text(0))
	r.Refresh(levels, nil)

	// Left: 48 cells = 9 full and a 3-column partial, upper set already loaded.
	r.Refresh(levels, nil)
	assert.Equal(t, strings.Repeat("\x04", 9)+"\x02", d.Text(0))
	assert.Equal(t, loads, d.GlyphLoads())
	r.Refresh(levels, nil)

	r.Refresh(levels, nil)
	assert.Equal(t, blank, d.Text(0))
	r.Refresh(levels, nil)

	// Right: 49 cells, lower set swapped in once.
	r.Refresh(levels, nil)
	assert.Equal(t, strings.Repeat("\x04", 9)+"\x03", d.Text(0))
	assert.Equal(t, glyph.HorizontalLower[4], d.Glyph(4))
	assert.Equal(t, loads+len(glyph.HorizontalLower), d.GlyphLoads())
	r.Refresh(levels, nil)
	assert.Equal(t, loads+len(glyph.HorizontalLower), d.GlyphLoads())

	// Back to the left bar via a blank phase.
	r.Refresh(levels, nil)
	r.Refresh(levels, nil)
	r.Refresh(levels, nil)
	assert.Equal(t, glyph.HorizontalUpper[4], d.Glyph(4))
}

func TestLinesExactMultiplePadsWithSpace(t *testing.T) {
	d := newDisplay(t)
	r := New(d, Config{PhaseCycles: 1})
	r.Activate(MeterVULines)

	// 9927 lights 45 of 50 cells: nine full cells and no partial.
	levels := dsp.Levels{Left: 9927}
	r.Refresh(levels, nil)
	r.Refresh(levels, nil)
	assert.Equal(t, strings.Repeat("\x04", 9)+" ", d.Text(0))
}

func TestNilRenderer(t *testing.T) {
	var r *Renderer
	r.Activate(MeterFFT)
	r.Refresh(dsp.Levels{}, nil)
	r.Deactivate()
	assert.False(t, r.Active())
	assert.Equal(t, MeterFFT, r.Meter())
}
