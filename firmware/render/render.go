// Package render draws the audio meters on the character display using the
// programmable glyph slots.
package render

import (
	"manageaudio/firmware/dsp"
	"manageaudio/firmware/glyph"
	"manageaudio/hal"
)

// MeterType selects the meter drawn on the source page.
type MeterType uint8

const (
	MeterFFT MeterType = iota
	MeterVULines
	MeterHarrow

	NumMeters
)

func (m MeterType) String() string {
	switch m {
	case MeterFFT:
		return "FFT"
	case MeterVULines:
		return "VU-Horiz"
	case MeterHarrow:
		return "VU-Vert"
	default:
		return "?"
	}
}

// Clamp limits m to the last known meter.
func (m MeterType) Clamp() MeterType {
	if m >= NumMeters {
		return NumMeters - 1
	}
	return m
}

// Direction is the order in which the harrow meter fills its cells.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

// FFTGroup is the number of spectrum bins summed into one bar.
const FFTGroup = 3

// Config tunes the meters.
type Config struct {
	// PhaseCycles is the number of refreshes each VU line phase lasts.
	PhaseCycles int
	Direction   Direction
}

func DefaultConfig() Config {
	return Config{PhaseCycles: 5, Direction: LeftToRight}
}

type vuPhase uint8

const (
	phaseBlankLeft vuPhase = iota
	phaseLeft
	phaseBlankRight
	phaseRight

	numPhases
)

type bank uint8

const (
	bankNone bank = iota
	bankUpper
	bankLower
)

// Renderer owns the meter area of the display. Glyphs are loaded on
// activation; refreshes only write character codes, except the line meter
// which swaps its upper and lower glyph sets when a draw phase begins.
type Renderer struct {
	disp hal.Display
	cfg  Config

	active bool
	meter  MeterType

	phase   vuPhase
	elapsed int
	entered bool
	bank    bank
}

func New(disp hal.Display, cfg Config) *Renderer {
	if cfg.PhaseCycles <= 0 {
		cfg.PhaseCycles = 1
	}
	return &Renderer{disp: disp, cfg: cfg}
}

// Activate switches to meter m, clearing the display and loading its glyphs.
func (r *Renderer) Activate(m MeterType) {
	if r == nil || r.disp == nil {
		return
	}
	m = m.Clamp()
	r.active = true
	r.meter = m
	r.phase = phaseBlankLeft
	r.elapsed = 0
	r.entered = false
	r.bank = bankNone

	r.disp.Clear()
	switch m {
	case MeterFFT:
		for i, g := range glyph.VerticalBars {
			r.disp.LoadGlyph(i, uint64(g))
		}
	case MeterVULines:
		r.loadBank(bankUpper)
	case MeterHarrow:
		for i, g := range glyph.Harrows {
			r.disp.LoadGlyph(i, uint64(g))
		}
	}
}

// Deactivate stops drawing until the next Activate.
func (r *Renderer) Deactivate() {
	if r == nil {
		return
	}
	r.active = false
}

func (r *Renderer) Active() bool {
	return r != nil && r.active
}

func (r *Renderer) Meter() MeterType {
	if r == nil {
		return MeterFFT
	}
	return r.meter
}

// Refresh redraws the active meter from the latest levels and spectrum.
func (r *Renderer) Refresh(levels dsp.Levels, spectrum *dsp.Spectrum) {
	if !r.Active() {
		return
	}
	switch r.meter {
	case MeterFFT:
		r.drawSpectrum(spectrum)
	case MeterVULines:
		r.stepLines(levels)
	case MeterHarrow:
		r.drawHarrow(levels)
	}
}

func (r *Renderer) drawSpectrum(spectrum *dsp.Spectrum) {
	if spectrum == nil {
		return
	}
	groups := spectrum.Group(FFTGroup)
	r.disp.SetCursor(0, 0)
	for i := 0; i < r.disp.Cols(); i++ {
		lvl := 0
		if i < len(groups) {
			lvl = dsp.DisplayCells(groups[i], dsp.CellsBars)
		}
		if lvl == 0 {
			r.disp.WriteChar(' ')
		} else {
			r.disp.WriteChar(byte(lvl - 1))
		}
	}
}

func (r *Renderer) stepLines(levels dsp.Levels) {
	if !r.entered {
		r.enterPhase()
		r.entered = true
	}
	switch r.phase {
	case phaseLeft:
		r.drawLine(levels.Left)
	case phaseRight:
		r.drawLine(levels.Right)
	}

	r.elapsed++
	if r.elapsed >= r.cfg.PhaseCycles {
		r.elapsed = 0
		r.phase = (r.phase + 1) % numPhases
		r.entered = false
	}
}

func (r *Renderer) enterPhase() {
	switch r.phase {
	case phaseBlankLeft, phaseBlankRight:
		r.disp.Clear()
	case phaseLeft:
		r.loadBank(bankUpper)
	case phaseRight:
		r.loadBank(bankLower)
	}
}

func (r *Renderer) loadBank(b bank) {
	if r.bank == b {
		return
	}
	set := &glyph.HorizontalUpper
	if b == bankLower {
		set = &glyph.HorizontalLower
	}
	for i, g := range set {
		r.disp.LoadGlyph(i, uint64(g))
	}
	r.bank = b
}

// drawLine writes full cells, one partial cell for the remainder, then spaces.
func (r *Renderer) drawLine(level uint32) {
	lvl := dsp.DisplayCells(level, dsp.CellsVULines)
	full := lvl / glyph.HorizontalPerCell
	rem := lvl % glyph.HorizontalPerCell

	r.disp.SetCursor(0, 0)
	for i := 0; i < r.disp.Cols(); i++ {
		switch {
		case i < full:
			r.disp.WriteChar(glyph.HorizontalFull)
		case i == full && rem > 0:
			r.disp.WriteChar(byte(rem - 1))
		default:
			r.disp.WriteChar(' ')
		}
	}
}

func (r *Renderer) drawHarrow(levels dsp.Levels) {
	left := dsp.DisplayCells(levels.Left, dsp.CellsHarrow)
	right := dsp.DisplayCells(levels.Right, dsp.CellsHarrow)

	cols := r.disp.Cols()
	for i := 1; i <= cols; i++ {
		code := byte(' ')
		switch {
		case left >= i && right >= i:
			code = glyph.HarrowBoth
		case left >= i:
			code = glyph.HarrowLeft
		case right >= i:
			code = glyph.HarrowRight
		}
		col := i - 1
		if r.cfg.Direction == RightToLeft {
			col = cols - i
		}
		r.disp.SetCursor(0, col)
		r.disp.WriteChar(code)
	}
}
