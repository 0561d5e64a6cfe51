// Package vfd models the dot-matrix vacuum fluorescent display controller:
// character RAM, seven programmable glyph slots, a write cursor, power and
// intensity. Flush rasterizes the model onto a tinygo drivers.Displayer, so
// the same controller drives the host window and an OLED stand-in on boards.
package vfd

import (
	"sync"

	"manageaudio/firmware/glyph"

	"tinygo.org/x/drivers"
)

// Controller implements hal.Display.
type Controller struct {
	mu sync.Mutex

	rows, cols int
	ram        []byte
	cgram      [glyph.Slots]glyph.Bitmap
	row, col   int
	on         bool
	intensity  uint8

	painter *Painter
	dirty   bool
	loads   int
	flushes int
}

// New returns a rows x cols controller painting into sink. A nil sink keeps
// the model only.
func New(rows, cols int, sink drivers.Displayer) *Controller {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	c := &Controller{
		rows:      rows,
		cols:      cols,
		ram:       make([]byte, rows*cols),
		intensity: 0xFF,
		dirty:     true,
	}
	if sink != nil {
		c.painter = NewPainter(sink, DefaultPalette)
		c.painter.Fit(rows, cols)
	}
	c.clearLocked()
	return c
}

// SetPalette replaces the colors used when painting.
func (c *Controller) SetPalette(p Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.painter != nil {
		c.painter.palette = p
		c.dirty = true
	}
}

func (c *Controller) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cgram = [glyph.Slots]glyph.Bitmap{}
	c.clearLocked()
	c.on = true
	c.dirty = true
	return nil
}

func (c *Controller) Power(on bool) {
	c.mu.Lock()
	c.on = on
	c.dirty = true
	c.mu.Unlock()
}

func (c *Controller) Clear() {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
}

func (c *Controller) clearLocked() {
	for i := range c.ram {
		c.ram[i] = ' '
	}
	c.row, c.col = 0, 0
	c.dirty = true
}

// SetCursor moves the write position. Out-of-range positions are clamped.
func (c *Controller) SetCursor(row, col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.row = clamp(row, c.rows-1)
	c.col = clamp(col, c.cols)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// WriteChar stores code at the cursor. Writes past the end of a row are dropped.
func (c *Controller) WriteChar(code byte) {
	c.mu.Lock()
	c.writeLocked(code)
	c.mu.Unlock()
}

func (c *Controller) WriteString(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < len(s); i++ {
		c.writeLocked(s[i])
	}
}

func (c *Controller) writeLocked(code byte) {
	if c.col >= c.cols {
		return
	}
	if i := c.row*c.cols + c.col; c.ram[i] != code {
		c.ram[i] = code
		c.dirty = true
	}
	c.col++
}

func (c *Controller) LoadGlyph(slot int, bits uint64) {
	if slot < 0 || slot >= glyph.Slots {
		return
	}
	c.mu.Lock()
	c.cgram[slot] = glyph.Bitmap(bits) & glyph.Mask
	c.loads++
	c.dirty = true
	c.mu.Unlock()
}

func (c *Controller) SetIntensity(level uint8) {
	c.mu.Lock()
	if c.intensity != level {
		c.intensity = level
		c.dirty = true
	}
	c.mu.Unlock()
}

// Flush paints the current contents into the sink when they changed since
// the last flush.
func (c *Controller) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
	if c.painter == nil || !c.dirty {
		return nil
	}
	c.dirty = false
	return c.painter.paint(c)
}

func (c *Controller) Rows() int { return c.rows }
func (c *Controller) Cols() int { return c.cols }

// glyphLocked resolves a character code to its bitmap.
func (c *Controller) glyphLocked(code byte) glyph.Bitmap {
	if int(code) < glyph.Slots {
		return c.cgram[code]
	}
	return romGlyph(code)
}

// Cell returns the character code stored at row, col.
func (c *Controller) Cell(row, col int) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return ' '
	}
	return c.ram[row*c.cols+col]
}

// Text returns row as a string of raw character codes.
func (c *Controller) Text(row int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 || row >= c.rows {
		return ""
	}
	return string(c.ram[row*c.cols : (row+1)*c.cols])
}

// Glyph returns the bitmap programmed into slot.
func (c *Controller) Glyph(slot int) glyph.Bitmap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot < 0 || slot >= glyph.Slots {
		return 0
	}
	return c.cgram[slot]
}

// Dot reports whether the dot at (x, y) of cell row, col would be lit.
func (c *Controller) Dot(row, col, x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.on || row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return false
	}
	return c.glyphLocked(c.ram[row*c.cols+col]).At(y, x)
}

func (c *Controller) Powered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

func (c *Controller) Intensity() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intensity
}

// GlyphLoads counts LoadGlyph calls since creation.
func (c *Controller) GlyphLoads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Flushes counts Flush calls since creation.
func (c *Controller) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}
