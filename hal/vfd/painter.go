package vfd

import (
	"image/color"

	"manageaudio/firmware/glyph"

	"tinygo.org/x/drivers"
)

// Palette holds the colors of a lit dot at full intensity and of a dark dot.
type Palette struct {
	Lit  color.RGBA
	Dark color.RGBA
}

// DefaultPalette imitates a blue-green VFD phosphor.
var DefaultPalette = Palette{
	Lit:  color.RGBA{R: 0x50, G: 0xFF, B: 0xD8, A: 0xFF},
	Dark: color.RGBA{R: 0x0C, G: 0x1C, B: 0x1A, A: 0xFF},
}

// MonochromePalette suits single-color panels where any non-black pixel is on.
var MonochromePalette = Palette{
	Lit:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Dark: color.RGBA{A: 0xFF},
}

// Painter rasterizes a controller onto a Displayer. Each dot becomes a
// Scale x Scale square; cells are separated by one dark dot column.
type Painter struct {
	sink    drivers.Displayer
	palette Palette
	Scale   int16
	OriginX int16
	OriginY int16
}

// NewPainter returns a painter at scale 1 anchored at the sink origin.
func NewPainter(sink drivers.Displayer, p Palette) *Painter {
	return &Painter{sink: sink, palette: p, Scale: 1}
}

// Fit chooses the largest scale at which rows x cols cells fit the sink and
// centers the result.
func (p *Painter) Fit(rows, cols int) {
	w, h := p.sink.Size()
	cellW := int16(glyph.Width + 1)
	cellH := int16(glyph.Height + 1)
	s := w / (int16(cols) * cellW)
	if hs := h / (int16(rows) * cellH); hs < s {
		s = hs
	}
	if s < 1 {
		s = 1
	}
	p.Scale = s
	p.OriginX = (w - int16(cols)*cellW*s) / 2
	p.OriginY = (h - int16(rows)*cellH*s) / 2
	if p.OriginX < 0 {
		p.OriginX = 0
	}
	if p.OriginY < 0 {
		p.OriginY = 0
	}
}

// Painter returns the controller's painter, or nil without a sink.
func (c *Controller) Painter() *Painter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.painter
}

func (p *Painter) lit(intensity uint8) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8((uint16(v)*(uint16(intensity)+1) + 255) / 256)
	}
	return color.RGBA{
		R: scale(p.palette.Lit.R),
		G: scale(p.palette.Lit.G),
		B: scale(p.palette.Lit.B),
		A: 0xFF,
	}
}

// paint is called with the controller locked.
func (p *Painter) paint(c *Controller) error {
	on := p.lit(c.intensity)
	off := p.palette.Dark
	s := p.Scale
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			g := c.glyphLocked(c.ram[row*c.cols+col])
			x0 := p.OriginX + int16(col*(glyph.Width+1))*s
			y0 := p.OriginY + int16(row*(glyph.Height+1))*s
			for y := 0; y < glyph.Height; y++ {
				for x := 0; x < glyph.Width; x++ {
					clr := off
					if c.on && g.At(y, x) {
						clr = on
					}
					p.fill(x0+int16(x)*s, y0+int16(y)*s, s, clr)
				}
			}
		}
	}
	return p.sink.Display()
}

func (p *Painter) fill(x, y, s int16, clr color.RGBA) {
	for dy := int16(0); dy < s; dy++ {
		for dx := int16(0); dx < s; dx++ {
			p.sink.SetPixel(x+dx, y+dy, clr)
		}
	}
}
