//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// hostFramebuffer is an RGB565 pixel buffer shared by the firmware loop and
// the window.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) setPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	p := rgb565(c.R, c.G, c.B)
	off := y*f.stride + x*2
	f.mu.Lock()
	f.buf[off] = byte(p)
	f.buf[off+1] = byte(p >> 8)
	f.mu.Unlock()
}

func (f *hostFramebuffer) pixelRGB(x, y int) (r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbRegion exposes a rectangle of the framebuffer as a drivers.Displayer.
type fbRegion struct {
	fb     *hostFramebuffer
	x0, y0 int16
	w, h   int16
}

func (r fbRegion) Size() (x, y int16) { return r.w, r.h }

func (r fbRegion) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.fb.setPixel(int(r.x0+x), int(r.y0+y), c)
}

func (r fbRegion) Display() error { return nil }

func (r fbRegion) fill(c color.RGBA) {
	for y := int16(0); y < r.h; y++ {
		for x := int16(0); x < r.w; x++ {
			r.SetPixel(x, y, c)
		}
	}
}

var (
	statusBG = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	statusFG = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	relayOn  = color.RGBA{R: 0xff, G: 0xb0, B: 0x30, A: 0xff}
)

// drawStatus renders the relay lamps and a text line below the display.
func drawStatus(r fbRegion, relays uint8, text string) {
	r.fill(statusBG)
	x := int16(3)
	for i := range RelayPins {
		lamp := fbRegion{fb: r.fb, x0: r.x0 + x, y0: r.y0 + 3, w: 8, h: 8}
		if relays&(1<<i) != 0 {
			lamp.fill(relayOn)
		} else {
			lamp.fill(color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff})
		}
		x += 11
	}
	tinyfont.WriteLine(r, &proggy.TinySZ8pt7b, x+4, 11, text, statusFG)
}
