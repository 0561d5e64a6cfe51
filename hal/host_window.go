//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"
	"sync"

	"manageaudio/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow shows the emulated display in a desktop window and maps the
// keyboard to the front-panel buttons. The firmware loop runs on its own
// goroutine at loop.Hz. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, loop HeadlessConfig, host HostConfig) error {
	h, err := newHostHAL(host)
	if err != nil {
		return err
	}
	defer h.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &hostGame{h: h, keys: newHostKeyboard(h), polled: make(chan struct{})}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.setErr(runLoop(ctx, h, newApp, loop, g.polled))
	}()

	ebiten.SetWindowTitle("manageaudio (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	cancel()
	wg.Wait()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	keys    *hostKeyboard
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte

	// polled is closed once the keyboard has been read, so buttons held at
	// start-up are seen by the firmware's boot.
	polled     chan struct{}
	polledOnce sync.Once

	mu  sync.Mutex
	err error
}

func (g *hostGame) setErr(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

func (g *hostGame) Update() error {
	g.mu.Lock()
	err := g.err
	g.mu.Unlock()
	if err != nil {
		return err
	}
	err = g.keys.poll()
	g.polledOnce.Do(func() { close(g.polled) })
	return err
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
