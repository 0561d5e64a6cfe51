//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps keys to the front-panel buttons. Up and Left press
// BTN_UP, Down and Right press BTN_DOWN, Enter and Space press BTN_SELECT.
type hostKeyboard struct {
	h    *hostHAL
	keys map[string][]ebiten.Key
}

func newHostKeyboard(h *hostHAL) *hostKeyboard {
	return &hostKeyboard{
		h: h,
		keys: map[string][]ebiten.Key{
			PinUp:     {ebiten.KeyArrowUp, ebiten.KeyArrowLeft},
			PinDown:   {ebiten.KeyArrowDown, ebiten.KeyArrowRight},
			PinSelect: {ebiten.KeyEnter, ebiten.KeySpace},
		},
	}
}

// poll updates the button levels. Escape closes the window.
func (k *hostKeyboard) poll() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for pin, keys := range k.keys {
		down := false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				down = true
			}
		}
		k.h.press(pin, down)
	}
	return nil
}
