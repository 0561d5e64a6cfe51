//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"manageaudio/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

// bootStep records the current boot stage and shows it on the display.
func bootStep(h hal.HAL, msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()

	if d := h.Display(); d != nil {
		d.Clear()
		d.WriteString("BOOT " + msg)
		_ = d.Flush()
	}
}

func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			line := "bootdiag: " + step

			if l != nil {
				l.WriteLineString(line)
			}

			// Also stream to USB CDC when it becomes available.
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte(line + "\r\n"))
			}

			time.Sleep(250 * time.Millisecond)
		}
	}()
}
