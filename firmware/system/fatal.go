package system

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"manageaudio/hal"
)

// Diagnostics written to the display on a fatal halt.
const (
	DiagPanic = "PANIC"
	DiagNoISR = "NO ISR!"
)

// Halt is the fail-stop latch. Once tripped the device shows the diagnostic
// and the main loop stops doing work.
type Halt struct {
	active atomic.Bool
	once   sync.Once
	diag   string
}

// Fatal writes diag to the display, logs detail and the current stack, and
// latches the halt. Only the first call has any effect.
func (h *Halt) Fatal(disp hal.Display, log hal.Logger, diag string, detail any) {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.diag = diag
		if log != nil {
			log.WriteLineString(fmt.Sprintf("fatal: %s: %v", diag, detail))
			for _, line := range strings.Split(string(captureStack()), "\n") {
				if line == "" {
					continue
				}
				log.WriteLineString(line)
			}
		}
		if disp != nil {
			disp.Power(true)
			disp.Clear()
			disp.SetIntensity(0xFF)
			disp.SetCursor(0, 0)
			disp.WriteString(diag)
			_ = disp.Flush()
		}
		h.active.Store(true)
	})
}

// Halted reports whether Fatal has been called.
func (h *Halt) Halted() bool {
	return h != nil && h.active.Load()
}

// Diagnostic returns the message passed to the first Fatal call.
func (h *Halt) Diagnostic() string {
	if !h.Halted() {
		return ""
	}
	return h.diag
}
