//go:build !tinygo

package hal

import (
	"fmt"

	"manageaudio/internal/buildinfo"
)

// hostRunner steps the firmware on a host HAL and reboots it after a
// software reset.
type hostRunner struct {
	h      *hostHAL
	newApp func(HAL) func() error
	step   func() error

	steps      uint64
	boots      int
	lastRelays uint8
	drawn      bool
}

func newHostRunner(h *hostHAL, newApp func(HAL) func() error) *hostRunner {
	r := &hostRunner{h: h, newApp: newApp}
	r.boot()
	return r
}

func (r *hostRunner) boot() {
	r.boots++
	if r.boots > 1 {
		r.h.logger.WriteLineString(fmt.Sprintf("host: reboot #%d", r.boots-1))
	}
	r.step = r.newApp(r.h)
}

func (r *hostRunner) stepOnce() error {
	if r.h.sys.takeReset() {
		r.boot()
	}
	if r.step != nil {
		if err := r.step(); err != nil {
			return err
		}
	}
	r.steps++
	r.updateStatus()
	return nil
}

func (r *hostRunner) updateStatus() {
	m := r.h.relayMask()
	if r.drawn && m == r.lastRelays {
		return
	}
	r.lastRelays = m
	r.drawn = true
	drawStatus(r.h.status, m, "manageaudio "+buildinfo.Short())
}
