//go:build !tinygo

package hal

import "time"

// hostClock counts microseconds since the HAL was created.
type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) Micros() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}
