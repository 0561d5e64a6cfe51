// Package system holds the main loop's timebase, the operational state shown
// on the debug page, and the fail-stop halt.
package system

// Tick periods in microseconds.
const (
	Tick10msMicros = 10000
	// ticksPer50ms is the number of 10 ms flags per 50 ms flag.
	ticksPer50ms = 5
)

// Flags are the cooperative scheduling flags raised for one cycle.
type Flags struct {
	Tick10ms bool
	Tick50ms bool
}

// Ticker derives the 10 ms and 50 ms flags from the microsecond clock.
type Ticker struct {
	last  uint64
	count uint8
}

// Update returns the flags for a cycle running at now (µs). The 10 ms flag is
// raised once more than 10 ms have passed since it was last raised; every
// fifth 10 ms flag also raises the 50 ms flag.
func (t *Ticker) Update(now uint64) Flags {
	var f Flags
	if t == nil {
		return f
	}
	if now-t.last <= Tick10msMicros {
		return f
	}
	t.last = now
	f.Tick10ms = true
	t.count++
	if t.count >= ticksPer50ms {
		t.count = 0
		f.Tick50ms = true
	}
	return f
}
