// Package input turns raw button levels into debounced clicks.
package input

// Debounce filters one digital input. A change is accepted once it has been
// seen continuously for the edge's timeout.
type Debounce struct {
	stable         bool
	risingTimeout  uint64
	fallingTimeout uint64

	timing    bool
	changedAt uint64
}

// NewDebounce returns a filter with the same timeout (µs) for both edges.
func NewDebounce(timeout uint64) *Debounce {
	return &Debounce{risingTimeout: timeout, fallingTimeout: timeout}
}

// Update feeds the raw input sampled at now (µs) and returns the stable value.
// A nil filter passes the input through.
func (d *Debounce) Update(in bool, now uint64) bool {
	if d == nil {
		return in
	}
	if in == d.stable {
		d.timing = false
		d.changedAt = 0
		return d.stable
	}

	if !d.timing {
		d.timing = true
		d.changedAt = now
	}
	timeout := d.fallingTimeout
	if in {
		timeout = d.risingTimeout
	}
	if now-d.changedAt >= timeout {
		d.stable = in
		d.timing = false
		d.changedAt = 0
	}
	return d.stable
}

// Stable returns the last accepted value.
func (d *Debounce) Stable() bool {
	return d != nil && d.stable
}
