package system

import "manageaudio/firmware/dsp"

// Operational is the volatile state of the running device.
type Operational struct {
	// CycleMicros is the duration of the last main-loop cycle.
	CycleMicros uint32
	// Conversions counts completed ADC conversions.
	Conversions uint32
	ResetReason uint8
	Levels      dsp.Levels
	// Relays is the mask written to the relay outputs, bit 0 = RLY1.
	Relays uint8
	Flags  Flags
}
