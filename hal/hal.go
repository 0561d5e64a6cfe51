package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Display is the front-panel dot-matrix character display.
//
// Character codes 0..6 select the programmable glyph slots, 0x20..0x7E the
// built-in character set. Writes advance the cursor along the current row.
type Display interface {
	Init() error
	Power(on bool)
	Clear()
	SetCursor(row, col int)
	WriteChar(code byte)
	WriteString(s string)
	// LoadGlyph programs slot (0..6) with a 35-bit 5x7 bitmap.
	LoadGlyph(slot int, bits uint64)
	SetIntensity(level uint8)
	// Flush pushes the display contents to the physical device.
	Flush() error
	Rows() int
	Cols() int
}

// ADC is a single converter multiplexed over the audio inputs.
//
// Each Start yields exactly one later call to the handler with a left-adjusted
// 16-bit sample. The handler may run on another goroutine (the conversion
// interrupt) and may call Start again.
type ADC interface {
	SetHandler(fn func(sample uint16))
	Select(channel int)
	Start()
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Clock is a monotonic microsecond counter.
type Clock interface {
	Micros() uint64
}

// System exposes reset control.
type System interface {
	// ResetReason reports a platform-defined code for the last reset.
	ResetReason() uint8
	// Reset restarts the device. It may return on platforms that emulate it.
	Reset()
}

// Pin names every HAL exposes through GPIO.
const (
	PinSelect = "BTN_SELECT"
	PinUp     = "BTN_UP"
	PinDown   = "BTN_DOWN"
	PinRelay1 = "RLY1"
	PinRelay2 = "RLY2"
	PinRelay3 = "RLY3"
)

// RelayPins lists the relay outputs, bit 0 first.
var RelayPins = [3]string{PinRelay1, PinRelay2, PinRelay3}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	GPIO() GPIO
	ADC() ADC
	Flash() Flash
	Clock() Clock
	System() System
}
