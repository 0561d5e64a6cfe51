//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"manageaudio/hal/vfd"
)

// HostConfig describes the simulated board.
type HostConfig struct {
	// Cols is the number of display cells.
	Cols int
	// Scale is the number of framebuffer pixels per display dot.
	Scale     int
	FlashPath string
	Audio     HostAudioConfig
	// Demo presses the down button every few seconds.
	Demo bool
	Log  io.Writer
}

func DefaultHostConfig() HostConfig {
	return HostConfig{
		Cols:      10,
		Scale:     6,
		FlashPath: hostFlashDefaultPath,
		Audio:     DefaultHostAudioConfig(),
	}
}

const statusHeight = 14

type hostHAL struct {
	cfg     HostConfig
	logger  *hostLogger
	gpio    GPIO
	buttons map[string]*buttonPin
	relays  []*relayPin
	disp    *vfd.Controller
	fb      *hostFramebuffer
	status  fbRegion
	adc     *hostADC
	flash   *hostFlash
	clock   *hostClock
	sys     *hostSystem
}

// New returns a host HAL with the default configuration.
func New() HAL {
	h, err := newHostHAL(DefaultHostConfig())
	if err != nil {
		panic(err)
	}
	return h
}

func newHostHAL(cfg HostConfig) (*hostHAL, error) {
	def := DefaultHostConfig()
	if cfg.Cols <= 0 {
		cfg.Cols = def.Cols
	}
	if cfg.Scale <= 0 {
		cfg.Scale = def.Scale
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}
	logger := &hostLogger{w: cfg.Log}

	src, err := newSampleSource(cfg.Audio)
	if err != nil {
		return nil, err
	}

	h := &hostHAL{
		cfg:     cfg,
		logger:  logger,
		buttons: map[string]*buttonPin{},
		clock:   newHostClock(),
		sys:     &hostSystem{},
		flash:   newHostFlash(cfg.FlashPath),
	}
	h.sys.reason.Store(uint32(ResetPowerOn))
	h.adc = newHostADC(src, cfg.Audio.SampleRate)

	var pins []GPIOPin
	for _, name := range []string{PinSelect, PinUp, PinDown} {
		if cfg.Demo && name == PinDown {
			// Active-low: released for 2.8 s, pressed for 0.2 s.
			pins = append(pins, newSignalPin(name, 3*time.Second, 2800*time.Millisecond))
			continue
		}
		p := newButtonPin(name)
		h.buttons[name] = p
		pins = append(pins, p)
	}
	for _, name := range RelayPins {
		p := newRelayPin(name, logger)
		h.relays = append(h.relays, p)
		pins = append(pins, p)
	}
	h.gpio = pinList(pins)

	cellW := cfg.Cols * 6 * cfg.Scale
	vfdH := 8*cfg.Scale + cfg.Scale
	h.fb = newHostFramebuffer(cellW+2*cfg.Scale, vfdH+statusHeight)
	h.fb.ClearRGB(0, 0, 0)
	panel := fbRegion{fb: h.fb, w: int16(h.fb.width), h: int16(vfdH)}
	h.status = fbRegion{fb: h.fb, y0: int16(vfdH), w: int16(h.fb.width), h: statusHeight}
	h.disp = vfd.New(1, cfg.Cols, panel)
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) ADC() ADC         { return h.adc }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) System() System   { return h.sys }

// press drives a button pin; buttons are active-low.
func (h *hostHAL) press(name string, down bool) {
	if p := h.buttons[name]; p != nil {
		p.press(down)
	}
}

func (h *hostHAL) relayMask() uint8 {
	var m uint8
	for i, p := range h.relays {
		if on, _ := p.Read(); on {
			m |= 1 << i
		}
	}
	return m
}

func (h *hostHAL) close() {
	h.adc.stop()
	h.flash.close()
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// Reset reasons reported by the host System.
const (
	ResetPowerOn  uint8 = 1
	ResetSoftware uint8 = 2
)

type hostSystem struct {
	reason  atomic.Uint32
	pending atomic.Bool
}

func (s *hostSystem) ResetReason() uint8 { return uint8(s.reason.Load()) }

// Reset records a software reset; the runner reboots the firmware.
func (s *hostSystem) Reset() {
	s.reason.Store(uint32(ResetSoftware))
	s.pending.Store(true)
}

func (s *hostSystem) takeReset() bool {
	return s.pending.Swap(false)
}
