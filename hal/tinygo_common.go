//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
	"runtime"
	"runtime/volatile"
	"time"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts a machine.Pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	caps GPIOCaps
	mode GPIOMode
}

func newMachinePin(name string, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{name: name, pin: pin, caps: caps}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	cfg := machine.PinConfig{}
	switch {
	case mode == GPIOModeOutput && p.caps&GPIOCapOutput != 0:
		cfg.Mode = machine.PinOutput
	case mode == GPIOModeInput && pull == GPIOPullUp && p.caps&GPIOCapPullUp != 0:
		cfg.Mode = machine.PinInputPullup
	case mode == GPIOModeInput && pull == GPIOPullNone && p.caps&GPIOCapInput != 0:
		cfg.Mode = machine.PinInput
	default:
		return errors.New("gpio: pin " + p.name + ": unsupported configuration")
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) {
	return p.pin.Get(), nil
}

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return errors.New("gpio: pin " + p.name + ": not in output mode")
	}
	p.pin.Set(level)
	return nil
}

// tinyGoADC polls the converter from a goroutine; each pass completes the
// pending conversion, if any, and calls the handler.
type tinyGoADC struct {
	inputs  []machine.ADC
	handler func(uint16)
	channel volatile.Register8
	pending volatile.Register8
	period  time.Duration
}

func newTinyGoADC(pins []machine.Pin, rate int) *tinyGoADC {
	machine.InitADC()
	a := &tinyGoADC{period: time.Second / time.Duration(rate)}
	for _, p := range pins {
		in := machine.ADC{Pin: p}
		in.Configure(machine.ADCConfig{})
		a.inputs = append(a.inputs, in)
	}
	go a.run()
	return a
}

func (a *tinyGoADC) SetHandler(fn func(uint16)) {
	a.pending.Set(0)
	a.handler = fn
}

func (a *tinyGoADC) Select(channel int) { a.channel.Set(uint8(channel)) }
func (a *tinyGoADC) Start()             { a.pending.Set(1) }

func (a *tinyGoADC) run() {
	for {
		if a.pending.Get() == 0 || a.handler == nil {
			runtime.Gosched()
			continue
		}
		a.pending.Set(0)
		ch := int(a.channel.Get()) % len(a.inputs)
		a.handler(a.inputs[ch].Get())
		time.Sleep(a.period)
	}
}

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{start: time.Now()} }

func (c *tinyGoClock) Micros() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}

type tinyGoSystem struct{}

// ResetReason reports power-on; the boards in use do not latch the cause.
func (tinyGoSystem) ResetReason() uint8 { return 1 }
func (tinyGoSystem) Reset()             { machine.CPUReset() }
