package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor. Front-panel buttons use the pull-up.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
)

// GPIOCaps declares what a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
)

// GPIO lists the board's buttons and relay outputs.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// pinList is a fixed set of pins addressed by position.
type pinList []GPIOPin

func (l pinList) PinCount() int { return len(l) }

func (l pinList) Pin(id int) GPIOPin {
	if id < 0 || id >= len(l) {
		return nil
	}
	return l[id]
}

// FindPin returns the pin called name, or nil.
func FindPin(g GPIO, name string) GPIOPin {
	if g == nil {
		return nil
	}
	for i := 0; i < g.PinCount(); i++ {
		if p := g.Pin(i); p != nil && p.Name() == name {
			return p
		}
	}
	return nil
}

// configureInput accepts the setups an input-only pin can take.
func configureInput(name string, mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", name)
	}
	if pull != GPIOPullNone && pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// buttonPin is a front-panel button. The level reads high while released.
type buttonPin struct {
	mu    sync.Mutex
	name  string
	level bool
}

func newButtonPin(name string) *buttonPin {
	return &buttonPin{name: name, level: true}
}

func (p *buttonPin) Name() string   { return p.name }
func (p *buttonPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *buttonPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return configureInput(p.name, mode, pull)
}

func (p *buttonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *buttonPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// press pulls the line low while down.
func (p *buttonPin) press(down bool) {
	p.mu.Lock()
	p.level = !down
	p.mu.Unlock()
}

// signalPin is an input driven by a square wave: high for the first part of
// every period, low for the rest.
type signalPin struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newSignalPin(name string, period, high time.Duration) GPIOPin {
	return newSignalPinWithClock(name, period, high, time.Now)
}

func newSignalPinWithClock(name string, period, high time.Duration, now func() time.Time) GPIOPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = time.Second
	}
	high = min(max(high, 0), period)
	return &signalPin{name: name, t0: now(), now: now, period: period, high: high}
}

func (p *signalPin) Name() string   { return p.name }
func (p *signalPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *signalPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return configureInput(p.name, mode, pull)
}

func (p *signalPin) Read() (bool, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed%p.period < p.high, nil
}

func (p *signalPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// relayPin is an output that reports every level change to a Logger.
type relayPin struct {
	mu     sync.Mutex
	name   string
	logger Logger
	level  bool
}

func newRelayPin(name string, logger Logger) *relayPin {
	return &relayPin{name: name, logger: logger}
}

func (p *relayPin) Name() string   { return p.name }
func (p *relayPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *relayPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: only output supported", p.name)
	}
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	return nil
}

func (p *relayPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *relayPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.level == level {
		return nil
	}
	p.level = level
	if p.logger != nil {
		state := "off"
		if level {
			state = "on"
		}
		p.logger.WriteLineString("relay: " + p.name + " " + state)
	}
	return nil
}
