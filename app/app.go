// Package app wires the firmware components to a HAL and runs the
// cooperative main loop.
package app

import (
	"errors"
	"runtime"

	"manageaudio/firmware/dsp"
	"manageaudio/firmware/input"
	"manageaudio/firmware/menu"
	"manageaudio/firmware/render"
	"manageaudio/firmware/sampler"
	"manageaudio/firmware/settings"
	"manageaudio/firmware/system"
	"manageaudio/hal"
	"manageaudio/internal/buildinfo"
)

// ErrReset is returned by Step when the user asked for a reboot.
var ErrReset = errors.New("app: reset requested")

type Config struct {
	// DebounceMicros is the button debounce time.
	DebounceMicros uint64
	// MeterDelay is the number of 50 ms flags the source label stays up
	// before the meter starts.
	MeterDelay int
	// LevelWeight is the low-pass weight of both level channels.
	LevelWeight    uint32
	Render         render.Config
	SettingsOffset uint32
	Version        string
}

func DefaultConfig() Config {
	return Config{
		DebounceMicros: input.DefaultDebounceMicros,
		MeterDelay:     20,
		LevelWeight:    dsp.DefaultWeight,
		Render:         render.DefaultConfig(),
		Version:        buildinfo.Short(),
	}
}

// App is one boot of the firmware.
type App struct {
	h    hal.HAL
	cfg  Config
	log  hal.Logger
	disp hal.Display
	clk  hal.Clock

	buttons [input.NumButtons]hal.GPIOPin
	relays  [len(hal.RelayPins)]hal.GPIOPin

	keypad   *input.Keypad
	sampler  *sampler.Sampler
	analyzer *dsp.Analyzer
	levels   *dsp.LevelMeter
	spectrum dsp.Spectrum
	renderer *render.Renderer
	store    *settings.Store
	nav      *menu.Navigator
	ctx      menu.Context

	ops       system.Operational
	ticker    system.Ticker
	halt      system.Halt
	meterWait int
}

// buttonPins maps buttons to pins. Up moves to the previous entry.
var buttonPins = [input.NumButtons]string{
	input.ButtonPrev:   hal.PinUp,
	input.ButtonNext:   hal.PinDown,
	input.ButtonSelect: hal.PinSelect,
}

// Boot initializes the peripherals, restores the settings and enters the
// first menu page. Holding select during boot opens the debug page.
func Boot(h hal.HAL, cfg Config) *App {
	a := &App{
		h:    h,
		cfg:  cfg,
		log:  h.Logger(),
		disp: h.Display(),
		clk:  h.Clock(),
	}
	a.logLine("manageaudio: boot " + cfg.Version)

	bootStep(h, "display")
	if err := a.disp.Init(); err != nil {
		a.logLine("display: init: " + err.Error())
	}
	a.disp.Power(true)

	bootStep(h, "gpio")
	a.setupPins()

	bootStep(h, "settings")
	a.store = settings.NewStore(h.Flash(), cfg.SettingsOffset, a.log)
	stored, err := a.store.Load()
	if err != nil {
		a.logLine("settings: " + err.Error())
	}
	if int(stored.Brightness) < len(menu.Intensities) {
		a.disp.SetIntensity(menu.Intensities[stored.Brightness])
	}

	if sys := h.System(); sys != nil {
		a.ops.ResetReason = sys.ResetReason()
	}

	a.keypad = input.NewKeypad(cfg.DebounceMicros)
	a.analyzer = dsp.NewAnalyzer()
	a.levels = dsp.NewLevelMeter(cfg.LevelWeight, cfg.LevelWeight)
	a.renderer = render.New(a.disp, cfg.Render)
	a.ctx = menu.Context{
		Settings: stored,
		Store:    a.store,
		Display:  a.disp,
		Ops:      &a.ops,
		Log:      a.log,
		Version:  cfg.Version,
	}

	start := menu.PageSource
	if a.buttonDown(input.ButtonSelect) {
		start = menu.PageDebug
	}
	a.nav = menu.NewNavigator(menu.DefaultTree(), start, a.log)
	a.nav.Enter(&a.ctx, start)

	bootStep(h, "sampler")
	a.sampler = sampler.New(h.ADC())
	a.sampler.Start()

	bootStep(h, "running")
	return a
}

func (a *App) setupPins() {
	g := a.h.GPIO()
	for b, name := range buttonPins {
		p := hal.FindPin(g, name)
		if p == nil {
			a.logLine("gpio: missing " + name)
			continue
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			a.logLine(err.Error())
		}
		a.buttons[b] = p
	}
	for i, name := range hal.RelayPins {
		p := hal.FindPin(g, name)
		if p == nil {
			a.logLine("gpio: missing " + name)
			continue
		}
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			a.logLine(err.Error())
		}
		a.relays[i] = p
	}
}

// buttonDown reads a button. Buttons are active-low; unreadable pins count as released.
func (a *App) buttonDown(b input.Button) bool {
	p := a.buttons[b]
	if p == nil {
		return false
	}
	level, err := p.Read()
	return err == nil && !level
}

// Step runs one main-loop cycle. After a fatal error it does nothing.
func (a *App) Step() (err error) {
	if a.halt.Halted() {
		return nil
	}
	defer a.recoverFatal()

	start := a.clk.Micros()
	flags := a.ticker.Update(start)
	a.ops.Flags = flags

	for b := input.Button(0); b < input.NumButtons; b++ {
		a.keypad.Set(b, a.buttonDown(b))
	}
	a.keypad.Periodic(start)
	refreshed := a.nav.Periodic(&a.ctx, a.keypad, flags)
	if a.ctx.ResetRequested {
		a.ctx.ResetRequested = false
		a.logLine("manageaudio: reset")
		return ErrReset
	}

	if a.sampler.Fault() {
		a.halt.Fatal(a.disp, a.log, system.DiagNoISR, "conversion with no cycle armed")
		return nil
	}
	if c, ok := a.sampler.Poll(); ok {
		a.levels.Update(c.Channel, c.Samples[:])
		a.spectrum = a.analyzer.Analyze((*[dsp.N]int16)(c.Samples))
		a.ops.Levels = a.levels.Levels()
	}
	a.ops.Conversions = a.sampler.Conversions()

	a.updateMeter(refreshed, flags)
	a.writeRelays()
	if err := a.disp.Flush(); err != nil {
		a.logLine("display: flush: " + err.Error())
	}
	a.ops.CycleMicros = uint32(a.clk.Micros() - start)
	return nil
}

// updateMeter runs the meter on the source page once the label has been
// shown for MeterDelay 50 ms flags. Any menu refresh restarts the delay.
func (a *App) updateMeter(refreshed bool, flags system.Flags) {
	if a.nav.Page() != menu.PageSource || refreshed {
		a.renderer.Deactivate()
		a.meterWait = 0
		return
	}
	if !a.renderer.Active() {
		if a.meterWait < a.cfg.MeterDelay {
			if flags.Tick50ms {
				a.meterWait++
			}
			return
		}
		a.renderer.Activate(a.ctx.Settings.Meter)
	}
	if flags.Tick10ms {
		a.renderer.Refresh(a.ops.Levels, &a.spectrum)
	}
}

func (a *App) writeRelays() {
	for i, p := range a.relays {
		if p == nil {
			continue
		}
		if err := p.Write(a.ops.Relays&(1<<i) != 0); err != nil {
			a.logLine(err.Error())
		}
	}
}

// Halted reports whether the firmware stopped on a fatal error.
func (a *App) Halted() bool { return a.halt.Halted() }

// Operational returns a copy of the live device state.
func (a *App) Operational() system.Operational { return a.ops }

// Settings returns the current settings.
func (a *App) Settings() settings.Settings { return a.ctx.Settings }

// Page returns the current menu page.
func (a *App) Page() menu.PageID { return a.nav.Page() }

// Meter reports whether a meter is being drawn, and which.
func (a *App) Meter() (render.MeterType, bool) {
	return a.renderer.Meter(), a.renderer.Active()
}

func (a *App) logLine(s string) {
	if a.log != nil {
		a.log.WriteLineString(s)
	}
}

// New boots the firmware on h and returns its main-loop step. A reboot
// request is passed to the HAL's System.
func New(h hal.HAL, cfg Config) func() error {
	a := Boot(h, cfg)
	return func() error {
		err := a.Step()
		if errors.Is(err, ErrReset) {
			if sys := h.System(); sys != nil {
				sys.Reset()
			}
			return nil
		}
		return err
	}
}

// Run boots and runs the firmware forever (TinyGo entrypoint). A reboot
// request resets the CPU and does not return.
func Run(h hal.HAL, cfg Config) {
	bootDiagStart(h)
	step := New(h, cfg)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("manageaudio: " + err.Error())
		}
		// The ADC goroutine needs the scheduler.
		runtime.Gosched()
	}
}
