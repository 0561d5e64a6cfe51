package menu

import (
	"fmt"

	"manageaudio/firmware/render"
	"manageaudio/firmware/settings"
	"manageaudio/firmware/system"
	"manageaudio/hal"
)

// Saver persists settings.
type Saver interface {
	Save(settings.Settings) error
}

// Context is the state menu actions read and change. The main loop owns it
// and passes it into every navigator call.
type Context struct {
	Settings settings.Settings
	Store    Saver
	Display  hal.Display
	Ops      *system.Operational
	Log      hal.Logger
	Version  string

	// ResetRequested is set by the reboot entry; the main loop performs the reset.
	ResetRequested bool
}

func (c *Context) logLine(s string) {
	if c.Log != nil {
		c.Log.WriteLineString(s)
	}
}

func (c *Context) save() {
	if c.Store == nil {
		return
	}
	if err := c.Store.Save(c.Settings); err != nil {
		c.logLine("menu: " + err.Error())
	}
}

func (c *Context) setRelays(mask uint8) {
	if c.Ops != nil {
		c.Ops.Relays = mask
	}
}

func (c *Context) selectSource(id uint8) {
	c.Settings.Source = id
	c.setRelays(SourceSelect(id))
	c.save()
}

// applyBrightness sets the display intensity for level and optionally stores
// it. Levels past the table are ignored.
func (c *Context) applyBrightness(level uint8, persist bool) {
	if int(level) >= len(Intensities) {
		return
	}
	if c.Display != nil {
		c.Display.SetIntensity(Intensities[level])
	}
	if persist {
		c.Settings.Brightness = level
		c.save()
	}
}

func (c *Context) setMeter(m render.MeterType) {
	c.Settings.Meter = m.Clamp()
	c.save()
}

func (c *Context) probe(id uint8) string {
	var ops system.Operational
	if c.Ops != nil {
		ops = *c.Ops
	}
	switch id {
	case ProbeCycle:
		return fmt.Sprintf("CYC %dus", ops.CycleMicros)
	case ProbeConversions:
		return fmt.Sprintf("ADC %d", ops.Conversions%1000000)
	case ProbeResetReason:
		return fmt.Sprintf("RST %d", ops.ResetReason)
	case ProbeLeft:
		return fmt.Sprintf("L %d", ops.Levels.Left)
	case ProbeRight:
		return fmt.Sprintf("R %d", ops.Levels.Right)
	case ProbeMeter:
		return "MTR " + c.Settings.Meter.String()
	default:
		return "?"
	}
}
