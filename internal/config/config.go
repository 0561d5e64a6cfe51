// Package config loads the host simulator settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"manageaudio/app"
	"manageaudio/firmware/render"
	"manageaudio/hal"
)

type Config struct {
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	Input   InputConfig   `toml:"input"`
	Meter   MeterConfig   `toml:"meter"`
	Flash   FlashConfig   `toml:"flash"`
	Loop    LoopConfig    `toml:"loop"`
}

type DisplayConfig struct {
	Cols  int `toml:"cols"`
	Scale int `toml:"scale"`
}

type AudioConfig struct {
	SampleRate int     `toml:"sample_rate"`
	WAV        string  `toml:"wav"`
	ToneHz     float64 `toml:"tone_hz"`
	Amplitude  float64 `toml:"amplitude"`
}

type InputConfig struct {
	DebounceUS uint64 `toml:"debounce_us"`
}

type MeterConfig struct {
	// StartDelay is counted in 50 ms flags.
	StartDelay  int    `toml:"start_delay"`
	PhaseCycles int    `toml:"phase_cycles"`
	Direction   string `toml:"direction"`
}

type FlashConfig struct {
	Path string `toml:"path"`
}

type LoopConfig struct {
	Hz         int `toml:"hz"`
	StepBudget int `toml:"step_budget"`
}

// Harrow fill directions accepted in the meter section.
const (
	DirLeftToRight = "left-to-right"
	DirRightToLeft = "right-to-left"
)

func Default() *Config {
	a := app.DefaultConfig()
	h := hal.DefaultHostConfig()
	l := hal.DefaultHeadlessConfig()
	return &Config{
		Display: DisplayConfig{Cols: h.Cols, Scale: h.Scale},
		Audio: AudioConfig{
			SampleRate: h.Audio.SampleRate,
			ToneHz:     h.Audio.ToneHz,
			Amplitude:  h.Audio.Amplitude,
		},
		Input: InputConfig{DebounceUS: a.DebounceMicros},
		Meter: MeterConfig{
			StartDelay:  a.MeterDelay,
			PhaseCycles: a.Render.PhaseCycles,
			Direction:   DirLeftToRight,
		},
		Flash: FlashConfig{Path: h.FlashPath},
		Loop:  LoopConfig{Hz: l.Hz, StepBudget: l.StepBudget},
	}
}

// Load reads $XDG_CONFIG_HOME/manageaudio/config.toml, falling back to
// ~/.config.
func Load() (*Config, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		configDir = filepath.Join(home, ".config")
	}
	return LoadFrom(filepath.Join(configDir, "manageaudio", "config.toml"))
}

// LoadFrom reads path over the defaults. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Display.Cols <= 0:
		return errors.New("display.cols must be positive")
	case c.Display.Scale <= 0:
		return errors.New("display.scale must be positive")
	case c.Audio.SampleRate <= 0:
		return errors.New("audio.sample_rate must be positive")
	case c.Audio.Amplitude < 0 || c.Audio.Amplitude > 1:
		return errors.New("audio.amplitude must be within 0..1")
	case c.Meter.StartDelay < 0:
		return errors.New("meter.start_delay must not be negative")
	case c.Meter.PhaseCycles <= 0:
		return errors.New("meter.phase_cycles must be positive")
	case c.Loop.Hz <= 0:
		return errors.New("loop.hz must be positive")
	}
	if _, err := c.direction(); err != nil {
		return err
	}
	return nil
}

func (c *Config) direction() (render.Direction, error) {
	switch c.Meter.Direction {
	case "", DirLeftToRight:
		return render.LeftToRight, nil
	case DirRightToLeft:
		return render.RightToLeft, nil
	default:
		return 0, fmt.Errorf("meter.direction %q: want %s or %s", c.Meter.Direction, DirLeftToRight, DirRightToLeft)
	}
}

// App returns the firmware configuration.
func (c *Config) App() app.Config {
	a := app.DefaultConfig()
	a.DebounceMicros = c.Input.DebounceUS
	a.MeterDelay = c.Meter.StartDelay
	a.Render.PhaseCycles = c.Meter.PhaseCycles
	a.Render.Direction, _ = c.direction()
	return a
}

// Host returns the simulated board configuration.
func (c *Config) Host() hal.HostConfig {
	h := hal.DefaultHostConfig()
	h.Cols = c.Display.Cols
	h.Scale = c.Display.Scale
	h.FlashPath = c.Flash.Path
	h.Audio = hal.HostAudioConfig{
		SampleRate: c.Audio.SampleRate,
		WAVPath:    c.Audio.WAV,
		ToneHz:     c.Audio.ToneHz,
		Amplitude:  c.Audio.Amplitude,
	}
	return h
}

// LoopConfig returns the main loop pacing.
func (c *Config) LoopConfig() hal.HeadlessConfig {
	return hal.HeadlessConfig{Hz: c.Loop.Hz, StepBudget: c.Loop.StepBudget}
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
