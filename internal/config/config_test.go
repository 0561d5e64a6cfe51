package config

import (
	"os"
	"path/filepath"
	"testing"

	"manageaudio/firmware/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Display.Cols)
	assert.Equal(t, 20, cfg.Meter.StartDelay)
	assert.Equal(t, uint64(50000), cfg.Input.DebounceUS)
	assert.Equal(t, DirLeftToRight, cfg.Meter.Direction)
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[display]
cols = 12

[audio]
wav = "drums.wav"
sample_rate = 9600

[meter]
start_delay = 5
direction = "right-to-left"
`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Display.Cols)
	assert.Equal(t, Default().Display.Scale, cfg.Display.Scale, "unset keys keep defaults")

	h := cfg.Host()
	assert.Equal(t, "drums.wav", h.Audio.WAVPath)
	assert.Equal(t, 9600, h.Audio.SampleRate)
	assert.Equal(t, 12, h.Cols)

	a := cfg.App()
	assert.Equal(t, 5, a.MeterDelay)
	assert.Equal(t, render.RightToLeft, a.Render.Direction)
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[display\ncols = 1"},
		{"cols", "[display]\ncols = 0"},
		{"direction", "[meter]\ndirection = \"up\""},
		{"amplitude", "[audio]\namplitude = 2.0"},
		{"phase", "[meter]\nphase_cycles = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Audio.WAV = "in.wav"
	data, err := cfg.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	back, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "manageaudio"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manageaudio", "config.toml"), []byte("[loop]\nhz = 250\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Loop.Hz)
	assert.Equal(t, 250, cfg.LoopConfig().Hz)
}
