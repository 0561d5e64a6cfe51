//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manageaudio/firmware/render"
	"manageaudio/firmware/settings"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWriteThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	out, err := execute(t, "--out", path, "-b", "3", "-s", "2", "-m", "vu-vert")
	require.NoError(t, err)
	assert.Contains(t, out, "brightness=3 source=2 meter=2")

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(defaultFlashSize), st.Size())

	ff, err := openFlashFile(path, defaultEraseSize)
	require.NoError(t, err)
	defer ff.Close()
	v, err := settings.NewStore(ff, 0, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{Brightness: 3, Source: 2, Meter: render.MeterHarrow}, v)

	out, err = execute(t, "--show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "meter=VU-Vert")
}

func TestShowBlankImageIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.img")
	ff, err := createFlashFile(path, 8192, 4096)
	require.NoError(t, err)
	require.NoError(t, ff.Close())

	_, err = execute(t, "--show", path)
	assert.True(t, settings.IsCorrupt(err))
}

func TestParseMeter(t *testing.T) {
	tests := []struct {
		in      string
		want    render.MeterType
		wantErr bool
	}{
		{"FFT", render.MeterFFT, false},
		{"vu-horiz", render.MeterVULines, false},
		{"2", render.MeterHarrow, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"bars", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMeter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBadGeometry(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--out", filepath.Join(dir, "a.img"), "--erase", "100")
	assert.Error(t, err)
	_, err = execute(t, "--out", filepath.Join(dir, "b.img"), "--size", "5000")
	assert.Error(t, err)
	_, err = execute(t, "--out", filepath.Join(dir, "c.img"), "-m", "nope")
	assert.Error(t, err)
}
