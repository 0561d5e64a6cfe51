// Package settings persists the user's choices in a small checksummed flash
// record.
package settings

import (
	"errors"
	"fmt"

	"manageaudio/firmware/render"
)

// Settings are the values kept across power cycles.
type Settings struct {
	Brightness uint8
	Source     uint8
	Meter      render.MeterType
}

// Defaults is used when no valid record exists.
func Defaults() Settings {
	return Settings{Brightness: 0, Source: 0, Meter: render.MeterFFT}
}

func (s Settings) String() string {
	return fmt.Sprintf("brightness=%d source=%d meter=%d", s.Brightness, s.Source, s.Meter)
}

// ErrCorrupt reports a record with a bad magic, version or checksum.
var ErrCorrupt = errors.New("settings: corrupt record")
