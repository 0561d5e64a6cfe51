//go:build !tinygo

package hal

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// wavSource loops a decoded WAV file, resampled to the conversion rate by
// nearest frame.
type wavSource struct {
	frames [][2]int16
	pos    float64
	step   float64
}

func loadWAV(path string, rate int) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("%s: missing format", path)
	}

	depth := int(d.BitDepth)
	if depth == 0 {
		depth = buf.SourceBitDepth
	}
	ch := buf.Format.NumChannels
	n := len(buf.Data) / ch
	if n == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}
	frames := make([][2]int16, n)
	for i := range frames {
		left := buf.Data[i*ch]
		right := left
		if ch > 1 {
			right = buf.Data[i*ch+1]
		}
		frames[i] = [2]int16{to16(left, depth), to16(right, depth)}
	}

	srcRate := buf.Format.SampleRate
	if srcRate <= 0 {
		srcRate = rate
	}
	return &wavSource{frames: frames, step: float64(srcRate) / float64(rate)}, nil
}

// to16 rescales a PCM sample of the given bit depth to signed 16 bits.
func to16(v, depth int) int16 {
	switch {
	case depth == 8:
		// 8-bit WAV is unsigned.
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	case depth > 0 && depth < 16:
		return int16(v << (16 - depth))
	default:
		return int16(v)
	}
}

func (s *wavSource) next(channel int) uint16 {
	i := int(s.pos)
	if i >= len(s.frames) {
		s.pos = math.Mod(s.pos, float64(len(s.frames)))
		i = int(s.pos)
	}
	s.pos += s.step
	return uint16(s.frames[i][channel&1]) ^ 0x8000
}
