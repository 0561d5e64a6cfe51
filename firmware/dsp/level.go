package dsp

// RMS returns the root mean square of samples about mid-scale. Samples are
// already centred, so mid-scale is zero.
func RMS(samples []int16) uint32 {
	if len(samples) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range samples {
		d := int64(s)
		sum += uint64(d * d)
	}
	return usqrt(sum / uint64(len(samples)))
}

// usqrt is the integer square root, rounded down.
func usqrt(x uint64) uint32 {
	if x == 0 {
		return 0
	}
	var res uint64
	bit := uint64(1) << 62
	for bit > x {
		bit >>= 2
	}
	for bit != 0 {
		if x >= res+bit {
			x -= res + bit
			res = res>>1 + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	return uint32(res)
}

// LowPass is an exponential moving average with a fixed weight.
//
// Each update moves the output towards the input by weight/(weight+1) of the
// distance, computed in thousandths.
type LowPass struct {
	out    uint32
	weight uint32
	gain   int64 // weight/(weight+1) in thousandths
}

// NewLowPass returns a filter with the given weight. A zero weight never moves.
func NewLowPass(weight uint32) LowPass {
	return LowPass{weight: weight, gain: int64(weight) * 1000 / (int64(weight) + 1)}
}

// Weight returns the smoothing weight fixed at construction.
func (f *LowPass) Weight() uint32 { return f.weight }

// Output returns the smoothed value.
func (f *LowPass) Output() uint32 { return f.out }

// Update feeds one raw value and returns the new output. The output never
// passes the input, and a constant input is reached exactly.
func (f *LowPass) Update(raw uint32) uint32 {
	if f == nil {
		return raw
	}
	delta := int64(raw) - int64(f.out)
	step := delta * f.gain / 1000
	if step == 0 && delta != 0 && f.gain > 0 {
		if delta > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	f.out = uint32(int64(f.out) + step)
	return f.out
}

// Channel selects one side of the stereo input.
type Channel uint8

const (
	Left Channel = iota
	Right
)

func (c Channel) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// Other returns the opposite channel.
func (c Channel) Other() Channel {
	if c == Left {
		return Right
	}
	return Left
}

// Levels is the smoothed envelope of both channels.
type Levels struct {
	Left  uint32
	Right uint32
}

// LevelMeter turns capture buffers into smoothed channel levels. Each buffer
// updates exactly one channel.
type LevelMeter struct {
	filters [2]LowPass
	raw     [2]uint32
}

// DefaultWeight smooths with 1/2 of the distance per capture cycle.
const DefaultWeight = 1

// NewLevelMeter returns a meter whose channel filters use the given weights.
func NewLevelMeter(leftWeight, rightWeight uint32) *LevelMeter {
	return &LevelMeter{filters: [2]LowPass{NewLowPass(leftWeight), NewLowPass(rightWeight)}}
}

// Update computes the RMS of samples and feeds it to ch's filter.
func (m *LevelMeter) Update(ch Channel, samples []int16) {
	if m == nil || ch > Right {
		return
	}
	m.raw[ch] = RMS(samples)
	m.filters[ch].Update(m.raw[ch])
}

// Levels returns the filtered levels of both channels.
func (m *LevelMeter) Levels() Levels {
	if m == nil {
		return Levels{}
	}
	return Levels{Left: m.filters[Left].Output(), Right: m.filters[Right].Output()}
}

// Raw returns the unfiltered RMS last computed for ch.
func (m *LevelMeter) Raw(ch Channel) uint32 {
	if m == nil || ch > Right {
		return 0
	}
	return m.raw[ch]
}
