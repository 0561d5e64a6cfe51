//go:build !tinygo

package hal

import (
	"math"
	"sync"
	"time"
)

// HostAudioConfig selects the signal fed to the simulated ADC.
type HostAudioConfig struct {
	// SampleRate is the conversion rate in Hz.
	SampleRate int
	// WAVPath, when set, loops a WAV file instead of the synthetic tone.
	WAVPath string
	// ToneHz is the left tone frequency; the right channel runs a fifth above.
	ToneHz float64
	// Amplitude is the peak tone level as a fraction of full scale.
	Amplitude float64
}

func DefaultHostAudioConfig() HostAudioConfig {
	return HostAudioConfig{
		SampleRate: 38400,
		ToneHz:     2400,
		Amplitude:  0.6,
	}
}

// sampleSource yields left-adjusted unsigned conversions, advancing one
// conversion per call.
type sampleSource interface {
	next(channel int) uint16
}

func newSampleSource(cfg HostAudioConfig) (sampleSource, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultHostAudioConfig().SampleRate
	}
	if cfg.WAVPath != "" {
		return loadWAV(cfg.WAVPath, cfg.SampleRate)
	}
	return newToneSource(cfg), nil
}

// toneSource is a stereo sine whose loudness swells and fades so the meters
// have something to show.
type toneSource struct {
	step   [2]float64
	swell  float64
	amp    float64
	t      float64
	phases [2]float64
}

func newToneSource(cfg HostAudioConfig) *toneSource {
	def := DefaultHostAudioConfig()
	if cfg.ToneHz <= 0 {
		cfg.ToneHz = def.ToneHz
	}
	if cfg.Amplitude <= 0 || cfg.Amplitude > 1 {
		cfg.Amplitude = def.Amplitude
	}
	rate := float64(cfg.SampleRate)
	return &toneSource{
		step:  [2]float64{2 * math.Pi * cfg.ToneHz / rate, 2 * math.Pi * cfg.ToneHz * 1.5 / rate},
		swell: 2 * math.Pi * 0.25 / rate,
		amp:   cfg.Amplitude * 0x7FFF,
	}
}

func (s *toneSource) next(channel int) uint16 {
	ch := channel & 1
	env := 0.5 + 0.5*math.Sin(s.t+float64(ch)*math.Pi/2)
	v := s.amp * env * math.Sin(s.phases[ch])
	s.phases[0] += s.step[0]
	s.phases[1] += s.step[1]
	s.t += s.swell
	return uint16(int32(0x8000) + int32(v))
}

// hostADC delivers conversions from a paced goroutine standing in for the
// conversion-complete interrupt.
type hostADC struct {
	mu      sync.Mutex
	src     sampleSource
	rate    int
	handler func(uint16)
	channel int
	pending bool
	// calling is set while a handler runs; idle is signalled when it returns.
	// No conversion starts while a SetHandler is waiting.
	calling   bool
	replacing int
	idle      *sync.Cond

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newHostADC(src sampleSource, rate int) *hostADC {
	if rate <= 0 {
		rate = DefaultHostAudioConfig().SampleRate
	}
	a := &hostADC{src: src, rate: rate, stopCh: make(chan struct{})}
	a.idle = sync.NewCond(&a.mu)
	go a.run()
	return a
}

// SetHandler waits for a running handler to return, then installs fn and
// drops any conversion it started.
func (a *hostADC) SetHandler(fn func(uint16)) {
	a.mu.Lock()
	a.replacing++
	for a.calling {
		a.idle.Wait()
	}
	a.replacing--
	a.handler = fn
	a.pending = false
	a.mu.Unlock()
}

func (a *hostADC) Select(channel int) {
	a.mu.Lock()
	a.channel = channel
	a.mu.Unlock()
}

func (a *hostADC) Start() {
	a.mu.Lock()
	a.pending = true
	a.mu.Unlock()
}

func (a *hostADC) stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

func (a *hostADC) run() {
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	start := time.Now()
	var done uint64
	for {
		select {
		case <-a.stopCh:
			return
		case <-t.C:
		}
		due := uint64(time.Since(start).Seconds()*float64(a.rate)) - done
		for ; due > 0; due-- {
			if !a.convert() {
				// Idle converter: time passes without samples.
				done += due
				break
			}
			done++
		}
	}
}

// convert completes one pending conversion. The handler runs without the
// lock held since it may call Start.
func (a *hostADC) convert() bool {
	a.mu.Lock()
	if !a.pending || a.handler == nil || a.replacing > 0 {
		a.mu.Unlock()
		return false
	}
	a.pending = false
	v := a.src.next(a.channel)
	fn := a.handler
	a.calling = true
	a.mu.Unlock()

	fn(v)

	a.mu.Lock()
	a.calling = false
	a.idle.Broadcast()
	a.mu.Unlock()
	return true
}
