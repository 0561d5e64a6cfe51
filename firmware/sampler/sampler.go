// Package sampler fills capture buffers from the analog input, one sample per
// conversion-complete interrupt, and alternates the stereo channel every full
// buffer.
//
// The conversion handler and the main loop share the buffer being filled and
// its index. The handler owns them while a cycle is in progress; the main loop
// takes them over once it observes the in-progress flag cleared. Two buffers
// are kept so the next cycle can be armed before the finished one is analyzed.
package sampler

import (
	"sync/atomic"

	"manageaudio/firmware/dsp"
	"manageaudio/hal"
)

// Buffer is one capture cycle of signed samples.
type Buffer [dsp.N]int16

// Capture is a finished capture cycle.
//
// Samples stays untouched until the next successful Poll.
type Capture struct {
	Samples *Buffer
	Channel dsp.Channel
}

// Sampler drives an ADC through capture cycles.
type Sampler struct {
	adc hal.ADC

	bufs  [2]Buffer
	fill  int // buffer the handler writes
	index int

	armed   bool
	channel dsp.Channel

	started     atomic.Bool
	busy        atomic.Bool
	fault       atomic.Bool
	conversions atomic.Uint32
}

// New binds a sampler to adc and installs its conversion handler.
func New(adc hal.ADC) *Sampler {
	s := &Sampler{adc: adc}
	if adc != nil {
		adc.SetHandler(s.handle)
	}
	return s
}

// Start arms the first capture cycle on the left channel.
func (s *Sampler) Start() {
	if s == nil || s.adc == nil || s.armed {
		return
	}
	s.channel = dsp.Left
	s.started.Store(true)
	s.arm()
}

func (s *Sampler) arm() {
	s.index = 0
	s.armed = true
	s.adc.Select(int(s.channel))
	s.busy.Store(true)
	s.adc.Start()
}

// handle runs in interrupt context: store, advance, re-arm unless full.
// Conversions before the first Start belong to a previous owner of the ADC
// and are dropped.
func (s *Sampler) handle(raw uint16) {
	if !s.started.Load() {
		return
	}
	if !s.busy.Load() {
		s.fault.Store(true)
		return
	}
	// Conversions are left-adjusted; re-center them around zero.
	s.bufs[s.fill][s.index] = int16(raw - 0x8000)
	s.index++
	s.conversions.Add(1)
	if s.index == dsp.N {
		s.busy.Store(false)
		return
	}
	s.adc.Start()
}

// Busy reports whether a capture cycle is in progress.
func (s *Sampler) Busy() bool {
	return s != nil && s.busy.Load()
}

// Poll hands over the finished cycle, if any, and re-arms sampling on the
// other channel into the spare buffer.
func (s *Sampler) Poll() (Capture, bool) {
	if s == nil || !s.armed || s.busy.Load() {
		return Capture{}, false
	}

	done := Capture{Samples: &s.bufs[s.fill], Channel: s.channel}
	s.fill ^= 1
	s.channel = s.channel.Other()
	s.arm()
	return done, true
}

// Fault reports whether a conversion completed after Start while no cycle
// was in progress.
func (s *Sampler) Fault() bool {
	return s != nil && s.fault.Load()
}

// Conversions returns the number of samples stored since boot.
func (s *Sampler) Conversions() uint32 {
	if s == nil {
		return 0
	}
	return s.conversions.Load()
}
