package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// N is the capture length and transform size.
const N = 64

// Bins is the number of magnitude bins produced per analysis.
const Bins = N / 2

// Spectrum holds the magnitudes of one analysis. Bin 0 is always zero.
type Spectrum [Bins]uint16

// Analyzer computes the magnitude spectrum of a capture buffer.
type Analyzer struct {
	fft   *fourier.FFT
	in    []float64
	coeff []complex128
}

// NewAnalyzer allocates the transform buffers once.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		fft:   fourier.NewFFT(N),
		in:    make([]float64, N),
		coeff: make([]complex128, N/2+1),
	}
}

// Analyze transforms samples and returns the amplitude of each bin scaled to
// the sample range (2|X|/N), saturated to 16 bits. Bin 0 (DC) is cleared.
func (a *Analyzer) Analyze(samples *[N]int16) Spectrum {
	var out Spectrum
	if a == nil || samples == nil {
		return out
	}
	for i, s := range samples {
		a.in[i] = float64(s)
	}
	a.coeff = a.fft.Coefficients(a.coeff, a.in)

	for i := 1; i < Bins; i++ {
		m := cmplx.Abs(a.coeff[i]) * 2 / N
		if m > math.MaxUint16 {
			m = math.MaxUint16
		}
		out[i] = uint16(m)
	}
	out[0] = 0
	return out
}

// Group sums runs of size bins, starting at bin 0. A trailing partial run is dropped.
func (s *Spectrum) Group(size int) []uint32 {
	if size <= 0 {
		return nil
	}
	out := make([]uint32, 0, Bins/size)
	for i := 0; i+size <= Bins; i += size {
		var sum uint32
		for _, v := range s[i : i+size] {
			sum += uint32(v)
		}
		out = append(out, sum)
	}
	return out
}
