// Package dsp implements the signal-processing primitives used by the
// domain converter: analysis windows, real FFTs with the continuous-
// transform scaling, cyclic time shifts and Welch PSD estimation.
package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"gwprep/internal/event"
)

// Window builds the sample-domain analysis window described by spec.
// Supported types are "tukey" (shape from the roll-off duration) and
// "hann".
func Window(spec event.WindowSpec) ([]float64, error) {
	n := spec.Samples()
	if n <= 0 {
		return nil, fmt.Errorf("window has no samples (T=%v, f_s=%v)", spec.Duration, spec.SampleRate)
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	switch spec.Type {
	case "tukey":
		return window.Tukey{Alpha: spec.Alpha()}.Transform(w), nil
	case "hann":
		return window.Hann(w), nil
	default:
		return nil, fmt.Errorf("unknown window type %q", spec.Type)
	}
}

// TimeToFrequency transforms a real time series sampled at interval dt
// into its one-sided frequency series, scaled by dt so that the result
// approximates the continuous Fourier transform. The output has
// len(strain)/2+1 bins spaced at 1/(len(strain)*dt) Hz.
func TimeToFrequency(strain []float64, dt float64) []complex128 {
	fft := fourier.NewFFT(len(strain))
	coeffs := fft.Coefficients(nil, strain)
	for i := range coeffs {
		coeffs[i] *= complex(dt, 0)
	}
	return coeffs
}

// FrequencyToTime inverts TimeToFrequency. The gonum inverse is
// unnormalized, so the round-trip scale 1/(n*dt) is applied here.
func FrequencyToTime(coeffs []complex128, dt float64) []float64 {
	n := 2 * (len(coeffs) - 1)
	fft := fourier.NewFFT(n)
	seq := fft.Sequence(nil, coeffs)
	scale := 1 / (float64(n) * dt)
	for i := range seq {
		seq[i] *= scale
	}
	return seq
}

// CyclicTimeShift rotates a frequency series by shift seconds: bin k is
// multiplied by exp(-2πi k Δf shift). In the time domain this moves the
// data forward cyclically, re-centering the event inside the segment
// without a discontinuity at the boundary.
func CyclicTimeShift(coeffs []complex128, deltaF, shift float64) []complex128 {
	out := make([]complex128, len(coeffs))
	for k, c := range coeffs {
		phase := -2 * math.Pi * float64(k) * deltaF * shift
		out[k] = c * cmplx.Exp(complex(0, phase))
	}
	return out
}

// WelchPSD estimates the one-sided power spectral density of strain
// sampled at fs Hz by averaging modified periodograms over consecutive
// non-overlapping segments of len(win) samples. The result has
// len(win)/2+1 bins spaced at fs/len(win) Hz.
func WelchPSD(strain []float64, fs float64, win []float64) ([]float64, error) {
	nseg := len(win)
	if nseg == 0 || len(strain) < nseg {
		return nil, fmt.Errorf("psd estimation needs at least %d samples, got %d", nseg, len(strain))
	}

	var sumw2 float64
	for _, v := range win {
		sumw2 += v * v
	}

	fft := fourier.NewFFT(nseg)
	bins := nseg/2 + 1
	psd := make([]float64, bins)
	buf := make([]float64, nseg)

	segments := 0
	for start := 0; start+nseg <= len(strain); start += nseg {
		for i := 0; i < nseg; i++ {
			buf[i] = strain[start+i] * win[i]
		}
		coeffs := fft.Coefficients(nil, buf)
		for k, c := range coeffs {
			p := 2 * (real(c)*real(c) + imag(c)*imag(c)) / (fs * sumw2)
			// DC and Nyquist have no mirror bin.
			if k == 0 || k == bins-1 {
				p /= 2
			}
			psd[k] += p
		}
		segments++
	}
	for k := range psd {
		psd[k] /= float64(segments)
	}
	return psd, nil
}
