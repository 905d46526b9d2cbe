package domains

import (
	"fmt"
	"math"
)

// FrequencyDomain is a uniform frequency grid [0, FMax] with spacing
// DeltaF. Bins below FMin are retained in the layout but carry no signal
// content; UpdateComplex zeroes them and UpdateReal fills them with the
// configured low value. This matches the layout the inference model was
// trained against.
type FrequencyDomain struct {
	FMin   float64
	FMax   float64
	DeltaF float64

	// WindowFactor is the power loss of the analysis window, carried from
	// the model metadata for consumers that whiten against the domain's
	// noise level. Data conversion never applies it: measured ASDs and
	// windowed strain are kept in the same convention the model was
	// trained with.
	WindowFactor float64
}

// NewFrequencyDomain validates the grid parameters.
func NewFrequencyDomain(fMin, fMax, deltaF, windowFactor float64) (*FrequencyDomain, error) {
	if deltaF <= 0 {
		return nil, fmt.Errorf("delta_f must be positive, got %v", deltaF)
	}
	if fMax <= fMin || fMin < 0 {
		return nil, fmt.Errorf("invalid frequency range [%v, %v]", fMin, fMax)
	}
	return &FrequencyDomain{
		FMin:         fMin,
		FMax:         fMax,
		DeltaF:       deltaF,
		WindowFactor: windowFactor,
	}, nil
}

// Kind implements Domain.
func (d *FrequencyDomain) Kind() Kind { return KindFrequency }

// NoiseStd is the standard deviation of whitened noise per bin,
// sqrt(WindowFactor / (4 DeltaF)). Models trained on this domain draw
// noise at this level.
func (d *FrequencyDomain) NoiseStd() float64 {
	return math.Sqrt(d.WindowFactor / (4 * d.DeltaF))
}

// Size is the number of bins from DC to FMax inclusive.
func (d *FrequencyDomain) Size() int {
	return int(d.FMax/d.DeltaF) + 1
}

// MinIndex is the first bin at or above FMin.
func (d *FrequencyDomain) MinIndex() int {
	return int(d.FMin / d.DeltaF)
}

// SampleFrequencies implements Domain.
func (d *FrequencyDomain) SampleFrequencies() []float64 {
	freqs := make([]float64, d.Size())
	for i := range freqs {
		freqs[i] = float64(i) * d.DeltaF
	}
	return freqs
}

// Duration is the time-domain segment length implied by the grid spacing.
func (d *FrequencyDomain) Duration() float64 {
	return 1 / d.DeltaF
}

// UpdateComplex reformats a frequency series starting at DC into the
// domain's native layout: bins above FMax are truncated, missing bins are
// zero-padded and bins below FMin are zeroed.
func (d *FrequencyDomain) UpdateComplex(data []complex128) []complex128 {
	out := make([]complex128, d.Size())
	copy(out, data)
	for i := 0; i < d.MinIndex() && i < len(out); i++ {
		out[i] = 0
	}
	return out
}

// UpdateReal reformats a real-valued series (an ASD) into the native
// layout with a floor clamp: every value below lowValue, every missing
// bin and every bin below FMin becomes exactly lowValue. The clamp keeps
// downstream whitening away from division by near-zero.
func (d *FrequencyDomain) UpdateReal(data []float64, lowValue float64) []float64 {
	out := make([]float64, d.Size())
	for i := range out {
		if i < len(data) && data[i] > lowValue {
			out[i] = data[i]
		} else {
			out[i] = lowValue
		}
	}
	for i := 0; i < d.MinIndex() && i < len(out); i++ {
		out[i] = lowValue
	}
	return out
}
