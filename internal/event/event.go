// Package event defines the value types that flow through the data
// preparation pipeline: raw detector data, acquisition settings, and the
// frequency-domain output consumed by the inference model.
package event

import (
	"fmt"
	"strconv"
)

// ID converts an event GPS time into its cache key. The stringified GPS
// timestamp keys the event dataset store.
func ID(gpsTime float64) string {
	return strconv.FormatFloat(gpsTime, 'f', -1, 64)
}

// WindowSpec describes the analysis window applied to each strain segment
// before the frequency-domain transform. Values come verbatim from the
// model metadata's training-data section.
type WindowSpec struct {
	Type       string  `yaml:"type" json:"type"`         // "tukey" or "hann"
	Duration   float64 `yaml:"T" json:"T"`               // segment length in seconds
	SampleRate float64 `yaml:"f_s" json:"f_s"`           // samples per second
	RollOff    float64 `yaml:"roll_off" json:"roll_off"` // tukey taper duration in seconds
}

// Alpha returns the Tukey shape parameter for the window: the fraction of
// the segment covered by the cosine tapers at both ends.
func (w WindowSpec) Alpha() float64 {
	if w.Duration <= 0 {
		return 0
	}
	return 2 * w.RollOff / w.Duration
}

// Samples returns the window length in samples.
func (w WindowSpec) Samples() int {
	return int(w.Duration * w.SampleRate)
}

// Settings is the flat acquisition/conversion settings structure built once
// per request from the model metadata. It is consumed by both the raw data
// loader and the domain converter and never mutated after construction.
type Settings struct {
	Window      WindowSpec `json:"window"`
	Detectors   []string   `json:"detectors"`
	TimeSegment float64    `json:"time_segment"` // analysis segment length in seconds
	TimePSD     float64    `json:"time_psd"`     // PSD estimation duration in seconds
	TimeBuffer  float64    `json:"time_buffer"`  // time after the event inside the segment
	SampleRate  float64    `json:"f_s"`
}

// Compatible reports whether two settings describe the same acquisition.
// A cached payload is only reused when its stored settings snapshot is
// compatible with the requested one.
func (s Settings) Compatible(other Settings) bool {
	if s.Window != other.Window ||
		s.TimeSegment != other.TimeSegment ||
		s.TimePSD != other.TimePSD ||
		s.TimeBuffer != other.TimeBuffer ||
		s.SampleRate != other.SampleRate {
		return false
	}
	if len(s.Detectors) != len(other.Detectors) {
		return false
	}
	for i, det := range s.Detectors {
		if other.Detectors[i] != det {
			return false
		}
	}
	return true
}

// Data holds the raw event payload: per-detector time-domain strain and the
// per-detector power spectral density estimated around the event.
type Data struct {
	Strain map[string][]float64 `json:"strain"`
	PSD    map[string][]float64 `json:"psd"`
}

// Validate checks the detector-subset invariant: every strain and PSD key
// must appear in the configured detector list.
func (d *Data) Validate(detectors []string) error {
	known := make(map[string]bool, len(detectors))
	for _, det := range detectors {
		known[det] = true
	}
	for det := range d.Strain {
		if !known[det] {
			return fmt.Errorf("strain contains unknown detector %q", det)
		}
	}
	for det := range d.PSD {
		if !known[det] {
			return fmt.Errorf("psd contains unknown detector %q", det)
		}
	}
	return nil
}

// DomainData is the converter output: per-detector frequency-domain strain
// and amplitude spectral densities laid out in the domain's native binning.
type DomainData struct {
	Waveform map[string][]complex128
	ASDs     map[string][]float64
}
