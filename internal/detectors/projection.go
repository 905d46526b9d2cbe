package detectors

import (
	"gwprep/internal/domains"
	"gwprep/internal/dsp"
)

// ExtrinsicParameters are the sky-position and orientation parameters a
// waveform is projected with. GeocentTime is the event time relative to
// the segment reference time.
type ExtrinsicParameters struct {
	RA          float64
	Dec         float64
	Psi         float64
	GeocentTime float64
}

// PolarizedWaveform holds the plus and cross polarizations of a source
// waveform in the frequency domain, sampled on a uniform grid from DC.
type PolarizedWaveform struct {
	HPlus  []complex128
	HCross []complex128
}

// DetectorTimes computes the signal arrival time at each detector relative
// to the segment reference time: the geocenter time offset plus the
// geometric delay evaluated at the reference epoch. Models are trained
// holding the detector geometry fixed at refTime, so delays use refTime
// rather than the event time.
func DetectorTimes(ifos []*Interferometer, p ExtrinsicParameters, refTime float64) map[string]float64 {
	times := make(map[string]float64, len(ifos))
	for _, ifo := range ifos {
		delay := ifo.TimeDelayFromGeocenter(p.RA, p.Dec, refTime)
		times[ifo.Name] = p.GeocentTime + delay
	}
	return times
}

// Project maps a polarized waveform onto each detector in the network:
// strain = F₊h₊ + F×h×, time-shifted to the detector's arrival time and
// reformatted into the domain's native layout. times must contain an entry
// per detector, as produced by DetectorTimes.
func Project(ifos []*Interferometer, wf PolarizedWaveform, p ExtrinsicParameters, times map[string]float64, domain *domains.FrequencyDomain, refTime float64) map[string][]complex128 {
	out := make(map[string][]complex128, len(ifos))
	for _, ifo := range ifos {
		fplus, fcross := ifo.AntennaPattern(p.RA, p.Dec, p.Psi, refTime)

		n := len(wf.HPlus)
		strain := make([]complex128, n)
		for k := 0; k < n; k++ {
			strain[k] = complex(fplus, 0)*wf.HPlus[k] + complex(fcross, 0)*wf.HCross[k]
		}

		strain = dsp.CyclicTimeShift(strain, domain.DeltaF, times[ifo.Name])
		out[ifo.Name] = domain.UpdateComplex(strain)
	}
	return out
}
