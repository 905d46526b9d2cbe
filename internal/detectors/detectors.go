// Package detectors carries the interferometer network geometry and the
// geometric transforms built on it: signal arrival-time differences and
// antenna-pattern projection of polarized waveforms onto each detector.
package detectors

import (
	"fmt"
	"math"

	"gwprep/internal/skypos"
)

// SpeedOfLight in m/s.
const SpeedOfLight = 299792458.0

// Interferometer describes one detector: Earth-fixed vertex position and
// arm orientations, from which the response tensor follows.
type Interferometer struct {
	Name   string
	Vertex [3]float64 // ECEF coordinates in meters
	XArm   [3]float64 // unit vector along the x arm
	YArm   [3]float64 // unit vector along the y arm
}

var catalog = map[string]Interferometer{
	"H1": {
		Name:   "H1",
		Vertex: [3]float64{-2.16141492636e6, -3.83469517889e6, 4.60035022664e6},
		XArm:   [3]float64{-0.22389266154, 0.79983062746, 0.55690487831},
		YArm:   [3]float64{-0.91397818574, 0.02609403989, -0.40492342125},
	},
	"L1": {
		Name:   "L1",
		Vertex: [3]float64{-7.42760447238e4, -5.49628371971e6, 3.22425701744e6},
		XArm:   [3]float64{-0.95457412153, -0.14158077340, -0.26218911324},
		YArm:   [3]float64{0.29774156894, -0.48791033647, -0.82054461286},
	},
	"V1": {
		Name:   "V1",
		Vertex: [3]float64{4.54637409900e6, 8.42989697626e5, 4.37857696241e6},
		XArm:   [3]float64{-0.70045821479, 0.20848948619, 0.68256166277},
		YArm:   [3]float64{-0.05379255368, -0.96908180549, 0.24080451708},
	},
}

// ByName looks up a detector by its two-character designation.
func ByName(name string) (*Interferometer, error) {
	ifo, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown detector %q", name)
	}
	return &ifo, nil
}

// Network resolves a list of detector names.
func Network(names []string) ([]*Interferometer, error) {
	ifos := make([]*Interferometer, 0, len(names))
	for _, name := range names {
		ifo, err := ByName(name)
		if err != nil {
			return nil, err
		}
		ifos = append(ifos, ifo)
	}
	return ifos, nil
}

// response returns the detector response tensor (x⊗x - y⊗y)/2.
func (ifo *Interferometer) response() [3][3]float64 {
	var d [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d[i][j] = (ifo.XArm[i]*ifo.XArm[j] - ifo.YArm[i]*ifo.YArm[j]) / 2
		}
	}
	return d
}

// AntennaPattern returns the plus and cross response factors for a source
// at (ra, dec) with polarization angle psi, evaluated at gpsTime.
func (ifo *Interferometer) AntennaPattern(ra, dec, psi, gpsTime float64) (fplus, fcross float64) {
	gha := skypos.GreenwichMeanSiderealTime(gpsTime) - ra

	cosGha, sinGha := math.Cos(gha), math.Sin(gha)
	cosDec, sinDec := math.Cos(dec), math.Sin(dec)
	cosPsi, sinPsi := math.Cos(psi), math.Sin(psi)

	// Polarization basis vectors in Earth-fixed coordinates.
	x := [3]float64{
		-cosPsi*sinGha - sinPsi*cosGha*sinDec,
		-cosPsi*cosGha + sinPsi*sinGha*sinDec,
		sinPsi * cosDec,
	}
	y := [3]float64{
		sinPsi*sinGha - cosPsi*cosGha*sinDec,
		sinPsi*cosGha + cosPsi*sinGha*sinDec,
		cosPsi * cosDec,
	}

	d := ifo.response()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			fplus += x[i]*d[i][j]*x[j] - y[i]*d[i][j]*y[j]
			fcross += x[i]*d[i][j]*y[j] + y[i]*d[i][j]*x[j]
		}
	}
	return fplus, fcross
}

// TimeDelayFromGeocenter returns the arrival-time difference in seconds
// between this detector and the geocenter for a signal from (ra, dec) at
// gpsTime. Positive values mean the wavefront reaches the detector after
// the geocenter.
func (ifo *Interferometer) TimeDelayFromGeocenter(ra, dec, gpsTime float64) float64 {
	gha := skypos.GreenwichMeanSiderealTime(gpsTime) - ra

	// Unit vector from the geocenter toward the source.
	n := [3]float64{
		math.Cos(dec) * math.Cos(gha),
		-math.Cos(dec) * math.Sin(gha),
		math.Sin(dec),
	}

	dot := ifo.Vertex[0]*n[0] + ifo.Vertex[1]*n[1] + ifo.Vertex[2]*n[2]
	return -dot / SpeedOfLight
}
