// Package skypos corrects an inferred right ascension for the sidereal
// rotation between the event time and the fixed reference time the model's
// sky projections were trained against. The correction is the difference
// in Greenwich apparent sidereal time between the two epochs.
package skypos

import (
	"math"

	"github.com/soniakeys/meeus/v3/sidereal"
)

// DefaultReferenceTime is the GPS time of GW150914, the reference epoch
// commonly baked into trained models.
const DefaultReferenceTime = 1126259462.391

// Correct reinterprets a right ascension (radians) inferred at the
// reference epoch as a sky position at the event epoch. The result is
// reduced to [0, 2π).
func Correct(ra, tEvent, tRef float64) float64 {
	delta := GreenwichApparentSiderealTime(tEvent) - GreenwichApparentSiderealTime(tRef)
	corrected := math.Mod(ra+delta, 2*math.Pi)
	if corrected < 0 {
		corrected += 2 * math.Pi
	}
	return corrected
}

// GreenwichApparentSiderealTime returns GAST in radians for a GPS time:
// the mean sidereal time plus the equation of the equinoxes.
func GreenwichApparentSiderealTime(gpsTime float64) float64 {
	return normalize(sidereal.Apparent(julianDate(gpsTime)).Angle().Rad())
}

// GreenwichMeanSiderealTime returns GMST in radians for a GPS time.
func GreenwichMeanSiderealTime(gpsTime float64) float64 {
	return normalize(sidereal.Mean(julianDate(gpsTime)).Angle().Rad())
}

// gpsEpochUnix is 1980-01-06T00:00:00 UTC as a Unix timestamp.
const gpsEpochUnix = 315964800

// leapGPS lists the GPS times at which a leap second was inserted into
// UTC, through 2017-01-01. GPS time does not observe leap seconds, so UTC
// falls one further second behind at each entry.
var leapGPS = []float64{
	46828800,   // 1981-07-01
	78364801,   // 1982-07-01
	109900802,  // 1983-07-01
	173059203,  // 1985-07-01
	252028804,  // 1988-01-01
	315187205,  // 1990-01-01
	346723206,  // 1991-01-01
	393984007,  // 1992-07-01
	425520008,  // 1993-07-01
	457056009,  // 1994-07-01
	504489610,  // 1996-01-01
	551750411,  // 1997-07-01
	599184012,  // 1999-01-01
	820108813,  // 2006-01-01
	914803214,  // 2009-01-01
	1025136015, // 2012-07-01
	1119744016, // 2015-07-01
	1167264017, // 2017-01-01
}

// gpsToUnix converts GPS seconds to Unix UTC seconds, accounting for the
// leap seconds inserted since the GPS epoch.
func gpsToUnix(gpsTime float64) float64 {
	leaps := 0
	for _, t := range leapGPS {
		if gpsTime >= t {
			leaps++
		}
	}
	return gpsEpochUnix + gpsTime - float64(leaps)
}

// julianDate converts a GPS time to the Julian date of its UTC instant.
// UT1 is approximated by UTC; the sub-second Earth orientation correction
// is negligible for a sidereal-time difference.
func julianDate(gpsTime float64) float64 {
	return gpsToUnix(gpsTime)/86400.0 + 2440587.5
}

func normalize(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
