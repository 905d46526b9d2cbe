package detectors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwprep/internal/domains"
)

func testWaveform(n int) PolarizedWaveform {
	hp := make([]complex128, n)
	hc := make([]complex128, n)
	for k := range hp {
		hp[k] = complex(1/float64(k+1), 0.1)
		hc[k] = complex(0, -1/float64(k+1))
	}
	return PolarizedWaveform{HPlus: hp, HCross: hc}
}

func TestProject(t *testing.T) {
	domain, err := domains.NewFrequencyDomain(2, 16, 1, 1.0)
	require.NoError(t, err)

	ifos, err := Network([]string{"H1", "L1"})
	require.NoError(t, err)

	p := ExtrinsicParameters{RA: 0.9, Dec: 0.4, Psi: 1.1, GeocentTime: 0}
	wf := testWaveform(domain.Size())

	t.Run("output layout", func(t *testing.T) {
		times := DetectorTimes(ifos, p, refTime)
		strains := Project(ifos, wf, p, times, domain, refTime)

		require.Len(t, strains, 2)
		for name, strain := range strains {
			require.Len(t, strain, domain.Size(), name)
			// Bins below f_min carry no content.
			assert.Equal(t, complex128(0), strain[0], name)
			assert.Equal(t, complex128(0), strain[1], name)
		}
	})

	t.Run("zero shift reduces to an antenna-pattern combination", func(t *testing.T) {
		times := map[string]float64{"H1": 0, "L1": 0}
		strains := Project(ifos, wf, p, times, domain, refTime)

		for _, ifo := range ifos {
			fplus, fcross := ifo.AntennaPattern(p.RA, p.Dec, p.Psi, refTime)
			for k := domain.MinIndex(); k < domain.Size(); k++ {
				want := complex(fplus, 0)*wf.HPlus[k] + complex(fcross, 0)*wf.HCross[k]
				assert.InDelta(t, real(want), real(strains[ifo.Name][k]), 1e-12)
				assert.InDelta(t, imag(want), imag(strains[ifo.Name][k]), 1e-12)
			}
		}
	})

	t.Run("time shift preserves magnitude", func(t *testing.T) {
		unshifted := Project(ifos, wf, p, map[string]float64{"H1": 0, "L1": 0}, domain, refTime)
		shifted := Project(ifos, wf, p, map[string]float64{"H1": 0.007, "L1": -0.003}, domain, refTime)

		for name := range unshifted {
			for k := range unshifted[name] {
				a := unshifted[name][k]
				b := shifted[name][k]
				assert.InDelta(t,
					math.Hypot(real(a), imag(a)),
					math.Hypot(real(b), imag(b)),
					1e-12, "%s bin %d", name, k)
			}
		}
	})
}
