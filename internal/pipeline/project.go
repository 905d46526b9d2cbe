package pipeline

import (
	"fmt"

	"gwprep/internal/config"
	"gwprep/internal/detectors"
	"gwprep/internal/domains"
	"gwprep/internal/skypos"
)

// ProjectWaveform maps a frequency-domain source waveform onto the
// detector network named in the model metadata. Antenna patterns and
// geometric delays are evaluated at the reference epoch the model was
// trained against (ref_time in the metadata, falling back to the default
// reference time when unset), and the projected strain is laid out on the
// model's domain grid.
func ProjectWaveform(md *config.ModelMetadata, wf detectors.PolarizedWaveform, p detectors.ExtrinsicParameters) (map[string][]complex128, error) {
	domain, err := domains.FromMetadata(md)
	if err != nil {
		return nil, err
	}
	fd, ok := domain.(*domains.FrequencyDomain)
	if !ok {
		return nil, &domains.NotImplementedError{Kind: string(domain.Kind())}
	}

	if len(wf.HPlus) != len(wf.HCross) {
		return nil, fmt.Errorf("polarizations differ in length: %d vs %d",
			len(wf.HPlus), len(wf.HCross))
	}

	ifos, err := detectors.Network(md.TrainSettings.Data.Detectors)
	if err != nil {
		return nil, err
	}

	refTime := md.TrainSettings.Data.RefTime
	if refTime == 0 {
		refTime = skypos.DefaultReferenceTime
	}
	times := detectors.DetectorTimes(ifos, p, refTime)
	return detectors.Project(ifos, wf, p, times, fd, refTime), nil
}
