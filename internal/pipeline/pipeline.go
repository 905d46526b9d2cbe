// Package pipeline wires the data preparation stages together: parsing
// acquisition settings out of model metadata, loading raw event data and
// converting it into the model's domain representation.
package pipeline

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"gwprep/internal/acquisition"
	"gwprep/internal/cache"
	"gwprep/internal/config"
	"gwprep/internal/domains"
	"gwprep/internal/dsp"
	"gwprep/internal/event"
	"gwprep/internal/logging"
)

// DefaultASDFloor is the minimum amplitude spectral density value. ASD
// bins below it are replaced by exactly this value so downstream
// whitening never divides by near-zero.
const DefaultASDFloor = 1.0

// ParseSettings maps model metadata plus the caller-supplied PSD duration
// and time buffer into the flat settings structure shared by the loader
// and the converter. Only frequency-domain models are supported.
func ParseSettings(md *config.ModelMetadata, timePSD, timeBuffer float64) (event.Settings, error) {
	domainType := md.DatasetSettings.Domain.Type
	if domains.Kind(domainType) != domains.KindFrequency {
		return event.Settings{}, &domains.NotImplementedError{Kind: domainType}
	}

	data := md.TrainSettings.Data
	return event.Settings{
		Window:      data.Window,
		Detectors:   data.Detectors,
		TimeSegment: data.Window.Duration,
		TimePSD:     timePSD,
		TimeBuffer:  timeBuffer,
		SampleRate:  data.Window.SampleRate,
	}, nil
}

// ToDomain converts raw event data into the domain representation:
// per-detector strain is windowed, Fourier transformed and cyclically
// shifted by the buffer duration before being laid out on the domain
// grid; PSDs become floor-clamped amplitude spectral densities. The
// conversion is deterministic in its inputs.
func ToDomain(raw *event.Data, settings event.Settings, domain domains.Domain, asdFloor float64) (*event.DomainData, error) {
	fd, ok := domain.(*domains.FrequencyDomain)
	if !ok {
		return nil, &domains.NotImplementedError{Kind: string(domain.Kind())}
	}

	win, err := dsp.Window(settings.Window)
	if err != nil {
		return nil, err
	}

	out := &event.DomainData{
		Waveform: make(map[string][]complex128, len(raw.Strain)),
		ASDs:     make(map[string][]float64, len(raw.PSD)),
	}

	dt := 1 / settings.SampleRate
	for det, strain := range raw.Strain {
		if len(strain) != len(win) {
			return nil, fmt.Errorf("detector %s strain has %d samples, window has %d",
				det, len(strain), len(win))
		}
		windowed := make([]float64, len(strain))
		for i, v := range strain {
			windowed[i] = v * win[i]
		}

		coeffs := dsp.TimeToFrequency(windowed, dt)
		// The series' own resolution, 1/T_segment; the domain grid may be
		// coarser only in range, never in spacing.
		seriesDeltaF := 1 / (dt * float64(len(strain)))
		coeffs = dsp.CyclicTimeShift(coeffs, seriesDeltaF, settings.TimeBuffer)

		out.Waveform[det] = fd.UpdateComplex(coeffs)
	}

	for det, psd := range raw.PSD {
		asd := make([]float64, len(psd))
		for i, v := range psd {
			asd[i] = math.Sqrt(v)
		}
		out.ASDs[det] = fd.UpdateReal(asd, asdFloor)
	}

	logging.Get(logging.CategoryConvert).Debug("converted to frequency domain",
		zap.Int("detectors", len(out.Waveform)),
		zap.Int("bins", fd.Size()),
		zap.Float64("time_shift", settings.TimeBuffer))
	return out, nil
}

// GetDomainData runs the full preparation sequence for one event: parse
// settings, load raw data (cache-or-download), build the domain object
// and convert. store and downloader may be nil; a nil downloader falls
// back to the open-data client.
func GetDomainData(ctx context.Context, md *config.ModelMetadata, gpsTime, timePSD, timeBuffer float64, store *cache.EventStore, downloader acquisition.Downloader) (*event.DomainData, error) {
	log := logging.Get(logging.CategoryPipeline)

	settings, err := ParseSettings(md, timePSD, timeBuffer)
	if err != nil {
		return nil, err
	}

	if downloader == nil {
		downloader = acquisition.NewGWOSCClient()
	}
	raw, err := acquisition.NewLoader(downloader, store).Load(ctx, gpsTime, settings)
	if err != nil {
		return nil, err
	}

	domain, err := domains.FromMetadata(md)
	if err != nil {
		return nil, err
	}

	data, err := ToDomain(raw, settings, domain, DefaultASDFloor)
	if err != nil {
		return nil, err
	}

	log.Info("domain data prepared",
		zap.String("event", event.ID(gpsTime)),
		zap.Int("detectors", len(data.Waveform)),
		zap.Int("bins", domain.Size()))
	return data, nil
}
