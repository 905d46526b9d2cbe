package acquisition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gwprep/internal/dsp"
	"gwprep/internal/event"
	"gwprep/internal/logging"
)

// DefaultBaseURL is the open strain-data service queried by GWOSCClient.
const DefaultBaseURL = "https://gwosc.org/api/v2"

// GWOSCClient downloads detector strain from an open-data timeseries
// endpoint and derives each detector's PSD from the data preceding the
// analysis segment.
type GWOSCClient struct {
	BaseURL string
	Client  *http.Client
	log     *zap.Logger
}

// NewGWOSCClient builds a client against DefaultBaseURL. The HTTP timeout
// is generous because strain segments run to megabytes.
func NewGWOSCClient() *GWOSCClient {
	return &GWOSCClient{
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Minute},
		log:     logging.Get(logging.CategoryAcquisition),
	}
}

// timeseriesResponse is the JSON payload of the timeseries endpoint.
type timeseriesResponse struct {
	Detector   string    `json:"detector"`
	GPSStart   float64   `json:"gps_start"`
	SampleRate float64   `json:"sample_rate"`
	Strain     []float64 `json:"strain"`
}

// Download implements Downloader. For each detector it fetches a single
// stretch covering the PSD estimation interval plus the analysis segment:
//
//	[t - T_psd - T_seg + T_buf, t + T_buf]
//
// The trailing T_seg seconds become the event strain; the preceding T_psd
// seconds feed the Welch PSD estimate.
func (c *GWOSCClient) Download(ctx context.Context, gpsTime float64, settings event.Settings) (*event.Data, error) {
	segmentStart := gpsTime - settings.TimeSegment + settings.TimeBuffer
	fetchStart := segmentStart - settings.TimePSD
	fetchDuration := settings.TimePSD + settings.TimeSegment

	win, err := dsp.Window(settings.Window)
	if err != nil {
		return nil, err
	}

	data := &event.Data{
		Strain: make(map[string][]float64, len(settings.Detectors)),
		PSD:    make(map[string][]float64, len(settings.Detectors)),
	}
	for _, det := range settings.Detectors {
		strain, err := c.fetchStrain(ctx, det, fetchStart, fetchDuration, settings.SampleRate)
		if err != nil {
			return nil, err
		}

		segSamples := int(settings.TimeSegment * settings.SampleRate)
		if len(strain) < segSamples {
			return nil, fmt.Errorf("detector %s returned %d samples, need at least %d",
				det, len(strain), segSamples)
		}
		psdPart := strain[:len(strain)-segSamples]
		segment := strain[len(strain)-segSamples:]

		psd, err := dsp.WelchPSD(psdPart, settings.SampleRate, win)
		if err != nil {
			return nil, fmt.Errorf("psd estimation for %s failed: %w", det, err)
		}

		data.Strain[det] = segment
		data.PSD[det] = psd
	}
	return data, nil
}

func (c *GWOSCClient) fetchStrain(ctx context.Context, detector string, start, duration, sampleRate float64) ([]float64, error) {
	q := url.Values{}
	q.Set("detector", detector)
	q.Set("start", strconv.FormatFloat(start, 'f', -1, 64))
	q.Set("duration", strconv.FormatFloat(duration, 'f', -1, 64))
	q.Set("sample_rate", strconv.FormatFloat(sampleRate, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/timeseries?%s", c.BaseURL, q.Encode())
	c.log.Debug("fetching strain", zap.String("detector", detector), zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strain request for %s failed: %w", detector, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("strain request for %s returned %s: %s",
			detector, resp.Status, string(body))
	}

	var ts timeseriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		return nil, fmt.Errorf("failed to decode strain response for %s: %w", detector, err)
	}
	return ts.Strain, nil
}
