package acquisition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwprep/internal/event"
)

func gwoscTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		detector := q.Get("detector")
		duration, err := strconv.ParseFloat(q.Get("duration"), 64)
		require.NoError(t, err)
		rate, err := strconv.ParseFloat(q.Get("sample_rate"), 64)
		require.NoError(t, err)
		start, err := strconv.ParseFloat(q.Get("start"), 64)
		require.NoError(t, err)

		strain := make([]float64, int(duration*rate))
		for i := range strain {
			strain[i] = 1e-21
		}
		_ = json.NewEncoder(w).Encode(timeseriesResponse{
			Detector:   detector,
			GPSStart:   start,
			SampleRate: rate,
			Strain:     strain,
		})
	}))
}

func TestGWOSCClient_Download(t *testing.T) {
	server := gwoscTestServer(t)
	defer server.Close()

	client := NewGWOSCClient()
	client.BaseURL = server.URL

	settings := event.Settings{
		Window:      event.WindowSpec{Type: "hann", Duration: 4, SampleRate: 256},
		Detectors:   []string{"H1", "L1"},
		TimeSegment: 4,
		TimePSD:     32,
		TimeBuffer:  2,
		SampleRate:  256,
	}

	data, err := client.Download(context.Background(), 1187008882.4, settings)
	require.NoError(t, err)

	require.Len(t, data.Strain, 2)
	require.Len(t, data.PSD, 2)
	for _, det := range settings.Detectors {
		assert.Len(t, data.Strain[det], int(settings.TimeSegment*settings.SampleRate), det)
		assert.Len(t, data.PSD[det], settings.Window.Samples()/2+1, det)
	}
}

func TestGWOSCClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "strain unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewGWOSCClient()
	client.BaseURL = server.URL

	settings := event.Settings{
		Window:      event.WindowSpec{Type: "hann", Duration: 1, SampleRate: 64},
		Detectors:   []string{"H1"},
		TimeSegment: 1,
		TimePSD:     8,
		TimeBuffer:  0.5,
		SampleRate:  64,
	}

	_, err := client.Download(context.Background(), 1187008882.4, settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
