package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwprep/internal/event"
)

func TestEncodeDomainData(t *testing.T) {
	data := &event.DomainData{
		Waveform: map[string][]complex128{
			"H1": {1 + 2i, -3 + 0.5i},
		},
		ASDs: map[string][]float64{
			"H1": {1.0, 2.5},
		},
	}

	encoded := encodeDomainData(data)
	require.Contains(t, encoded.Waveform, "H1")
	assert.Equal(t, [2]float64{1, 2}, encoded.Waveform["H1"][0])
	assert.Equal(t, [2]float64{-3, 0.5}, encoded.Waveform["H1"][1])
	assert.Equal(t, []float64{1.0, 2.5}, encoded.ASDs["H1"])

	// The serialized form must be valid JSON with both sections.
	raw, err := json.Marshal(encoded)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"waveform"`)
	assert.Contains(t, string(raw), `"asds"`)
}

func TestDecodePolarizations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wf.json")
	raw := `{"h_plus": [[1, 2], [3, -4]], "h_cross": [[0, 0.5], [-1, 0]]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	wf, err := decodePolarizations(path)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 2i, 3 - 4i}, wf.HPlus)
	assert.Equal(t, []complex128{0.5i, -1}, wf.HCross)

	t.Run("missing file", func(t *testing.T) {
		_, err := decodePolarizations(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
		_, err := decodePolarizations(bad)
		assert.ErrorContains(t, err, "decode")
	})
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"prepare", "project", "skypos", "cache"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
