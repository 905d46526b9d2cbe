package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gwprep/internal/cache"
	"gwprep/internal/config"
	"gwprep/internal/event"
	"gwprep/internal/pipeline"
)

var (
	prepareMetadata string
	prepareEvent    float64
	preparePSD      float64
	prepareBuffer   float64
	prepareCache    string
	prepareOut      string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Convert an event's raw data into the model's domain representation",
	Long: `Runs the full preparation pipeline for one event:

  1. Parse acquisition settings from the model metadata
  2. Load raw strain and PSD data (cache hit or live download)
  3. Convert to the model's frequency-domain layout

The result is written as JSON with "waveform" and "asds" sections,
complex values encoded as [real, imag] pairs.

Example:
  gwprep prepare --metadata model.yaml --event 1187008882.4 \
    --psd-duration 1024 --buffer 2 --cache events.db --out event.json`,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVar(&prepareMetadata, "metadata", "", "model metadata YAML file (required)")
	prepareCmd.Flags().Float64Var(&prepareEvent, "event", 0, "event GPS time (required)")
	prepareCmd.Flags().Float64Var(&preparePSD, "psd-duration", 1024, "PSD estimation duration in seconds")
	prepareCmd.Flags().Float64Var(&prepareBuffer, "buffer", 2, "time buffer after the event in seconds")
	prepareCmd.Flags().StringVar(&prepareCache, "cache", "", "event dataset cache file (optional)")
	prepareCmd.Flags().StringVar(&prepareOut, "out", "", "output file (defaults to stdout)")
	_ = prepareCmd.MarkFlagRequired("metadata")
	_ = prepareCmd.MarkFlagRequired("event")
}

// domainDataJSON is the serialized form of event.DomainData: complex bins
// flattened to [real, imag] pairs.
type domainDataJSON struct {
	Waveform map[string][][2]float64 `json:"waveform"`
	ASDs     map[string][]float64    `json:"asds"`
}

func encodeDomainData(data *event.DomainData) domainDataJSON {
	out := domainDataJSON{
		Waveform: make(map[string][][2]float64, len(data.Waveform)),
		ASDs:     data.ASDs,
	}
	for det, bins := range data.Waveform {
		pairs := make([][2]float64, len(bins))
		for i, c := range bins {
			pairs[i] = [2]float64{real(c), imag(c)}
		}
		out.Waveform[det] = pairs
	}
	return out
}

func runPrepare(cmd *cobra.Command, args []string) error {
	md, err := config.Load(prepareMetadata)
	if err != nil {
		return err
	}

	var store *cache.EventStore
	if prepareCache != "" {
		store, err = cache.Open(prepareCache)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	data, err := pipeline.GetDomainData(cmd.Context(), md, prepareEvent, preparePSD, prepareBuffer, store, nil)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(encodeDomainData(data), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode domain data: %w", err)
	}

	if prepareOut == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(prepareOut, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Domain data for event %s written to %s\n", event.ID(prepareEvent), prepareOut)
	return nil
}
