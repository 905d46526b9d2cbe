package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gwprep/internal/config"
	"gwprep/internal/detectors"
	"gwprep/internal/pipeline"
)

var (
	projectMetadata string
	projectWaveform string
	projectRA       float64
	projectDec      float64
	projectPsi      float64
	projectGeocent  float64
	projectOut      string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a polarized waveform onto the model's detector network",
	Long: `Maps a frequency-domain source waveform (plus and cross polarizations)
onto each detector named in the model metadata: strain = F+ h+ + Fx hx,
time-shifted to the detector's arrival time. Antenna patterns and delays
are evaluated at the model's reference time from the metadata.

The waveform file is JSON with "h_plus" and "h_cross" arrays of
[real, imag] pairs sampled from DC at the domain's bin spacing. The
output uses the same encoding, keyed by detector name.

Example:
  gwprep project --metadata model.yaml --waveform wf.json \
    --ra 1.95 --dec -1.21 --psi 0.6 --geocent-time 0.01`,
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVar(&projectMetadata, "metadata", "", "model metadata YAML file (required)")
	projectCmd.Flags().StringVar(&projectWaveform, "waveform", "", "polarized waveform JSON file (required)")
	projectCmd.Flags().Float64Var(&projectRA, "ra", 0, "right ascension in radians (required)")
	projectCmd.Flags().Float64Var(&projectDec, "dec", 0, "declination in radians")
	projectCmd.Flags().Float64Var(&projectPsi, "psi", 0, "polarization angle in radians")
	projectCmd.Flags().Float64Var(&projectGeocent, "geocent-time", 0, "geocenter time offset in seconds")
	projectCmd.Flags().StringVar(&projectOut, "out", "", "output file (defaults to stdout)")
	_ = projectCmd.MarkFlagRequired("metadata")
	_ = projectCmd.MarkFlagRequired("waveform")
	_ = projectCmd.MarkFlagRequired("ra")
}

// polarizationsJSON is the on-disk form of a polarized waveform, complex
// bins flattened to [real, imag] pairs.
type polarizationsJSON struct {
	HPlus  [][2]float64 `json:"h_plus"`
	HCross [][2]float64 `json:"h_cross"`
}

func decodePolarizations(path string) (detectors.PolarizedWaveform, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return detectors.PolarizedWaveform{}, err
	}
	var enc polarizationsJSON
	if err := json.Unmarshal(raw, &enc); err != nil {
		return detectors.PolarizedWaveform{}, fmt.Errorf("failed to decode waveform file: %w", err)
	}

	wf := detectors.PolarizedWaveform{
		HPlus:  make([]complex128, len(enc.HPlus)),
		HCross: make([]complex128, len(enc.HCross)),
	}
	for i, p := range enc.HPlus {
		wf.HPlus[i] = complex(p[0], p[1])
	}
	for i, p := range enc.HCross {
		wf.HCross[i] = complex(p[0], p[1])
	}
	return wf, nil
}

func runProject(cmd *cobra.Command, args []string) error {
	md, err := config.Load(projectMetadata)
	if err != nil {
		return err
	}

	wf, err := decodePolarizations(projectWaveform)
	if err != nil {
		return err
	}

	p := detectors.ExtrinsicParameters{
		RA:          projectRA,
		Dec:         projectDec,
		Psi:         projectPsi,
		GeocentTime: projectGeocent,
	}
	projected, err := pipeline.ProjectWaveform(md, wf, p)
	if err != nil {
		return err
	}

	out := make(map[string][][2]float64, len(projected))
	for det, bins := range projected {
		pairs := make([][2]float64, len(bins))
		for i, c := range bins {
			pairs[i] = [2]float64{real(c), imag(c)}
		}
		out[det] = pairs
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode projected strain: %w", err)
	}

	if projectOut == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(projectOut, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Projected strain written to %s\n", projectOut)
	return nil
}
