package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gwprep/internal/logging"
	"gwprep/internal/skypos"
)

var (
	skyposRA    float64
	skyposEvent float64
	skyposRef   float64
)

var skyposCmd = &cobra.Command{
	Use:   "skypos",
	Short: "Correct an inferred right ascension for the event's epoch",
	Long: `Models are trained with sky projections held at a fixed reference time.
This command shifts an inferred right ascension by the Greenwich apparent
sidereal time difference between the event and that reference, so the
model output can be read as a true sky position at the event time.

Example:
  gwprep skypos --ra 1.95 --event 1187008882.4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		corrected := skypos.Correct(skyposRA, skyposEvent, skyposRef)
		logging.Get(logging.CategorySkyPos).Debug("right ascension corrected",
			zap.Float64("ra", skyposRA),
			zap.Float64("corrected", corrected),
			zap.Float64("event", skyposEvent),
			zap.Float64("ref", skyposRef))
		fmt.Printf("%.10f\n", corrected)
		return nil
	},
}

func init() {
	skyposCmd.Flags().Float64Var(&skyposRA, "ra", 0, "right ascension in radians (required)")
	skyposCmd.Flags().Float64Var(&skyposEvent, "event", 0, "event GPS time (required)")
	skyposCmd.Flags().Float64Var(&skyposRef, "ref", skypos.DefaultReferenceTime, "model reference GPS time")
	_ = skyposCmd.MarkFlagRequired("ra")
	_ = skyposCmd.MarkFlagRequired("event")
}
