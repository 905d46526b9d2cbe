// gwprep prepares gravitational-wave event data for a pretrained
// inference model: it downloads or loads cached detector strain, converts
// it to the model's frequency-domain representation and applies the
// sky-position correction for the event's epoch.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gwprep/internal/logging"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gwprep",
	Short: "Prepare gravitational-wave event data for inference models",
	Long: `gwprep is the data preparation layer for gravitational-wave inference.

Given a trained model's metadata and an event GPS time it resolves raw
detector strain (from a local event cache or the open data service),
converts it into the frequency-domain representation the model expects,
and corrects inferred sky positions for the event's sidereal epoch.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.Init(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(skyposCmd)
	rootCmd.AddCommand(cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
