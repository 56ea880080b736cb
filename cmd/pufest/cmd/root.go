package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/OpenTraceLab/pufest/pkg/report"
	"github.com/OpenTraceLab/pufest/pkg/sweep"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Default location of the synthesis results, relative to the working directory.
const defaultReportDir = "../results/igzo/arbiter_puf"

var (
	// Global flags
	verbose   bool
	reportDir string
)

var rootCmd = &cobra.Command{
	Use:   "pufest",
	Short: "Arbiter PUF + LPROM area/power estimator",
	Long: `Scrape area and power synthesis reports for arbiter PUF slices, fit a
linear model of cost versus slice count, and project the combined cost of a
PUF+LPROM design across slice counts and PUF replication factors.

Without a subcommand, fits both area and power and runs the power sweep.

Examples:
  pufest                                         # Fit area and power, sweep power
  pufest scrape power --dir results/             # List scraped leakage power
  pufest fit area                                # Fit area (mm²) vs slices
  pufest sweep area --target 256 --csv area.csv  # Sweep area for a 256-bit target
  pufest plot surface power -o power.png         # Render the power sweep`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	Args: cobra.NoArgs,
	RunE: runDefault,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&reportDir, "dir", "d", defaultReportDir,
		"directory containing area<N>.rpt and power<N>.rpt reports")
}

// printError writes err to stderr. A report missing its metric is followed
// by the raw report so the offending contents are visible.
func printError(err error) {
	fmt.Fprintln(os.Stderr, err)
	var cerr *report.ContentError
	if errors.As(err, &cerr) {
		fmt.Fprintln(os.Stderr, cerr.Contents)
	}
}

func runDefault(cmd *cobra.Command, args []string) error {
	_, areaModel, err := fitKind(kindArea)
	if err != nil {
		return err
	}
	printModel(kindArea, areaModel)

	_, powerModel, err := fitKind(kindPower)
	if err != nil {
		return err
	}
	printModel(kindPower, powerModel)

	cfg, err := sweepConfig(kindPower)
	if err != nil {
		return err
	}
	points, err := sweep.Run(powerModel, cfg)
	if err != nil {
		return err
	}
	printSweepSummary(kindPower, cfg, points)
	return nil
}
