package cmd

import (
	"encoding/json"
	"math"
	"os"

	"github.com/spf13/cobra"
)

// ModelInfo is the JSON form of a fitted model. R2 is omitted when undefined.
type ModelInfo struct {
	Kind      string   `json:"kind"`
	Unit      string   `json:"unit"`
	Slope     float64  `json:"slope"`
	Intercept float64  `json:"intercept"`
	Points    int      `json:"points"`
	R2        *float64 `json:"r_squared,omitempty"`
}

var fitCmd = &cobra.Command{
	Use:   "fit <area|power>",
	Short: "Fit a linear model of metric versus slice count",
	Long: `Scrape the reports and fit metric = slope * slices + intercept by ordinary
least squares.

Area is fitted in mm² (report µm² divided by 1e6), power in uW. Use --scale to
divide the report metric by a different factor.

Examples:
  pufest fit area
  pufest fit power --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output as JSON (for programmatic access)")
	fitCmd.Flags().Float64Var(&fitScale, "scale", 0,
		"divide report metrics by this factor before fitting (default: 1e6 for area, 1 for power)")
}

func runFit(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[0])
	if err != nil {
		return err
	}

	_, model, err := fitKind(k)
	if err != nil {
		return err
	}

	if outputJSON {
		out := ModelInfo{
			Kind:      k.name,
			Unit:      k.modelUnit,
			Slope:     model.Slope,
			Intercept: model.Intercept,
			Points:    model.N,
		}
		if !math.IsNaN(model.R2) {
			out.R2 = &model.R2
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	printModel(k, model)
	return nil
}
