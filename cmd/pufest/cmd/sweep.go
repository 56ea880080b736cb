package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OpenTraceLab/pufest/pkg/sweep"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	csvPath string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <area|power>",
	Short: "Project PUF+LPROM cost across slices and PUF replication",
	Long: `Fit the PUF model, then for every slice count n and replication factor r
compute

  rom_bits = ceil(target / r)
  rom      = rom_bits * n * per_bit
  puf      = model(n) * r
  total    = rom + puf

and report the cheapest design. Defaults: slices 8..64, PUFs 1..16, target 128
bits for area (per bit 328.91 µm²) and 1024 bits for power (per bit 0.33 uW).

Examples:
  pufest sweep power
  pufest sweep area --target 256 --slices 16..32 --pufs 1..8
  pufest sweep power --per-bit "0.5 uW" --csv power.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output all points as JSON")
	sweepCmd.Flags().StringVar(&csvPath, "csv", "",
		"write all points to this CSV file")
	addSweepFlags(sweepCmd.Flags())
}

// addSweepFlags registers the sweep configuration flags on fs.
func addSweepFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&sweepTarget, "target", "t", 0,
		"target response bits (default: 128 for area, 1024 for power)")
	fs.Var(&sweepSlices, "slices", "slice count range lo..hi (default 8..64)")
	fs.Var(&sweepPUFs, "pufs", "PUF replication range lo..hi (default 1..16)")
	fs.StringVar(&sweepPerBit, "per-bit", "",
		`LPROM cost per bit, e.g. "328.91 um2" or "0.33 uW"`)
	fs.Float64Var(&fitScale, "scale", 0,
		"divide report metrics by this factor before fitting (default: 1e6 for area, 1 for power)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[0])
	if err != nil {
		return err
	}

	points, cfg, err := sweepKind(k)
	if err != nil {
		return err
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, points); err != nil {
			return err
		}
		logrus.Infof("Wrote %d points to %s", len(points), csvPath)
	}

	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(points)
	}

	printSweepSummary(k, cfg, points)
	return nil
}

func sweepKind(k *kind) ([]sweep.Point, *sweep.Config, error) {
	_, model, err := fitKind(k)
	if err != nil {
		return nil, nil, err
	}
	if verbose && !outputJSON {
		printModel(k, model)
	}

	cfg, err := sweepConfig(k)
	if err != nil {
		return nil, nil, err
	}
	points, err := sweep.Run(model, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("sweep %s: %w", k.name, err)
	}
	return points, cfg, nil
}

func writeCSV(path string, points []sweep.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := sweep.WriteCSV(f, points); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
