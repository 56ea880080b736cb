package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputJSON bool
)

// ReportEntry is one scraped report in JSON output.
type ReportEntry struct {
	Slices int     `json:"slices"`
	Value  float64 `json:"value"`
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <area|power>",
	Short: "Scrape metrics from synthesis reports",
	Long: `Read every area<N>.rpt or power<N>.rpt report in the report directory and
print the metric found in each, keyed by slice count N.

Area is reported in µm² ("Total cell area"), power in uW ("Cell Leakage Power").
Any report that cannot be decoded aborts the run.

Examples:
  pufest scrape area
  pufest scrape power --dir ../results/igzo/arbiter_puf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output as JSON (for programmatic access)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[0])
	if err != nil {
		return err
	}

	set, err := scrapeKind(k)
	if err != nil {
		return err
	}

	keys := set.Keys()
	if outputJSON {
		entries := make([]ReportEntry, len(keys))
		for i, n := range keys {
			entries[i] = ReportEntry{Slices: n, Value: set[n]}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	unit := "µm²"
	if k == kindPower {
		unit = "uW"
	}
	fmt.Printf("%s reports: %d in %s\n", k.title, len(keys), reportDir)
	for _, n := range keys {
		fmt.Printf("  %4d slices: %12.4f %s\n", n, set[n], unit)
	}
	return nil
}
