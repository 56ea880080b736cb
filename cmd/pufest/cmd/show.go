package cmd

import (
	"bytes"
	"fmt"

	"github.com/OpenTraceLab/pufest/internal/ui/viewer"
	"github.com/OpenTraceLab/pufest/pkg/plot"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <bars|surface> <area|power>",
	Short: "Open a chart in a window",
	Long: `Render a chart and display it in a window instead of writing a file.
Press Escape or Q to close.

Examples:
  pufest show surface power
  pufest show bars area`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addSweepFlags(showCmd.Flags())
}

func runShow(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[1])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch args[0] {
	case "bars":
		err = renderBars(&buf, k, plot.PNG)
	case "surface":
		err = renderSurface(&buf, k, plot.PNG)
	default:
		return fmt.Errorf("unknown chart %q (want bars or surface)", args[0])
	}
	if err != nil {
		return err
	}

	return viewer.ShowPNG(fmt.Sprintf("pufest - %s %s", k.name, args[0]), buf.Bytes())
}
