package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/OpenTraceLab/pufest/pkg/plot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	outputPath string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render report and sweep charts",
	Long:  `Commands for rendering scraped reports and sweep results to PNG or SVG files`,
}

var plotBarsCmd = &cobra.Command{
	Use:   "bars <area|power>",
	Short: "Bar chart of metric per slice count",
	Long: `Render one bar per scraped report: area in mm², power in mW.

Examples:
  pufest plot bars area -o area.png
  pufest plot bars power -o power.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runPlotBars,
}

var plotSurfaceCmd = &cobra.Command{
	Use:   "surface <area|power>",
	Short: "Chart of the PUF+LPROM sweep",
	Long: `Render the sweep surface (slices, PUFs, total) as one line per PUF
replication factor. Accepts the same sweep flags as 'pufest sweep'.

Examples:
  pufest plot surface power -o power_sweep.png
  pufest plot surface area --target 256 -o area_sweep.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runPlotSurface,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(plotBarsCmd)
	plotCmd.AddCommand(plotSurfaceCmd)

	for _, c := range []*cobra.Command{plotBarsCmd, plotSurfaceCmd} {
		c.Flags().StringVarP(&outputPath, "output", "o", "", "output file (.png or .svg)")
		c.MarkFlagRequired("output")
	}
	addSweepFlags(plotSurfaceCmd.Flags())
}

func runPlotBars(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[0])
	if err != nil {
		return err
	}
	format, err := plot.FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderBars(&buf, k, format); err != nil {
		return err
	}
	return writeChart(outputPath, buf.Bytes())
}

func runPlotSurface(cmd *cobra.Command, args []string) error {
	k, err := parseKind(args[0])
	if err != nil {
		return err
	}
	format, err := plot.FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderSurface(&buf, k, format); err != nil {
		return err
	}
	return writeChart(outputPath, buf.Bytes())
}

func renderBars(buf *bytes.Buffer, k *kind, format plot.Format) error {
	set, err := scrapeKind(k)
	if err != nil {
		return err
	}
	return plot.Bars(buf, set, plot.BarOptions{
		Title:  fmt.Sprintf("%s per slice count", k.title),
		YLabel: k.barLabel,
		Scale:  k.barScale,
		Format: format,
	})
}

func renderSurface(buf *bytes.Buffer, k *kind, format plot.Format) error {
	points, cfg, err := sweepKind(k)
	if err != nil {
		return err
	}
	return plot.Surface(buf, points, plot.SurfaceOptions{
		Title:  fmt.Sprintf("PUF+LPROM %s, %d-bit target", k.name, cfg.Target),
		ZLabel: fmt.Sprintf("%s (%s)", k.title, k.modelUnit),
		Format: format,
	})
}

func writeChart(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	logrus.Infof("Wrote %s (%d bytes)", path, len(data))
	return nil
}
