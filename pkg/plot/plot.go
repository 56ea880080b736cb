// Package plot renders scraped reports and sweep results as static charts.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/pufest/pkg/report"
	"github.com/OpenTraceLab/pufest/pkg/sweep"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Format selects the chart encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("plot: no data")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("plot: unsupported output %q (want .png or .svg)", path)
	}
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case PNG, "":
		return chart.PNG, nil
	case SVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("plot: unknown format %q", f)
	}
}

// BarOptions configures a parameter-vs-metric bar chart.
type BarOptions struct {
	Title  string
	YLabel string
	Scale  float64 // metrics are divided by Scale (0 = unchanged)
	Format Format
	Width  int
	Height int
}

// Bars draws one bar per report parameter, ordered by parameter.
func Bars(w io.Writer, set report.Set, opts BarOptions) error {
	if len(set) == 0 {
		return ErrNoData
	}
	rp, err := opts.Format.provider()
	if err != nil {
		return err
	}

	xs, ys := set.Arrays(opts.Scale)
	bars := make([]chart.Value, len(xs))
	maxY := 0.0
	for i := range xs {
		bars[i] = chart.Value{Value: ys[i], Label: strconv.Itoa(int(xs[i]))}
		maxY = math.Max(maxY, ys[i])
	}
	if maxY <= 0 {
		maxY = 1
	}

	bc := chart.BarChart{
		Title:      opts.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      orDefault(opts.Width, 1024),
		Height:     orDefault(opts.Height, 512),
		BarWidth:   barWidth(len(bars), orDefault(opts.Width, 1024)),
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(rp, w)
}

// SurfaceOptions configures the sweep chart.
type SurfaceOptions struct {
	Title  string
	ZLabel string
	Format Format
	Width  int
	Height int
}

// Surface draws the (slices, pufs, total) surface as one line per
// replication factor with slices on the x axis.
func Surface(w io.Writer, points []sweep.Point, opts SurfaceOptions) error {
	if len(points) == 0 {
		return ErrNoData
	}
	rp, err := opts.Format.provider()
	if err != nil {
		return err
	}

	byPUFs := make(map[int]*chart.ContinuousSeries)
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range points {
		s, ok := byPUFs[pt.PUFs]
		if !ok {
			s = &chart.ContinuousSeries{Name: fmt.Sprintf("%d PUFs", pt.PUFs)}
			byPUFs[pt.PUFs] = s
		}
		x := float64(pt.Slices)
		s.XValues = append(s.XValues, x)
		s.YValues = append(s.YValues, pt.Total)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, pt.Total), math.Max(maxY, pt.Total)
	}

	keys := make([]int, 0, len(byPUFs))
	for r := range byPUFs {
		keys = append(keys, r)
	}
	sort.Ints(keys)
	series := make([]chart.Series, 0, len(keys))
	for _, r := range keys {
		series = append(series, *byPUFs[r])
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      orDefault(opts.Width, 1024),
		Height:     orDefault(opts.Height, 640),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12}},
		XAxis:      chart.XAxis{Name: "Slices", Range: padRange(minX, maxX, 0)},
		YAxis:      chart.YAxis{Name: opts.ZLabel, Range: padRange(minY, maxY, 0.05)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(rp, w)
}

// padRange widens [lo, hi] by frac of its span; a zero span gets ±1.
func padRange(lo, hi, frac float64) *chart.ContinuousRange {
	if hi-lo == 0 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * frac
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func barWidth(n, width int) int {
	w := width / (2*n + 1)
	if w < 4 {
		return 4
	}
	if w > 60 {
		return 60
	}
	return w
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
