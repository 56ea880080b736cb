package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/pufest/pkg/fit"
	"github.com/OpenTraceLab/pufest/pkg/report"
	"github.com/OpenTraceLab/pufest/pkg/sweep"
	"github.com/OpenTraceLab/pufest/pkg/units"
	"github.com/sirupsen/logrus"
)

// kind bundles the per-metric conventions: reports are in µm² or uW, the
// area model is fitted on mm², bar charts show mm² and mW.
type kind struct {
	name       string
	title      string
	fitScale   float64 // report metric / fitScale = model unit
	modelUnit  string
	barScale   float64
	barLabel   string
	perBitUnit string // unit the LPROM per-bit cost is expressed in
}

var (
	kindArea = &kind{
		name:       "area",
		title:      "Area",
		fitScale:   1000 * 1000,
		modelUnit:  "mm²",
		barScale:   1000 * 1000,
		barLabel:   "Area (mm²)",
		perBitUnit: "um2",
	}
	kindPower = &kind{
		name:       "power",
		title:      "Power",
		fitScale:   1,
		modelUnit:  "uW",
		barScale:   1000,
		barLabel:   "Power (mW)",
		perBitUnit: "uW",
	}
)

func parseKind(s string) (*kind, error) {
	switch strings.ToLower(s) {
	case "area":
		return kindArea, nil
	case "power":
		return kindPower, nil
	default:
		return nil, fmt.Errorf("unknown report kind %q (want area or power)", s)
	}
}

var (
	// Shared by fit, sweep, plot and show
	fitScale    float64
	sweepTarget int
	sweepSlices units.Range
	sweepPUFs   units.Range
	sweepPerBit string
)

func scrapeKind(k *kind) (report.Set, error) {
	spec, err := report.SpecFor(k.name)
	if err != nil {
		return nil, err
	}
	set, err := report.ScrapeDir(reportDir, spec)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", k.name, err)
	}
	return set, nil
}

func fitKind(k *kind) (report.Set, fit.Model, error) {
	set, err := scrapeKind(k)
	if err != nil {
		return nil, fit.Model{}, err
	}
	scale := k.fitScale
	if fitScale > 0 {
		scale = fitScale
	}
	model, err := fit.FitSet(set, scale)
	if err != nil {
		return nil, fit.Model{}, fmt.Errorf("fit %s: %w", k.name, err)
	}
	logrus.Debugf("%s model: %s", k.name, model)
	return set, model, nil
}

// sweepConfig starts from the kind's defaults and applies any sweep flags.
// Zero-valued flags keep the default.
func sweepConfig(k *kind) (*sweep.Config, error) {
	cfg, err := sweep.DefaultConfig(k.name)
	if err != nil {
		return nil, err
	}
	// The ROM cost is in report units and must land in the model's unit
	if fitScale > 0 {
		cfg.ROMScale = fitScale
	}
	if sweepTarget != 0 {
		cfg.Target = sweepTarget
	}
	if sweepSlices != (units.Range{}) {
		cfg.Slices = sweepSlices
	}
	if sweepPUFs != (units.Range{}) {
		cfg.PUFs = sweepPUFs
	}
	if sweepPerBit != "" {
		q, err := units.Parse(sweepPerBit)
		if err != nil {
			return nil, fmt.Errorf("--per-bit: %w", err)
		}
		perBit := q.Value
		if q.Unit != "" {
			if perBit, err = q.In(k.perBitUnit); err != nil {
				return nil, fmt.Errorf("--per-bit: %w", err)
			}
		}
		cfg.PerBit = perBit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printModel(k *kind, m fit.Model) {
	fmt.Printf("%s model (%s vs slices):\n", k.title, k.modelUnit)
	fmt.Printf("  Slope:     %.6g %s/slice\n", m.Slope, k.modelUnit)
	fmt.Printf("  Intercept: %.6g %s\n", m.Intercept, k.modelUnit)
	fmt.Printf("  Points:    %d\n", m.N)
	fmt.Printf("  R²:        %.4f\n", m.R2)
	fmt.Println()
}

func printSweepSummary(k *kind, cfg *sweep.Config, points []sweep.Point) {
	fmt.Printf("%s sweep: %d points (slices %s, PUFs %s, target %d bits)\n",
		k.title, len(points), cfg.Slices, cfg.PUFs, cfg.Target)
	if best, ok := sweep.Best(points); ok {
		fmt.Printf("  Best: %d slices x %d PUFs, %d ROM bits/word\n", best.Slices, best.PUFs, best.ROMBits)
		fmt.Printf("  Total: %.6g %s (ROM %.6g + PUF %.6g)\n", best.Total, k.modelUnit, best.ROM, best.PUF)
	}
}
