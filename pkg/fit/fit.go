// Package fit fits the one-dimensional linear models used to extrapolate
// report metrics to slice counts that were never synthesized.
package fit

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/pufest/pkg/report"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints is returned when fewer than two samples are supplied.
	ErrTooFewPoints = errors.New("fit: need at least two points")
	// ErrDegenerate is returned when every sample has the same x.
	ErrDegenerate = errors.New("fit: all x values are identical")
)

// Model is an ordinary least squares line y = Slope*x + Intercept.
type Model struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"points"`
	R2        float64 `json:"r_squared"` // NaN when every y is identical
}

// Fit computes the least squares line through (xs[i], ys[i]).
func Fit(xs, ys []float64) (Model, error) {
	if len(xs) != len(ys) {
		return Model{}, fmt.Errorf("fit: length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Model{}, ErrTooFewPoints
	}
	if !varies(xs) {
		return Model{}, ErrDegenerate
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Model{
		Slope:     slope,
		Intercept: intercept,
		N:         len(xs),
		R2:        stat.RSquared(xs, ys, nil, intercept, slope),
	}, nil
}

// FitSet fits a scraped report set, dividing every metric by scale first
// (0 or 1 keeps the report's own unit).
func FitSet(set report.Set, scale float64) (Model, error) {
	xs, ys := set.Arrays(scale)
	return Fit(xs, ys)
}

// Predict evaluates the line at x.
func (m Model) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}

func (m Model) String() string {
	return fmt.Sprintf("y = %.6g*x + %.6g (n=%d, R²=%.4f)", m.Slope, m.Intercept, m.N, m.R2)
}

func varies(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}
