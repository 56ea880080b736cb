// Package sweep projects the cost of a PUF+LPROM design over a grid of slice
// counts and PUF replication factors.
//
// Each of r PUF instances with n slices contributes model.Predict(n); the
// LPROM stores ceil(target/r) words of n bits at a fixed cost per bit.
package sweep

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Predictor estimates the cost of a single PUF with the given slice count.
type Predictor interface {
	Predict(slices float64) float64
}

// Point is one evaluated design.
type Point struct {
	Slices  int     `json:"slices"`
	PUFs    int     `json:"pufs"`
	ROMBits int     `json:"rom_bits"`
	ROM     float64 `json:"rom"`
	PUF     float64 `json:"puf"`
	Total   float64 `json:"total"`
}

// ROMBits returns ceil(target / pufs).
func ROMBits(target, pufs int) int {
	return (target + pufs - 1) / pufs
}

// Evaluate computes a single grid point. cfg must already be validated.
func Evaluate(p Predictor, cfg *Config, slices, pufs int) Point {
	bits := ROMBits(cfg.Target, pufs)
	rom := float64(bits*slices) * cfg.PerBit / cfg.ROMScale
	puf := p.Predict(float64(slices)) * float64(pufs)
	return Point{
		Slices:  slices,
		PUFs:    pufs,
		ROMBits: bits,
		ROM:     rom,
		PUF:     puf,
		Total:   rom + puf,
	}
}

// Run evaluates every (slices, pufs) combination, slices in the outer loop,
// both ascending.
func Run(p Predictor, cfg *Config) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, cfg.Slices.Len()*cfg.PUFs.Len())
	for n := cfg.Slices.Lo; n <= cfg.Slices.Hi; n++ {
		for r := cfg.PUFs.Lo; r <= cfg.PUFs.Hi; r++ {
			points = append(points, Evaluate(p, cfg, n, r))
		}
	}
	return points, nil
}

// Best returns the point with the lowest total. Ties keep the earlier point.
func Best(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, pt := range points[1:] {
		if pt.Total < best.Total {
			best = pt
		}
	}
	return best, true
}

// WriteCSV writes points with a header row.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"slices", "pufs", "rom_bits", "rom", "puf", "total"}); err != nil {
		return err
	}
	for _, pt := range points {
		rec := []string{
			strconv.Itoa(pt.Slices),
			strconv.Itoa(pt.PUFs),
			strconv.Itoa(pt.ROMBits),
			strconv.FormatFloat(pt.ROM, 'g', -1, 64),
			strconv.FormatFloat(pt.PUF, 'g', -1, 64),
			strconv.FormatFloat(pt.Total, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
