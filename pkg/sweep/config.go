package sweep

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/pufest/pkg/units"
)

// Per-bit LPROM costs from a separate ROM characterization.
const (
	AreaPerBit  = 328.91 // µm² per bit
	PowerPerBit = 0.33   // µW per bit
)

// Config controls the design-space sweep.
type Config struct {
	Slices units.Range // slice counts n to evaluate
	PUFs   units.Range // replication factors r to evaluate
	Target int         // total response bits the design must produce

	// PerBit is the LPROM cost of one bit; ROMScale divides the resulting
	// ROM metric so it lands in the same unit the PUF model was fitted in.
	PerBit   float64
	ROMScale float64
}

// DefaultAreaConfig sweeps area for a 128-bit target. The ROM cost is
// converted from µm² to mm² to match a model fitted on mm².
func DefaultAreaConfig() *Config {
	return &Config{
		Slices:   units.Range{Lo: 8, Hi: 64},
		PUFs:     units.Range{Lo: 1, Hi: 16},
		Target:   128,
		PerBit:   AreaPerBit,
		ROMScale: 1000 * 1000,
	}
}

// DefaultPowerConfig sweeps leakage power in µW for a 1024-bit target.
func DefaultPowerConfig() *Config {
	return &Config{
		Slices:   units.Range{Lo: 8, Hi: 64},
		PUFs:     units.Range{Lo: 1, Hi: 16},
		Target:   1024,
		PerBit:   PowerPerBit,
		ROMScale: 1,
	}
}

// DefaultConfig returns the default sweep for a report kind.
func DefaultConfig(kind string) (*Config, error) {
	switch kind {
	case "area":
		return DefaultAreaConfig(), nil
	case "power":
		return DefaultPowerConfig(), nil
	default:
		return nil, fmt.Errorf("sweep: unknown kind %q", kind)
	}
}

// Validate checks the configuration and fills a zero ROMScale with 1.
func (c *Config) Validate() error {
	if c.Slices.Len() == 0 {
		return fmt.Errorf("sweep: empty slice range %s", c.Slices)
	}
	if c.PUFs.Len() == 0 {
		return fmt.Errorf("sweep: empty PUF range %s", c.PUFs)
	}
	if c.PUFs.Lo < 1 {
		return errors.New("sweep: replication factor must be at least 1")
	}
	if c.Target < 1 {
		return errors.New("sweep: target bits must be at least 1")
	}
	if c.ROMScale == 0 {
		c.ROMScale = 1
	}
	return nil
}
