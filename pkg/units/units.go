package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var (
	// ErrUnknownUnit is returned when a unit symbol is not in the conversion table.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrIncompatible is returned when converting between different dimensions.
	ErrIncompatible = errors.New("units: incompatible units")
	// ErrEmptyRange is returned for ranges whose upper bound is below the lower.
	ErrEmptyRange = errors.New("units: empty range")
)

// Quantity is a number with an optional unit symbol, e.g. "0.33 uW".
type Quantity struct {
	Value float64 `parser:"@( Real | Integer )"`
	Unit  string  `parser:"@Unit?"`
}

// rangeExpr is the grammar for "lo..hi" or a single "n".
type rangeExpr struct {
	Lo    int    `parser:"@Integer"`
	Upper string `parser:"( Range @Integer )?"`
}

var (
	quantityParser = participle.MustBuild[Quantity](
		participle.Lexer(QuantityLexer),
		participle.Elide("Whitespace"),
	)
	rangeParser = participle.MustBuild[rangeExpr](
		participle.Lexer(QuantityLexer),
		participle.Elide("Whitespace"),
	)
)

type dimension int

const (
	dimPower dimension = iota
	dimArea
)

type unitInfo struct {
	dim   dimension
	scale float64 // multiplier to the SI base unit (W, m²)
}

var unitTable = map[string]unitInfo{
	"nW":  {dimPower, 1e-9},
	"uW":  {dimPower, 1e-6},
	"mW":  {dimPower, 1e-3},
	"W":   {dimPower, 1},
	"nm2": {dimArea, 1e-18},
	"um2": {dimArea, 1e-12},
	"mm2": {dimArea, 1e-6},
	"m2":  {dimArea, 1},
}

// Parse decodes a quantity such as "1234.50", "0.33 uW" or "328.91 µm²".
// Unit symbols are normalized to ASCII ("µ" -> "u", "²" -> "2").
func Parse(s string) (Quantity, error) {
	q, err := quantityParser.ParseString("", s)
	if err != nil {
		return Quantity{}, fmt.Errorf("units: parse %q: %w", s, err)
	}
	q.Unit = Normalize(q.Unit)
	return *q, nil
}

// Normalize rewrites the non-ASCII spellings of a unit symbol.
func Normalize(unit string) string {
	unit = strings.ReplaceAll(unit, "µ", "u")
	unit = strings.ReplaceAll(unit, "²", "2")
	return unit
}

// In converts q to the given unit. A unitless quantity only converts to "".
func (q Quantity) In(unit string) (float64, error) {
	unit = Normalize(unit)
	if q.Unit == unit {
		return q.Value, nil
	}
	from, ok := unitTable[q.Unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, q.Unit)
	}
	to, ok := unitTable[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if from.dim != to.dim {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIncompatible, q.Unit, unit)
	}
	return q.Value * from.scale / to.scale, nil
}

func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == "" {
		return v
	}
	return v + " " + q.Unit
}

// Range is an inclusive integer interval.
type Range struct {
	Lo int
	Hi int
}

// ParseRange decodes "lo..hi" (inclusive) or a single integer "n" (n..n).
func ParseRange(s string) (Range, error) {
	expr, err := rangeParser.ParseString("", s)
	if err != nil {
		return Range{}, fmt.Errorf("units: parse range %q: %w", s, err)
	}
	r := Range{Lo: expr.Lo, Hi: expr.Lo}
	if expr.Upper != "" {
		hi, err := strconv.Atoi(expr.Upper)
		if err != nil {
			return Range{}, fmt.Errorf("units: parse range %q: %w", s, err)
		}
		r.Hi = hi
	}
	if r.Len() == 0 {
		return Range{}, fmt.Errorf("%w: %s", ErrEmptyRange, s)
	}
	return r, nil
}

// Len returns the number of integers in the range.
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return r.Hi - r.Lo + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
}

// Set implements pflag.Value so a Range can be bound directly to a flag.
func (r *Range) Set(s string) error {
	parsed, err := ParseRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Type implements pflag.Value.
func (r *Range) Type() string {
	return "range"
}
