package report

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParameter is returned when a file carries the report prefix but its
	// name does not match the parameter pattern.
	ErrNoParameter = errors.New("report: cannot find parameter")
	// ErrNoMetric is returned when the metric line is missing from a report.
	ErrNoMetric = errors.New("report: cannot find metric")
	// ErrUnit is returned when a report states its metric in an unexpected unit.
	ErrUnit = errors.New("report: unexpected unit")
)

// NameError reports a filename that could not be decoded.
type NameError struct {
	File string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v for %s", ErrNoParameter, e.File)
}

func (e *NameError) Unwrap() error { return ErrNoParameter }

// ContentError reports a file whose contents lack the metric. Contents holds
// the raw file so callers can show what was actually read.
type ContentError struct {
	File     string
	Metric   string
	Contents string
	Err      error
}

func (e *ContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %q in %s: %v", ErrNoMetric, e.Metric, e.File, e.Err)
	}
	return fmt.Sprintf("%v %q in %s", ErrNoMetric, e.Metric, e.File)
}

func (e *ContentError) Unwrap() error { return ErrNoMetric }

// UnitError reports a metric stated in a unit other than the expected one.
type UnitError struct {
	File string
	Want string
	Got  string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%v in %s: want %s, got %s", ErrUnit, e.File, e.Want, e.Got)
}

func (e *UnitError) Unwrap() error { return ErrUnit }
