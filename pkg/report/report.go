package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/pufest/pkg/units"
	"github.com/sirupsen/logrus"
)

// Spec describes how to find one kind of report in a directory and how to
// pull its metric out.
type Spec struct {
	Kind   string         // "area" or "power"
	Prefix string         // files starting with Prefix are candidates
	Name   *regexp.Regexp // one integer capture group, matched at the start of the name
	Metric string         // human readable metric name for diagnostics
	// Content captures the metric value in group 1 and, when Unit is set,
	// the unit symbol in group 2.
	Content *regexp.Regexp
	Unit    string
}

// AreaSpec matches area<N>.rpt files reporting "Total cell area" in µm².
func AreaSpec() Spec {
	return Spec{
		Kind:    "area",
		Prefix:  "area",
		Name:    regexp.MustCompile(`^area([0-9]+).rpt`),
		Metric:  "total cell area",
		Content: regexp.MustCompile(`Total cell area:\s+([0-9]+\.[0-9]+)`),
	}
}

// PowerSpec matches power<N>.rpt files reporting "Cell Leakage Power" in uW.
func PowerSpec() Spec {
	return Spec{
		Kind:    "power",
		Prefix:  "power",
		Name:    regexp.MustCompile(`^power([0-9]+).rpt`),
		Metric:  "cell leakage power",
		Content: regexp.MustCompile(`Cell Leakage Power\s+=\s+([0-9]+\.[0-9]+)\s+([umn]W)`),
		Unit:    "uW",
	}
}

// SpecFor returns the built-in spec for kind ("area" or "power").
func SpecFor(kind string) (Spec, error) {
	switch strings.ToLower(kind) {
	case "area":
		return AreaSpec(), nil
	case "power":
		return PowerSpec(), nil
	default:
		return Spec{}, fmt.Errorf("report: unknown report kind %q (want area or power)", kind)
	}
}

// Set maps the filename parameter (slice count) to the scraped metric.
type Set map[int]float64

// Keys returns the parameters in ascending order.
func (s Set) Keys() []int {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Arrays returns parallel parameter/metric slices ordered by parameter. Each
// metric is divided by scale; a scale of 0 or 1 leaves metrics unchanged.
func (s Set) Arrays(scale float64) (xs, ys []float64) {
	if scale == 0 {
		scale = 1
	}
	keys := s.Keys()
	xs = make([]float64, len(keys))
	ys = make([]float64, len(keys))
	for i, k := range keys {
		xs[i] = float64(k)
		ys[i] = s[k] / scale
	}
	return xs, ys
}

// ScrapeDir scrapes every report in dir whose name starts with spec.Prefix.
// Files are visited in name order; a parameter seen twice keeps the value of
// the later file. Any undecodable file aborts the scrape.
func ScrapeDir(dir string, spec Spec) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("report: read dir: %w", err)
	}

	set := make(Set)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), spec.Prefix) {
			continue
		}
		num, value, err := ScrapeFile(filepath.Join(dir, entry.Name()), spec)
		if err != nil {
			return nil, err
		}
		if prev, ok := set[num]; ok {
			logrus.Debugf("%s: parameter %d already seen (%g), overwriting with %g",
				entry.Name(), num, prev, value)
		}
		set[num] = value
	}

	logrus.Debugf("Scraped %d %s reports from %s", len(set), spec.Kind, dir)
	return set, nil
}

// ScrapeFile decodes the parameter from the file name and the metric from
// the file contents.
func ScrapeFile(path string, spec Spec) (int, float64, error) {
	name := filepath.Base(path)
	m := spec.Name.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, &NameError{File: name}
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, &NameError{File: name}
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("report: read %s: %w", name, err)
	}

	value, err := extractMetric(name, string(buf), spec)
	if err != nil {
		return 0, 0, err
	}

	logrus.Debugf("%s: %s[%d] = %g", name, spec.Kind, num, value)
	return num, value, nil
}

func extractMetric(name, contents string, spec Spec) (float64, error) {
	m := spec.Content.FindStringSubmatch(contents)
	if m == nil {
		return 0, &ContentError{File: name, Metric: spec.Metric, Contents: contents}
	}

	q, err := units.Parse(strings.Join(m[1:], " "))
	if err != nil {
		return 0, &ContentError{File: name, Metric: spec.Metric, Contents: contents, Err: err}
	}
	if spec.Unit != "" && q.Unit != spec.Unit {
		return 0, &UnitError{File: name, Want: spec.Unit, Got: q.Unit}
	}
	return q.Value, nil
}
