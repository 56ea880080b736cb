package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/pufest/pkg/report"
	"github.com/OpenTraceLab/pufest/pkg/sweep"
	"github.com/OpenTraceLab/pufest/pkg/units"
)

// writeFixtures creates area = 1000n + 500 µm² and power = 0.5n + 2 uW
// reports for n in 8, 16, 32, 64.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range []int{8, 16, 32, 64} {
		area := fmt.Sprintf("Report : area\n\nTotal cell area:          %.2f\nTotal area:   undefined\n",
			1000*float64(n)+500)
		power := fmt.Sprintf("Report : power\n\nCell Leakage Power     =   %.4f uW\n",
			0.5*float64(n)+2)
		writeFile(t, dir, fmt.Sprintf("area%d.rpt", n), area)
		writeFile(t, dir, fmt.Sprintf("power%d.rpt", n), power)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags to prevent accumulation between tests
	verbose = false
	reportDir = defaultReportDir
	outputJSON = false
	fitScale = 0
	sweepTarget = 0
	sweepSlices = units.Range{}
	sweepPUFs = units.Range{}
	sweepPerBit = ""
	csvPath = ""
	outputPath = ""

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	<-done
	os.Stdout = old
	return buf.String(), err
}

func TestCommandsE2E(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "scrape area",
			args:        []string{"scrape", "area", "--dir", dir},
			wantContain: []string{"Area reports: 4", "8 slices:", "64 slices:", "64500.0000"},
		},
		{
			name:        "fit power",
			args:        []string{"fit", "power", "--dir", dir},
			wantContain: []string{"Power model (uW vs slices)", "Slope:     0.5 uW/slice", "Points:    4", "R²:        1.0000"},
		},
		{
			name:        "fit area in mm2",
			args:        []string{"fit", "area", "--dir", dir},
			wantContain: []string{"Area model (mm² vs slices)", "Slope:     0.001 mm²/slice"},
		},
		{
			name:        "sweep power",
			args:        []string{"sweep", "power", "--dir", dir},
			wantContain: []string{"Power sweep: 912 points", "slices 8..64", "PUFs 1..16", "target 1024 bits", "Best:"},
		},
		{
			name:        "sweep narrowed",
			args:        []string{"sweep", "area", "--dir", dir, "--slices", "8..9", "--pufs", "1..2", "--target", "256"},
			wantContain: []string{"Area sweep: 4 points", "target 256 bits"},
		},
		{
			name:        "default pipeline",
			args:        []string{"--dir", dir},
			wantContain: []string{"Area model", "Power model", "Power sweep: 912 points"},
		},
		{
			name:    "unknown kind",
			args:    []string{"fit", "timing", "--dir", dir},
			wantErr: true,
		},
		{
			name:    "missing directory",
			args:    []string{"scrape", "area", "--dir", filepath.Join(dir, "missing")},
			wantErr: true,
		},
		{
			name:    "empty PUF range",
			args:    []string{"sweep", "power", "--dir", dir, "--pufs", "4..1"},
			wantErr: true,
		},
		{
			name:    "incompatible per-bit unit",
			args:    []string{"sweep", "power", "--dir", dir, "--per-bit", "3 um2"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got output:\n%s", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("Command failed: %v\nOutput:\n%s", err, out)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("Output missing %q\nGot:\n%s", want, out)
				}
			}
		})
	}
}

func TestScrapeJSON(t *testing.T) {
	dir := writeFixtures(t)

	out, err := execute(t, "scrape", "power", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}

	var entries []ReportEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}
	if entries[0].Slices != 8 || entries[0].Value != 6 {
		t.Errorf("Expected first entry {8, 6}, got %+v", entries[0])
	}
}

func TestSweepJSONAndCSV(t *testing.T) {
	dir := writeFixtures(t)
	csvFile := filepath.Join(t.TempDir(), "power.csv")

	out, err := execute(t, "sweep", "power", "--dir", dir, "--json", "--csv", csvFile)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	var points []sweep.Point
	if err := json.Unmarshal([]byte(out), &points); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(points) != 912 {
		t.Errorf("Expected 912 points, got %d", len(points))
	}

	data, err := os.ReadFile(csvFile)
	if err != nil {
		t.Fatalf("CSV not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 913 {
		t.Errorf("Expected header + 912 rows, got %d lines", len(lines))
	}
}

func TestSweepPerBitOverride(t *testing.T) {
	dir := writeFixtures(t)

	out, err := execute(t, "sweep", "power", "--dir", dir, "--json",
		"--slices", "8", "--pufs", "16", "--target", "128", "--per-bit", "1 nW")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	var points []sweep.Point
	if err := json.Unmarshal([]byte(out), &points); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Expected a single point, got %d", len(points))
	}
	pt := points[0]
	if pt.ROMBits != 8 {
		t.Errorf("Expected 8 ROM bits, got %d", pt.ROMBits)
	}
	// 8 bits * 8 slices * 0.001 uW
	if d := pt.ROM - 0.064; d > 1e-9 || d < -1e-9 {
		t.Errorf("Expected ROM 0.064 uW, got %v", pt.ROM)
	}
}

func TestPowerUnitMismatch(t *testing.T) {
	dir := writeFixtures(t)
	writeFile(t, dir, "power128.rpt", "Cell Leakage Power     =   1.5000 mW\n")

	_, err := execute(t, "fit", "power", "--dir", dir)
	if !errors.Is(err, report.ErrUnit) {
		t.Fatalf("Expected ErrUnit, got %v", err)
	}
}

func TestMissingMetricKeepsContents(t *testing.T) {
	dir := writeFixtures(t)
	writeFile(t, dir, "area128.rpt", "Report : area\nsynthesis aborted\n")

	_, err := execute(t, "scrape", "area", "--dir", dir)
	var cerr *report.ContentError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ContentError, got %v", err)
	}
	if !strings.Contains(cerr.Contents, "synthesis aborted") {
		t.Errorf("Expected raw contents, got %q", cerr.Contents)
	}
}

func TestPlotCommands(t *testing.T) {
	dir := writeFixtures(t)
	outDir := t.TempDir()

	barsPath := filepath.Join(outDir, "area.png")
	if _, err := execute(t, "plot", "bars", "area", "--dir", dir, "-o", barsPath); err != nil {
		t.Fatalf("plot bars failed: %v", err)
	}
	data, err := os.ReadFile(barsPath)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected PNG chart")
	}

	surfacePath := filepath.Join(outDir, "power.svg")
	if _, err := execute(t, "plot", "surface", "power", "--dir", dir, "-o", surfacePath); err != nil {
		t.Fatalf("plot surface failed: %v", err)
	}
	data, err = os.ReadFile(surfacePath)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("Expected SVG chart")
	}

	if _, err := execute(t, "plot", "bars", "area", "--dir", dir, "-o", filepath.Join(outDir, "area.pdf")); err == nil {
		t.Error("Expected error for unsupported output format")
	}
}
