package plot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/pufest/pkg/fit"
	"github.com/OpenTraceLab/pufest/pkg/report"
	"github.com/OpenTraceLab/pufest/pkg/sweep"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "area.png", want: PNG},
		{path: "out/POWER.SVG", want: SVG},
		{path: "sweep.pdf", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FormatFromPath(%q) should fail", tt.path)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestBarsPNG(t *testing.T) {
	set := report.Set{8: 1.2e6, 16: 2.3e6, 32: 4.4e6, 64: 8.9e6}

	var buf bytes.Buffer
	err := Bars(&buf, set, BarOptions{Title: "Area", YLabel: "Area (mm²)", Scale: 1000 * 1000})
	if err != nil {
		t.Fatalf("Bars failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("Expected PNG output, got %d bytes starting %q", buf.Len(), buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestBarsSVG(t *testing.T) {
	set := report.Set{8: 10.5, 16: 20.25}

	var buf bytes.Buffer
	if err := Bars(&buf, set, BarOptions{Title: "Power", Format: SVG}); err != nil {
		t.Fatalf("Bars failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("Expected SVG document")
	}
}

func TestBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Bars(&buf, report.Set{}, BarOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestSurface(t *testing.T) {
	points, err := sweep.Run(fit.Model{Slope: 0.4, Intercept: 2}, sweep.DefaultPowerConfig())
	if err != nil {
		t.Fatalf("sweep.Run failed: %v", err)
	}

	for _, format := range []Format{PNG, SVG} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			err := Surface(&buf, points, SurfaceOptions{Title: "PUF+LPROM", ZLabel: "Power (uW)", Format: format})
			if err != nil {
				t.Fatalf("Surface failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Fatal("Expected rendered output")
			}
		})
	}
}

func TestSurfaceSinglePoint(t *testing.T) {
	points := []sweep.Point{{Slices: 8, PUFs: 1, Total: 3}}

	var buf bytes.Buffer
	if err := Surface(&buf, points, SurfaceOptions{}); err != nil {
		t.Fatalf("Surface failed on a single point: %v", err)
	}
	if err := Surface(&buf, nil, SurfaceOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}
