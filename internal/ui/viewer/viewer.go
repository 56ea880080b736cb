// Package viewer shows a rendered chart in a Gio window.
package viewer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/sirupsen/logrus"
)

// Largest initial window, in dp. Bigger charts are scaled down to fit.
const (
	maxWidth  = 1400
	maxHeight = 900
)

var background = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// ShowPNG decodes a PNG chart and hands it to Show.
func ShowPNG(title string, data []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("viewer: decode chart: %w", err)
	}
	Show(title, img)
	return nil
}

// Show opens a window with img and runs the Gio main loop. It takes over the
// calling goroutine and exits the process once the window is closed.
func Show(title string, img image.Image) {
	go func() {
		w := new(app.Window)
		w.Option(app.Title(title))
		width, height := windowSize(img.Bounds())
		w.Option(app.Size(width, height))

		if err := run(w, img); err != nil {
			logrus.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(w *app.Window, img image.Image) error {
	var ops op.Ops
	src := paint.NewImageOp(img)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press && isCloseKey(ke.Name) {
					return nil
				}
			}

			paint.Fill(gtx.Ops, background)
			widget.Image{
				Src:      src,
				Fit:      widget.Contain,
				Position: layout.Center,
			}.Layout(gtx)

			e.Frame(gtx.Ops)
		}
	}
}

func isCloseKey(name key.Name) bool {
	switch name {
	case key.NameEscape, "Q":
		return true
	}
	return false
}

// windowSize keeps the image aspect ratio while fitting inside the
// maximum window size.
func windowSize(b image.Rectangle) (unit.Dp, unit.Dp) {
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		return unit.Dp(maxWidth), unit.Dp(maxHeight)
	}
	scale := 1.0
	if w > maxWidth {
		scale = maxWidth / w
	}
	if h*scale > maxHeight {
		scale = maxHeight / h
	}
	return unit.Dp(w * scale), unit.Dp(h * scale)
}
