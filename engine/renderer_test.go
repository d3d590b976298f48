// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/wsi"
)

// litScene creates an Adapter with ambient and distant
// lights and a unit box at the origin.
func litScene(t *testing.T) (*Adapter, string) {
	t.Helper()
	a := NewAdapter(nil)
	amb := (&AmbientLight{Intensity: 0.5, R: 1, G: 1, B: 1}).Light()
	dir := (&DistantLight{Direction: linear.V3{-1, -1, -1}, Intensity: 1, R: 1, G: 1, B: 1}).Light()
	a.View(func(g *Graph, _ *Camera) {
		g.AddLight(&amb)
		g.AddLight(&dir)
	})
	o := a.AddObject(greenspace.Transform{Scale: greenspace.Vector3D{X: 1, Y: 1, Z: 1}})
	return a, o.ID
}

func nrgba(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func isGreen(c color.NRGBA) bool { return c.G > 200 && c.R < 50 && c.B < 50 }
func isBlack(c color.NRGBA) bool { return c.R < 10 && c.G < 10 && c.B < 10 }

func TestOffscreen(t *testing.T) {
	r, err := NewOffscreen(64, 64)
	if err != nil {
		t.Fatalf("NewOffscreen failed:\n%#v", err)
	}
	defer r.Close()
	if w, h := r.Size(); w != 64 || h != 64 {
		t.Fatalf("Offscreen.Size\nhave %dx%d\nwant 64x64", w, h)
	}

	a, id := litScene(t)
	a.View(func(g *Graph, c *Camera) {
		if err := r.Render(g, c); err != nil {
			t.Fatalf("Offscreen.Render failed:\n%#v", err)
		}
	})
	img, err := r.Image()
	if err != nil {
		t.Fatalf("Offscreen.Image failed:\n%#v", err)
	}
	if c := nrgba(img, 32, 32); !isGreen(c) {
		t.Fatalf("center pixel\nhave %v\nwant green", c)
	}
	if c := nrgba(img, 1, 1); !isBlack(c) {
		t.Fatalf("corner pixel\nhave %v\nwant black", c)
	}

	a.RemoveObject(id)
	a.View(func(g *Graph, c *Camera) {
		if err := r.Render(g, c); err != nil {
			t.Fatalf("Offscreen.Render failed:\n%#v", err)
		}
	})
	if img, _ = r.Image(); !isBlack(nrgba(img, 32, 32)) {
		t.Fatalf("center pixel after RemoveObject\nhave %v\nwant black", nrgba(img, 32, 32))
	}
}

func TestOffscreenBehind(t *testing.T) {
	r, err := NewOffscreen(32, 32)
	if err != nil {
		t.Fatalf("NewOffscreen failed:\n%#v", err)
	}
	defer r.Close()
	a, _ := litScene(t)
	a.SetCameraTarget(greenspace.Vector3D{Z: 10})
	a.View(func(g *Graph, c *Camera) {
		if err := r.Render(g, c); err != nil {
			t.Fatalf("Offscreen.Render failed:\n%#v", err)
		}
	})
	img, _ := r.Image()
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c := nrgba(img, x, y); !isBlack(c) {
				t.Fatalf("pixel (%d, %d)\nhave %v\nwant black", x, y, c)
			}
		}
	}
}

func TestOffscreenPNG(t *testing.T) {
	r, err := NewOffscreen(16, 8)
	if err != nil {
		t.Fatalf("NewOffscreen failed:\n%#v", err)
	}
	defer r.Close()
	r.SetBackground(color.White)
	a, _ := litScene(t)
	a.View(func(g *Graph, c *Camera) { r.Render(g, c) })

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("Offscreen.EncodePNG failed:\n%#v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed:\n%#v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("PNG bounds\nhave %v\nwant 16x8", b)
	}
	if c := nrgba(img, 0, 0); c.R < 250 || c.G < 250 || c.B < 250 {
		t.Fatalf("corner pixel\nhave %v\nwant white", c)
	}

	if err := r.SavePNG(filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Fatalf("Offscreen.SavePNG failed:\n%#v", err)
	}
}

func TestRendererErrors(t *testing.T) {
	for _, sz := range [...][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := NewOffscreen(sz[0], sz[1])
		if err == nil || !strings.HasPrefix(err.Error(), "renderer: ") {
			t.Fatalf("NewOffscreen(%d, %d)\nhave %v\nwant renderer error", sz[0], sz[1], err)
		}
	}
	if _, err := NewOnscreen(nil); err == nil {
		t.Fatal("NewOnscreen(nil): unexpected nil error")
	}

	r, err := NewOffscreen(8, 8)
	if err != nil {
		t.Fatalf("NewOffscreen failed:\n%#v", err)
	}
	if err := r.Resize(0, 8); err == nil {
		t.Fatal("Offscreen.Resize(0, 8): unexpected nil error")
	}
	if err := r.Resize(12, 6); err != nil {
		t.Fatalf("Offscreen.Resize failed:\n%#v", err)
	}
	if w, h := r.Size(); w != 12 || h != 6 {
		t.Fatalf("Offscreen.Size\nhave %dx%d\nwant 12x6", w, h)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Offscreen.Close failed:\n%#v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Offscreen.Close (closed)\nhave %v\nwant nil", err)
	}
	var g Graph
	cam := NewCamera(&Config{})
	if err := r.Render(&g, cam); err != errClosed {
		t.Fatalf("Offscreen.Render after Close\nhave %v\nwant %v", err, errClosed)
	}
	if _, err := r.Image(); err != errClosed {
		t.Fatalf("Offscreen.Image after Close\nhave %v\nwant %v", err, errClosed)
	}
}

func TestOnscreen(t *testing.T) {
	win, scr, err := wsi.NewSimWindow(16, 8, "test")
	if err != nil {
		t.Fatalf("wsi.NewSimWindow failed:\n%#v", err)
	}
	defer win.Close()
	r, err := NewOnscreen(win)
	if err != nil {
		t.Fatalf("NewOnscreen failed:\n%#v", err)
	}
	defer r.Close()
	if r.Window() != win {
		t.Fatal("Onscreen.Window: wrong window")
	}
	if w, h := r.Size(); w != 16 || h != 16 {
		t.Fatalf("Onscreen.Size\nhave %dx%d\nwant 16x16", w, h)
	}

	a, _ := litScene(t)
	a.View(func(g *Graph, c *Camera) {
		if err := r.Render(g, c); err != nil {
			t.Fatalf("Onscreen.Render failed:\n%#v", err)
		}
	})
	cells, w, _ := scr.GetContents()
	fg, _, _ := cells[4*w+8].Style.Decompose()
	rr, gg, bb := fg.RGB()
	if gg < 200 || rr > 50 || bb > 50 {
		t.Fatalf("center cell\nhave %v\nwant green", fg)
	}
	if fg, _, _ = cells[0].Style.Decompose(); fg != tcell.NewRGBColor(0, 0, 0) {
		t.Fatalf("corner cell\nhave %v\nwant black", fg)
	}
}
