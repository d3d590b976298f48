// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"slices"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/wsi"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

var errClosed = newRendErr("renderer is closed")

// Renderer is a software renderer.
// It draws the faces of every Drawable in a Graph,
// lit by every Light in the same Graph.
type Renderer struct {
	dc    *gg.Context
	bg    gg.RGBA
	faces []shaded
	light []lit
}

// shaded is a projected face ready to be filled.
type shaded struct {
	pts   [4][2]float64
	depth float64
	rgb   linear.V3
}

type lit struct {
	light *Light
	pos   linear.V3
}

func (r *Renderer) init(width, height int) error {
	if width <= 0 || height <= 0 {
		return newRendErr(fmt.Sprintf("invalid size %dx%d", width, height))
	}
	r.dc = gg.NewContext(width, height)
	r.bg = gg.FromColor(colornames.Black)
	return nil
}

// SetBackground sets the color that r clears to.
func (r *Renderer) SetBackground(c color.Color) { r.bg = gg.FromColor(c) }

// Size returns the dimensions of r's target.
func (r *Renderer) Size() (width, height int) {
	if r.dc == nil {
		return 0, 0
	}
	return r.dc.Width(), r.dc.Height()
}

// Resize changes the dimensions of r's target.
func (r *Renderer) Resize(width, height int) error {
	if r.dc == nil {
		return errClosed
	}
	if err := r.dc.Resize(width, height); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}

// Close releases the resources of r.
// Calling Close more than once has no effect.
func (r *Renderer) Close() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	*r = Renderer{}
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}

// draw renders g as seen by cam.
// It updates the world transforms of g.
func (r *Renderer) draw(g *Graph, cam *Camera) error {
	if r.dc == nil {
		return errClosed
	}
	g.Update()
	r.dc.ClearWithColor(r.bg)

	r.light = r.light[:0]
	g.forEachLight(func(l *Light, pos *linear.V3) {
		r.light = append(r.light, lit{l, *pos})
	})

	var (
		vp      = cam.ViewProjection()
		eye     = cam.Position()
		near, _ = cam.Clip()
		w       = float64(r.dc.Width())
		h       = float64(r.dc.Height())
	)
	r.faces = r.faces[:0]
	g.forEachDrawable(func(d *Drawable, world *linear.M4) {
		var mvp linear.M4
		mvp.Mul(&vp, world)
		var nm linear.M3
		nm.Normal(world)
	faces:
		for i := range d.mesh.faces {
			f := &d.mesh.faces[i]
			c4 := linear.V4{f.center[0], f.center[1], f.center[2], 1}
			c4.Mul(world, &c4)
			center := c4.V3()
			var n, toEye linear.V3
			n.Mul(&nm, &f.normal)
			n.Norm(&n)
			toEye.Sub(&eye, &center)
			if n.Dot(&toEye) <= 0 {
				continue
			}
			var s shaded
			for j, k := range f.idx {
				p := d.mesh.pos[k]
				clip := linear.V4{p[0], p[1], p[2], 1}
				clip.Mul(&mvp, &clip)
				if clip[3] < near {
					continue faces
				}
				s.pts[j] = [2]float64{
					(clip[0]/clip[3] + 1) / 2 * w,
					(1 - clip[1]/clip[3]) / 2 * h,
				}
				s.depth += clip[3] / 4
			}
			for _, l := range r.light {
				rad := l.light.radiance(&l.pos, &n, &center)
				s.rgb.Add(&s.rgb, &rad)
			}
			for j := range s.rgb {
				s.rgb[j] = min(1, max(0, s.rgb[j]*d.mat.rgb[j]))
			}
			r.faces = append(r.faces, s)
		}
	})

	slices.SortStableFunc(r.faces, func(a, b shaded) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	for i := range r.faces {
		s := &r.faces[i]
		r.dc.SetRGB(s.rgb[0], s.rgb[1], s.rgb[2])
		r.dc.MoveTo(s.pts[0][0], s.pts[0][1])
		for _, p := range s.pts[1:] {
			r.dc.LineTo(p[0], p[1])
		}
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
	}
	return nil
}

// image returns the last frame rendered by r.
func (r *Renderer) image() (image.Image, error) {
	if r.dc == nil {
		return nil, errClosed
	}
	if err := r.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return r.dc.Image(), nil
}

// Onscreen is a Renderer that targets a wsi.Window.
type Onscreen struct {
	Renderer
	win wsi.Window
}

// NewOnscreen creates a new onscreen renderer.
// Its size is that of win.
func NewOnscreen(win wsi.Window) (*Onscreen, error) {
	if win == nil {
		return nil, newRendErr("nil wsi.Window in call to NewOnscreen")
	}
	r := &Onscreen{win: win}
	if err := r.init(win.Width(), win.Height()); err != nil {
		return nil, err
	}
	return r, nil
}

// Window returns the wsi.Window associated with r.
func (r *Onscreen) Window() wsi.Window { return r.win }

// Render draws g as seen by cam and presents the
// result to r's window.
func (r *Onscreen) Render(g *Graph, cam *Camera) error {
	if err := r.draw(g, cam); err != nil {
		return err
	}
	img, err := r.image()
	if err != nil {
		return err
	}
	return r.win.Present(img)
}

// Offscreen is a Renderer that targets an image.
type Offscreen struct {
	Renderer
}

// NewOffscreen creates a new offscreen renderer.
func NewOffscreen(width, height int) (*Offscreen, error) {
	r := new(Offscreen)
	if err := r.init(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Render draws g as seen by cam.
func (r *Offscreen) Render(g *Graph, cam *Camera) error { return r.draw(g, cam) }

// Image returns the last frame rendered by r.
func (r *Offscreen) Image() (image.Image, error) { return r.image() }

// SavePNG writes the last frame rendered by r to a
// PNG file.
func (r *Offscreen) SavePNG(path string) error {
	if r.dc == nil {
		return errClosed
	}
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}

// EncodePNG writes the last frame rendered by r to w
// in PNG format.
func (r *Offscreen) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return errClosed
	}
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}
