// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image/color"

	"github.com/gviegas/greenspace/linear"
)

// Mesh is polygonal geometry.
// Faces are convex quads wound counter-clockwise when
// seen from the side their normal points to.
type Mesh struct {
	pos   []linear.V3
	faces []face
}

type face struct {
	idx    [4]int
	normal linear.V3
	center linear.V3
}

// NewBox creates a box mesh centered at the origin.
func NewBox(width, height, depth float64) *Mesh {
	x, y, z := width/2, height/2, depth/2
	m := &Mesh{
		pos: []linear.V3{
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		},
	}
	for _, f := range [...]struct {
		idx    [4]int
		normal linear.V3
	}{
		{[4]int{0, 1, 2, 3}, linear.V3{0, 0, 1}},
		{[4]int{5, 4, 7, 6}, linear.V3{0, 0, -1}},
		{[4]int{1, 5, 6, 2}, linear.V3{1, 0, 0}},
		{[4]int{4, 0, 3, 7}, linear.V3{-1, 0, 0}},
		{[4]int{3, 2, 6, 7}, linear.V3{0, 1, 0}},
		{[4]int{4, 5, 1, 0}, linear.V3{0, -1, 0}},
	} {
		var c linear.V3
		for _, i := range f.idx {
			c.Add(&c, &m.pos[i])
		}
		c.Scale(0.25, &c)
		m.faces = append(m.faces, face{f.idx, f.normal, c})
	}
	return m
}

// Len returns the number of faces in m.
func (m *Mesh) Len() int { return len(m.faces) }

// unitBox is shared by every object that the Adapter
// creates. Meshes are never modified after creation.
var unitBox = NewBox(1, 1, 1)

// Material defines the material properties to be applied
// to geometry during rendering.
type Material struct {
	rgb linear.V3
}

// NewMaterial creates a material of the given color.
func NewMaterial(c color.Color) *Material {
	m := new(Material)
	m.SetColor(c)
	return m
}

// SetColor sets the base color of m.
// The alpha channel is ignored.
func (m *Material) SetColor(c color.Color) {
	r, g, b := rgbOf(c)
	m.rgb = linear.V3{r, g, b}
}

// Color returns the base color of m.
func (m *Material) Color() color.Color {
	return color.NRGBA{
		R: uint8(m.rgb[0]*255 + 0.5),
		G: uint8(m.rgb[1]*255 + 0.5),
		B: uint8(m.rgb[2]*255 + 0.5),
		A: 255,
	}
}
