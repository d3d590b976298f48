// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/node"
)

// Drawable is a mesh placed in a Graph.
type Drawable struct {
	pos     linear.V3
	rot     linear.V3
	scale   linear.V3
	local   linear.M4
	stale   bool
	changed bool

	mesh *Mesh
	mat  *Material
}

func newDrawable(mesh *Mesh, mat *Material, pos, rot, scale linear.V3) *Drawable {
	return &Drawable{
		pos:     pos,
		rot:     rot,
		scale:   scale,
		stale:   true,
		changed: true,
		mesh:    mesh,
		mat:     mat,
	}
}

// Local implements node.Interface.
func (d *Drawable) Local() *linear.M4 {
	if d.stale {
		d.local.Compose(&d.pos, &d.rot, &d.scale)
		d.stale = false
	}
	return &d.local
}

// Changed implements node.Interface.
func (d *Drawable) Changed() bool {
	c := d.changed
	d.changed = false
	return c
}

func (d *Drawable) touch() { d.stale, d.changed = true, true }

// SetPosition sets the translation of d.
func (d *Drawable) SetPosition(v linear.V3) { d.pos = v; d.touch() }

// SetRotation sets the XYZ Euler rotation of d.
func (d *Drawable) SetRotation(v linear.V3) { d.rot = v; d.touch() }

// SetScale sets the scale of d.
func (d *Drawable) SetScale(v linear.V3) { d.scale = v; d.touch() }

// Position returns the translation of d.
func (d *Drawable) Position() linear.V3 { return d.pos }

// Rotation returns the XYZ Euler rotation of d.
func (d *Drawable) Rotation() linear.V3 { return d.rot }

// Scale returns the scale of d.
func (d *Drawable) Scale() linear.V3 { return d.scale }

// Mesh returns the mesh of d.
func (d *Drawable) Mesh() *Mesh { return d.mesh }

// Material returns the material of d.
func (d *Drawable) Material() *Material { return d.mat }

// lightNode places a Light in a Graph.
type lightNode struct {
	light *Light
	pos   linear.V3
	local linear.M4
}

func (n *lightNode) Local() *linear.M4 { return &n.local }

func (n *lightNode) Changed() bool {
	if p := n.light.Position(); p != n.pos {
		n.pos = p
		n.local.Translate(p[0], p[1], p[2])
		return true
	}
	return false
}

// Graph is the scene graph that renderers draw.
// The zero value is an empty graph ready for use.
type Graph struct {
	graph node.Graph
}

// insert inserts d at the top of g.
func (g *Graph) insert(d *Drawable) node.Node { return g.graph.Insert(d, node.Nil) }

// AddLight inserts l at the top of g.
// The light is referenced, not copied: changes made
// to l through its methods are seen by renderers.
func (g *Graph) AddLight(l *Light) node.Node {
	n := &lightNode{light: l, pos: l.Position()}
	n.local.Translate(n.pos[0], n.pos[1], n.pos[2])
	return g.graph.Insert(n, node.Nil)
}

// RemoveLight removes the light node n from g.
// It returns false if n is not a light of g.
func (g *Graph) RemoveLight(n node.Node) bool {
	if !g.graph.Contains(n) {
		return false
	}
	if _, ok := g.graph.Get(n).(*lightNode); !ok {
		return false
	}
	g.graph.Remove(n)
	return true
}

// remove removes the drawable node n from g.
func (g *Graph) remove(n node.Node) {
	if g.graph.Contains(n) {
		g.graph.Remove(n)
	}
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return g.graph.Len() }

// Drawable returns the Drawable of n, if any.
func (g *Graph) Drawable(n node.Node) (*Drawable, bool) {
	if !g.graph.Contains(n) {
		return nil, false
	}
	d, ok := g.graph.Get(n).(*Drawable)
	return d, ok
}

// Update recomputes world transforms.
func (g *Graph) Update() { g.graph.Update() }

// forEachDrawable calls f for every Drawable in g, with its
// world transform as of the last Update.
func (g *Graph) forEachDrawable(f func(*Drawable, *linear.M4)) {
	g.graph.ForEach(func(n node.Node) {
		if d, ok := g.graph.Get(n).(*Drawable); ok {
			f(d, g.graph.World(n))
		}
	})
}

// forEachLight calls f for every Light in g, with its
// world position as of the last Update.
func (g *Graph) forEachLight(f func(*Light, *linear.V3)) {
	g.graph.ForEach(func(n node.Node) {
		if l, ok := g.graph.Get(n).(*lightNode); ok {
			w := g.graph.World(n)[3]
			pos := w.V3()
			f(l.light, &pos)
		}
	})
}

// clear removes every node from g.
func (g *Graph) clear() { g.graph = node.Graph{} }
