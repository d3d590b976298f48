// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gviegas/greenspace/linear"
)

// Camera is a perspective camera that looks at a target.
type Camera struct {
	pos    linear.V3
	target linear.V3
	fov    float64
	aspect float64
	near   float64
	far    float64
}

// NewCamera creates a new camera from config.
// The camera looks at the origin.
func NewCamera(config *Config) *Camera {
	cfg := *config
	cfg.fill()
	return &Camera{
		pos:    cfg.CameraPosition,
		fov:    cfg.FOV,
		aspect: cfg.Aspect,
		near:   cfg.Near,
		far:    cfg.Far,
	}
}

// SetPosition moves c to p.
// The target is kept.
func (c *Camera) SetPosition(p linear.V3) { c.pos = p }

// Position returns the position of c.
func (c *Camera) Position() linear.V3 { return c.pos }

// SetTarget makes c look at t.
func (c *Camera) SetTarget(t linear.V3) { c.target = t }

// Target returns the point that c looks at.
func (c *Camera) Target() linear.V3 { return c.target }

// SetFOV sets the vertical field of view of c, in degrees.
// The value is stored as is.
func (c *Camera) SetFOV(deg float64) { c.fov = deg }

// FOV returns the vertical field of view of c, in degrees.
func (c *Camera) FOV() float64 { return c.fov }

// SetAspect sets the aspect ratio of c.
// Non-positive values are ignored.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// Aspect returns the aspect ratio of c.
func (c *Camera) Aspect() float64 { return c.aspect }

// Clip returns the near and far clipping planes of c.
func (c *Camera) Clip() (near, far float64) { return c.near, c.far }

// View returns the view matrix of c.
func (c *Camera) View() linear.M4 {
	eye := mgl64.Vec3{c.pos[0], c.pos[1], c.pos[2]}
	center := mgl64.Vec3{c.target[0], c.target[1], c.target[2]}
	if eye.ApproxEqual(center) {
		center = eye.Sub(mgl64.Vec3{0, 0, 1})
	}
	up := mgl64.Vec3{0, 1, 0}
	if dir := center.Sub(eye).Normalize(); math.Abs(dir.Dot(up)) > 1-1e-9 {
		up = mgl64.Vec3{0, 0, -1}
	}
	return fromMat4(mgl64.LookAtV(eye, center, up))
}

// Projection returns the projection matrix of c.
func (c *Camera) Projection() linear.M4 {
	fov := min(max(c.fov, 1e-3), 179)
	return fromMat4(mgl64.Perspective(mgl64.DegToRad(fov), c.aspect, c.near, c.far))
}

// ViewProjection returns the product of the projection
// and view matrices of c.
func (c *Camera) ViewProjection() (m linear.M4) {
	v := c.View()
	p := c.Projection()
	m.Mul(&p, &v)
	return
}

func fromMat4(a mgl64.Mat4) (m linear.M4) {
	for i := range m {
		copy(m[i][:], a[i*4:i*4+4])
	}
	return
}
