// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image/color"
	"math"

	"github.com/gviegas/greenspace/linear"
)

const (
	ambientLight = iota
	distantLight
	pointLight
	spotLight
)

// Light defines a light source.
// The zero value for Light is not valid; one must
// call AmbientLight.Light, DistantLight.Light,
// PointLight.Light or SpotLight.Light to create an
// initialized Light.
type Light struct {
	typ       int
	dir       linear.V3
	pos       linear.V3
	intensity float64
	rng       float64
	rgb       linear.V3
	angScale  float64
	angOffset float64
	// Used to reconstruct the inner/outer
	// cone angles.
	// Ignored if typ is not spotLight.
	cosOuter float64
}

// SetDirection sets the direction of l.
// It does not normalize d.
// Only applies to distant and spot lights.
func (l *Light) SetDirection(d *linear.V3) { l.dir = *d }

// Direction returns the direction of l.
// Only applies to distant and spot lights.
func (l *Light) Direction() linear.V3 { return l.dir }

// SetPosition sets the position of l.
// Only applies to point and spot lights.
func (l *Light) SetPosition(p *linear.V3) { l.pos = *p }

// Position returns the position of l.
// Only applies to point and spot lights.
func (l *Light) Position() linear.V3 { return l.pos }

// SetIntensity sets the intensity of l.
func (l *Light) SetIntensity(i float64) { l.intensity = max(0, i) }

// Intensity returns the intensity of l.
func (l *Light) Intensity() float64 { return l.intensity }

// SetRange sets the falloff range of l.
// Only applies to point and spot lights.
func (l *Light) SetRange(r float64) { l.rng = r }

// Range returns the falloff range of l.
// Only applies to point and spot lights.
func (l *Light) Range() float64 { return l.rng }

// SetColor sets the RGB color of l.
func (l *Light) SetColor(r, g, b float64) { l.rgb = linear.V3{r, g, b} }

// Color returns the RGB color of l.
func (l *Light) Color() (r, g, b float64) { return l.rgb[0], l.rgb[1], l.rgb[2] }

// SetConeAngles sets the inner/outer cone angles of l.
// Cone angles that exceed math.Pi/2, or that are less
// than zero, will be clamped. The inner angle will be
// adjusted such that it is less than the outer angle.
// Only applies to spot lights.
func (l *Light) SetConeAngles(inner, outer float64) {
	var (
		i    = max(0, min(inner, math.Pi/2-1e-6))
		o    = max(i+1e-6, min(outer, math.Pi/2))
		cosi = math.Cos(i)
		coso = math.Cos(o)
	)
	l.angScale = 1 / (cosi - coso)
	l.angOffset = l.angScale * -coso
	l.cosOuter = coso
}

// ConeAngles returns the inner/outer cone angles of l.
// Note that it returns the clamped angles (see the doc
// for Light.SetConeAngles).
// Only applies to spot lights.
func (l *Light) ConeAngles() (inner, outer float64) {
	cosi := (1 / l.angScale) + l.cosOuter
	return math.Acos(cosi), math.Acos(l.cosOuter)
}

// radiance returns the light that l, located at pos,
// casts on a surface at p with unit normal n.
func (l *Light) radiance(pos, n, p *linear.V3) (rgb linear.V3) {
	var f float64
	switch l.typ {
	case ambientLight:
		f = 1
	case distantLight:
		var d linear.V3
		d.Norm(&l.dir)
		f = max(0, -n.Dot(&d))
	case pointLight, spotLight:
		var d linear.V3
		d.Sub(pos, p)
		dist := d.Len()
		if dist == 0 {
			return
		}
		d.Scale(1/dist, &d)
		f = max(0, n.Dot(&d)) * l.falloff(dist)
		if l.typ == spotLight {
			var s linear.V3
			s.Norm(&l.dir)
			c := min(1, max(0, -d.Dot(&s)*l.angScale+l.angOffset))
			f *= c * c
		}
	}
	rgb.Scale(f*l.intensity, &l.rgb)
	return
}

// falloff returns the range attenuation at distance d.
func (l *Light) falloff(d float64) float64 {
	if l.rng <= 0 {
		return 1
	}
	x := max(0, 1-d/l.rng)
	return x * x
}

// rgbOf converts c to RGB components in [0, 1].
func rgbOf(c color.Color) (r, g, b float64) {
	cr, cg, cb, _ := c.RGBA()
	return float64(cr) / 0xffff, float64(cg) / 0xffff, float64(cb) / 0xffff
}

// AmbientLight is a light that reaches every surface
// equally, regardless of orientation.
type AmbientLight struct {
	Intensity float64
	R, G, B   float64
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
func (t *AmbientLight) Light() (light Light) {
	light.typ = ambientLight
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	return
}

// DistantLight is a directional light.
// The light is emitted in the given Direction.
// It behaves as if located infinitely far way.
type DistantLight struct {
	Direction linear.V3
	Intensity float64
	R, G, B   float64
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
func (t *DistantLight) Light() (light Light) {
	light.typ = distantLight
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	light.SetDirection(&t.Direction)
	return
}

// PointLight is an omnidirectional, positional light.
// The light is emitted in all directions from the
// given Position.
// Range determines the area affected by the light.
type PointLight struct {
	Position  linear.V3
	Range     float64
	Intensity float64
	R, G, B   float64
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
// t.Range may be set to 0 or less to indicate an
// infinite range.
func (t *PointLight) Light() (light Light) {
	light.typ = pointLight
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(t.R, t.G, t.B)
	light.SetPosition(&t.Position)
	return
}

// SpotLight is a directional, positional light.
// The light is emitted in a cone in the given Direction
// from the given Position.
// InnerAngle and OuterAngle (in radians), alongside
// Range, determine the area affected by the light.
type SpotLight struct {
	Direction  linear.V3
	Position   linear.V3
	InnerAngle float64
	OuterAngle float64
	Range      float64
	Intensity  float64
	R, G, B    float64
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
// t.Range may be set to 0 or less to indicate an
// infinite range.
// The cone angles will be adjusted as per
// Light.SetConeAngles.
func (t *SpotLight) Light() (light Light) {
	light.typ = spotLight
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(t.R, t.G, t.B)
	light.SetConeAngles(t.InnerAngle, t.OuterAngle)
	light.SetPosition(&t.Position)
	light.SetDirection(&t.Direction)
	return
}
