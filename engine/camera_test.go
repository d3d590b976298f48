// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"
	"testing"

	"github.com/gviegas/greenspace/linear"
)

func project(m *linear.M4, p linear.V3) linear.V3 {
	v := linear.V4{p[0], p[1], p[2], 1}
	v.Mul(m, &v)
	return linear.V3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

func TestCamera(t *testing.T) {
	cfg := DefaultConfig()
	cam := NewCamera(&cfg)
	if p := cam.Position(); p != (linear.V3{0, 0, 5}) {
		t.Fatalf("Camera.Position\nhave %v\nwant [0 0 5]", p)
	}
	if fov := cam.FOV(); fov != 75 {
		t.Fatalf("Camera.FOV\nhave %v\nwant 75", fov)
	}
	if n, f := cam.Clip(); n != 0.1 || f != 1000 {
		t.Fatalf("Camera.Clip\nhave %v, %v\nwant 0.1, 1000", n, f)
	}

	vp := cam.ViewProjection()
	o := project(&vp, linear.V3{})
	if math.Abs(o[0]) > 1e-9 || math.Abs(o[1]) > 1e-9 {
		t.Fatalf("origin in NDC\nhave %v\nwant [0 0 z]", o)
	}
	if o[2] <= -1 || o[2] >= 1 {
		t.Fatalf("origin depth\nhave %v\nwant (-1, 1)", o[2])
	}
	up := project(&vp, linear.V3{0, 1, 0})
	if up[1] <= 0 {
		t.Fatalf("+Y in NDC\nhave %v\nwant positive Y", up)
	}
	right := project(&vp, linear.V3{1, 0, 0})
	if right[0] <= 0 {
		t.Fatalf("+X in NDC\nhave %v\nwant positive X", right)
	}
}

func TestCameraTarget(t *testing.T) {
	cam := NewCamera(&Config{})
	cam.SetTarget(linear.V3{1, 0, 0})
	cam.SetPosition(linear.V3{1, 0, 5})
	if tg := cam.Target(); tg != (linear.V3{1, 0, 0}) {
		t.Fatalf("Camera.Target\nhave %v\nwant [1 0 0]", tg)
	}
	vp := cam.ViewProjection()
	o := project(&vp, linear.V3{1, 0, 0})
	if math.Abs(o[0]) > 1e-9 || math.Abs(o[1]) > 1e-9 {
		t.Fatalf("target in NDC\nhave %v\nwant [0 0 z]", o)
	}
}

func TestCameraDegenerate(t *testing.T) {
	cam := NewCamera(&Config{})
	for _, p := range [...]linear.V3{{0, 0, 0}, {0, 5, 0}, {0, -5, 0}} {
		cam.SetPosition(p)
		v := cam.View()
		for i := range v {
			for j := range v[i] {
				if math.IsNaN(v[i][j]) || math.IsInf(v[i][j], 0) {
					t.Fatalf("Camera.View at %v\nhave %v\nwant finite values", p, v)
				}
			}
		}
	}
}

func TestCameraAspect(t *testing.T) {
	cam := NewCamera(&Config{})
	cam.SetAspect(2)
	cam.SetAspect(0)
	cam.SetAspect(-1)
	if a := cam.Aspect(); a != 2 {
		t.Fatalf("Camera.Aspect\nhave %v\nwant 2", a)
	}
	p := cam.Projection()
	if r := p[1][1] / p[0][0]; math.Abs(r-2) > 1e-9 {
		t.Fatalf("projection aspect\nhave %v\nwant 2", r)
	}
}
