// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package host

import (
	"math"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/wsi"
)

// Maximum elevation of the camera when orbiting
// vertically. The camera never reaches the poles.
const maxElevation = math.Pi/2 - 0.05

// KeyboardKey implements wsi.KeyboardHandler.
func (h *Host) KeyboardKey(key wsi.Key, mod wsi.Modifier) {
	if !h.Mounted() {
		return
	}
	switch key {
	case wsi.KeyQ, wsi.KeyEsc:
		h.quit = true
	case wsi.KeyC:
		if mod&wsi.ModCtrl != 0 {
			h.quit = true
		}
	case wsi.KeyLeft:
		h.orbit(-h.cfg.OrbitStep, 0)
	case wsi.KeyRight:
		h.orbit(h.cfg.OrbitStep, 0)
	case wsi.KeyUp:
		h.orbit(0, h.cfg.OrbitStep)
	case wsi.KeyDown:
		h.orbit(0, -h.cfg.OrbitStep)
	case wsi.KeyEqual:
		h.zoom(-h.cfg.FOVStep)
	case wsi.KeyMinus:
		h.zoom(h.cfg.FOVStep)
	case wsi.KeyA:
		h.addRandom()
	case wsi.KeyX:
		h.removeNewest()
	case wsi.KeyR:
		h.resetCamera()
	}
}

// orbit rotates the camera around its target by yaw
// radians around the Y axis and then by pitch radians
// around the camera's horizontal axis.
func (h *Host) orbit(yaw, pitch float64) {
	cam := h.adapter.State().Camera
	tgt := linear.V3{cam.Target.X, cam.Target.Y, cam.Target.Z}
	var off linear.V3
	off.Sub(&linear.V3{cam.Position.X, cam.Position.Y, cam.Position.Z}, &tgt)
	dist := off.Len()
	if dist == 0 {
		return
	}

	if yaw != 0 {
		off = rotate(&off, yaw, &linear.V3{0, 1, 0})
	}
	if pitch != 0 {
		elev := math.Asin(max(-1, min(1, off[1]/dist)))
		pitch = max(-maxElevation-elev, min(maxElevation-elev, pitch))
		// Rotating around off × up moves the camera
		// upwards for positive angles.
		var axis linear.V3
		axis.Cross(&off, &linear.V3{0, 1, 0})
		if axis.Len() > 1e-9 {
			axis.Norm(&axis)
			off = rotate(&off, pitch, &axis)
		}
	}

	off.Add(&off, &tgt)
	h.adapter.SetCameraPosition(greenspace.Vector3D{X: off[0], Y: off[1], Z: off[2]})
}

// rotate returns v rotated by angle radians around
// the unit vector axis.
func rotate(v *linear.V3, angle float64, axis *linear.V3) linear.V3 {
	var q linear.Q
	q.Rotate(angle, axis)
	var m linear.M4
	m.RotateQ(&q)
	w := linear.V4{v[0], v[1], v[2], 0}
	w.Mul(&m, &w)
	return w.V3()
}

// zoom changes the field of view by delta degrees.
func (h *Host) zoom(delta float64) {
	fov := h.adapter.State().Camera.FOV + delta
	h.adapter.SetCameraFOV(max(minFOV, min(maxFOV, fov)))
}

// addRandom adds an object at a random offset from the
// origin.
func (h *Host) addRandom() {
	off := func() float64 { return h.rand.Float64()*4 - 2 }
	h.adapter.AddObject(greenspace.Transform{
		Position: greenspace.Vector3D{X: off(), Y: off(), Z: off()},
		Scale:    greenspace.Vector3D{X: 0.5, Y: 0.5, Z: 0.5},
	})
}

// removeNewest removes the most recently added object.
func (h *Host) removeNewest() {
	st := h.adapter.State()
	if n := len(st.Objects); n > 0 {
		h.adapter.RemoveObject(st.Objects[n-1].ID)
	}
}

// resetCamera restores the camera as it was when h
// was mounted.
func (h *Host) resetCamera() {
	h.adapter.SetCameraPosition(h.home.Position)
	h.adapter.SetCameraTarget(h.home.Target)
	h.adapter.SetCameraFOV(h.home.FOV)
}
