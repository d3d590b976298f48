// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package greenspace defines the model of an interactive
// 3D scene: objects with a transform, a perspective camera,
// and the Service through which they are manipulated.
//
// A Service implementation owns the live scene. Callers only
// ever see State values, which are snapshots taken at query
// time that do not alias the implementation's data.
package greenspace

// Vector3D is a triple of real numbers.
// It is used for positions, Euler rotations (in radians,
// applied in XYZ order) and scales.
type Vector3D struct {
	X, Y, Z float64
}

// Transform is the placement of an object in the scene.
type Transform struct {
	Position Vector3D
	Rotation Vector3D
	Scale    Vector3D
}

// Object is a scene object.
// ID is assigned by the Service on insertion and never
// changes during the lifetime of the object.
type Object struct {
	ID string
	Transform
}

// CameraSettings describes a perspective camera.
// FOV is the vertical field of view in degrees.
type CameraSettings struct {
	Position Vector3D
	Target   Vector3D
	FOV      float64
}

// State is a snapshot of the scene.
// Objects are in insertion order.
type State struct {
	Objects []Object
	Camera  CameraSettings
}

// Object returns the object identified by id.
func (s *State) Object(id string) (Object, bool) {
	for _, o := range s.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}

// Clone returns a copy of s that shares no memory with it.
func (s *State) Clone() State {
	c := State{Camera: s.Camera}
	if s.Objects != nil {
		c.Objects = append(make([]Object, 0, len(s.Objects)), s.Objects...)
	}
	return c
}
