// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package greenspace

// Service is the interface that defines the operations
// on a scene.
//
// Operations that name an object which is not in the
// scene do nothing. Every operation that changes the
// scene calls the subscribed functions with a State
// that reflects the change, before returning.
type Service interface {
	// State returns a snapshot of the scene.
	State() State

	// AddObject inserts a new object placed at t.
	// It returns the object, with its newly assigned ID.
	AddObject(t Transform) Object

	// RemoveObject removes an object.
	RemoveObject(id string)

	// UpdateObjectPosition sets the position of an object.
	UpdateObjectPosition(id string, pos Vector3D)

	// UpdateObjectRotation sets the rotation of an object.
	UpdateObjectRotation(id string, rot Vector3D)

	// UpdateObjectScale sets the scale of an object.
	UpdateObjectScale(id string, scale Vector3D)

	// SetCameraPosition moves the camera.
	SetCameraPosition(pos Vector3D)

	// SetCameraTarget points the camera at target
	// without moving it.
	SetCameraTarget(target Vector3D)

	// SetCameraFOV sets the camera's vertical field
	// of view, in degrees.
	SetCameraFOV(fov float64)

	// Subscribe registers f to be called with a new
	// State whenever the scene changes.
	// Calling the returned function cancels this
	// registration only; it can be called any number
	// of times.
	Subscribe(f func(State)) (unsubscribe func())
}
