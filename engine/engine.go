// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements a scene graph, and its software
// rendering, behind the greenspace.Service interface.
package engine

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/gviegas/greenspace/linear"
)

const (
	dflFOV  = 75
	dflNear = 0.1
	dflFar  = 1000
)

// Config is used to configure an Adapter.
type Config struct {
	// Vertical field of view of the camera, in degrees.
	//
	// Default is 75.
	FOV float64

	// Near and far clipping planes of the camera.
	//
	// Default is 0.1 and 1000.
	Near, Far float64

	// Initial position of the camera.
	// The camera initially looks at the origin, so
	// the origin itself is replaced by the default.
	//
	// Default is (0, 0, 5).
	CameraPosition linear.V3

	// Aspect ratio of the camera, width over height.
	// Renderers update it when their target is resized.
	//
	// Default is 1.
	Aspect float64

	// Color of the material of new objects.
	//
	// Default is lime (0x00ff00).
	MeshColor color.Color
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FOV:            dflFOV,
		Near:           dflNear,
		Far:            dflFar,
		CameraPosition: linear.V3{0, 0, 5},
		Aspect:         1,
		MeshColor:      colornames.Lime,
	}
}

// fill replaces the unset fields of c with defaults.
func (c *Config) fill() {
	dfl := DefaultConfig()
	if c.FOV <= 0 {
		c.FOV = dfl.FOV
	}
	if c.Near <= 0 {
		c.Near = dfl.Near
	}
	if c.Far <= c.Near {
		c.Far = max(dfl.Far, c.Near*2)
	}
	if c.CameraPosition == (linear.V3{}) {
		c.CameraPosition = dfl.CameraPosition
	}
	if c.Aspect <= 0 {
		c.Aspect = dfl.Aspect
	}
	if c.MeshColor == nil {
		c.MeshColor = dfl.MeshColor
	}
}
