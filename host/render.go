// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package host

import (
	"errors"
	"fmt"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/engine"
)

// RenderPNG renders a single frame of the scene that
// Mount would create and writes it to a PNG file.
// If config is nil, DefaultConfig is used.
func RenderPNG(config *Config, width, height int, path string) (err error) {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
		cfg.fill()
	}
	rend, err := engine.NewOffscreen(width, height)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	defer func() { err = errors.Join(err, rend.Close()) }()

	a := engine.NewAdapter(&cfg.Engine)
	defer a.Close()
	populate(a)
	a.View(func(g *engine.Graph, c *engine.Camera) {
		c.SetAspect(float64(width) / float64(height))
		err = rend.Render(g, c)
	})
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if err = rend.SavePNG(path); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	greenspace.Logger().Info("frame saved", "path", path, "width", width, "height", height)
	return nil
}
