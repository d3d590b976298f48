// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package host drives an interactive scene in a
// wsi.Window.
package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/engine"
	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/wsi"
)

// ErrMounted is returned by Host.Mount when the Host
// is already mounted.
var ErrMounted = errors.New("host: already mounted")

var errNotMounted = errors.New("host: not mounted")

// Config is used to configure a Host.
type Config struct {
	// Title of the window.
	Title string

	// Number of frames per second that Run
	// attempts to render. Values above 1000
	// are treated as 1000.
	//
	// Default is 30.
	FrameRate int

	// Configuration of the engine.Adapter.
	Engine engine.Config

	// Angular velocity of the default object, in
	// radians per second around each axis.
	//
	// Default is zero (no animation).
	Spin greenspace.Vector3D

	// Angle by which an arrow key orbits the camera,
	// in radians.
	//
	// Default is π/24.
	OrbitStep float64

	// Amount by which the +/- keys change the field
	// of view, in degrees.
	//
	// Default is 5.
	FOVStep float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:     "greenspace",
		FrameRate: 30,
		Engine:    engine.DefaultConfig(),
		OrbitStep: math.Pi / 24,
		FOVStep:   5,
	}
}

// fill replaces the unset fields of c with defaults.
func (c *Config) fill() {
	dfl := DefaultConfig()
	if c.FrameRate <= 0 {
		c.FrameRate = dfl.FrameRate
	}
	c.FrameRate = min(c.FrameRate, maxFrameRate)
	if c.OrbitStep <= 0 {
		c.OrbitStep = dfl.OrbitStep
	}
	if c.FOVStep <= 0 {
		c.FOVStep = dfl.FOVStep
	}
}

const maxFrameRate = 1000

// Field of view limits of the +/- keys.
const (
	minFOV = 10
	maxFOV = 150
)

// Host renders the scene of an engine.Adapter into a
// wsi.Window.
// A Host is either mounted or unmounted. While mounted,
// it owns an Adapter, the window and an onscreen
// renderer for it, and it is the wsi handler of window
// and keyboard events.
// Host is not safe for concurrent use; the goroutine
// that calls Run must be the one that calls Mount and
// Unmount.
type Host struct {
	cfg Config

	adapter *engine.Adapter
	win     wsi.Window
	rend    *engine.Onscreen
	unsub   func()
	prev    greenspace.State
	home    greenspace.CameraSettings
	origin  string
	rot     greenspace.Vector3D
	quit    bool
	rand    *rand.Rand
}

// New creates an unmounted Host.
// If config is nil, DefaultConfig is used.
func New(config *Config) *Host {
	var cfg Config
	if config == nil {
		cfg = DefaultConfig()
	} else {
		cfg = *config
		cfg.fill()
	}
	return &Host{
		cfg:  cfg,
		rand: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
}

// Mounted reports whether h is mounted.
func (h *Host) Mounted() bool { return h.adapter != nil }

// Mount mounts h in win.
// It creates the Adapter and renderer, lights the
// scene, adds an object at the origin and starts
// handling window events.
func (h *Host) Mount(win wsi.Window) error {
	if h.Mounted() {
		return ErrMounted
	}
	if win == nil {
		return errors.New("host: nil wsi.Window in call to Mount")
	}
	rend, err := engine.NewOnscreen(win)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if err := h.show(win); err != nil {
		return errors.Join(fmt.Errorf("host: %w", err), rend.Close())
	}
	a := engine.NewAdapter(&h.cfg.Engine)
	a.View(func(_ *engine.Graph, c *engine.Camera) {
		c.SetAspect(float64(win.Width()) / float64(win.Height()))
	})
	h.adapter, h.win, h.rend = a, win, rend
	h.prev = a.State()
	h.unsub = a.Subscribe(h.observe)
	h.origin = populate(a)
	h.home = a.State().Camera
	h.rot = greenspace.Vector3D{}
	h.quit = false
	wsi.SetWindowHandler(h)
	wsi.SetKeyboardHandler(h)
	greenspace.Logger().Info("mounted", "width", win.Width(), "height", win.Height())
	return nil
}

// show titles and maps win.
func (h *Host) show(win wsi.Window) error {
	if h.cfg.Title != "" {
		if err := win.SetTitle(h.cfg.Title); err != nil {
			return err
		}
	}
	return win.Map()
}

// populate lights the scene of a and adds an object
// at the origin. It returns the ID of the object.
func populate(a *engine.Adapter) string {
	amb := (&engine.AmbientLight{Intensity: 0.5, R: 1, G: 1, B: 1}).Light()
	dir := (&engine.DistantLight{
		Direction: linear.V3{-5, -5, -5},
		Intensity: 1,
		R:         1,
		G:         1,
		B:         1,
	}).Light()
	a.View(func(g *engine.Graph, _ *engine.Camera) {
		g.AddLight(&amb)
		g.AddLight(&dir)
	})
	o := a.AddObject(greenspace.Transform{Scale: greenspace.Vector3D{X: 1, Y: 1, Z: 1}})
	return o.ID
}

// observe logs the objects added and removed between
// consecutive states.
func (h *Host) observe(st greenspace.State) {
	for _, e := range greenspace.Diff(&h.prev, &st) {
		switch e := e.(type) {
		case greenspace.ObjectAdded:
			greenspace.Logger().Debug("object added", "id", e.Object.ID, "position", e.Object.Position)
		case greenspace.ObjectRemoved:
			greenspace.Logger().Debug("object removed", "id", e.ID)
		}
	}
	h.prev = st
}

// Unmount releases everything that Mount acquired,
// including the window.
// It does nothing if h is not mounted. Failures are
// logged, and do not prevent the rest of the teardown.
func (h *Host) Unmount() {
	if !h.Mounted() {
		return
	}
	wsi.SetWindowHandler(nil)
	wsi.SetKeyboardHandler(nil)
	h.unsub()
	err := errors.Join(h.rend.Close(), h.win.Unmap())
	h.win.Close()
	h.adapter.Close()
	*h = Host{cfg: h.cfg, rand: h.rand}
	if err != nil {
		greenspace.Logger().Warn("teardown failed", "err", err)
	}
	greenspace.Logger().Info("unmounted")
}

// Service returns the scene of h, or nil if h is not
// mounted.
func (h *Host) Service() greenspace.Service {
	if !h.Mounted() {
		return nil
	}
	return h.adapter
}

// Adapter returns the Adapter of h, or nil if h is not
// mounted.
func (h *Host) Adapter() *engine.Adapter { return h.adapter }

// Run renders frames at the configured rate until ctx
// is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	if !h.Mounted() {
		return errNotMounted
	}
	tick := time.NewTicker(time.Second / time.Duration(h.cfg.FrameRate))
	defer tick.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tick.C:
			if err := h.Frame(now.Sub(last)); err != nil {
				return err
			}
			last = now
			if h.quit {
				return nil
			}
		}
	}
}

// Frame dispatches window events, advances the
// animation by dt and renders the scene.
// It does not render once the user has quit.
func (h *Host) Frame(dt time.Duration) error {
	if !h.Mounted() {
		return errNotMounted
	}
	wsi.Dispatch()
	if h.quit {
		return nil
	}
	if s := h.cfg.Spin; s != (greenspace.Vector3D{}) {
		sec := dt.Seconds()
		h.rot.X = math.Mod(h.rot.X+s.X*sec, 2*math.Pi)
		h.rot.Y = math.Mod(h.rot.Y+s.Y*sec, 2*math.Pi)
		h.rot.Z = math.Mod(h.rot.Z+s.Z*sec, 2*math.Pi)
		h.adapter.UpdateObjectRotation(h.origin, h.rot)
	}
	var err error
	h.adapter.View(func(g *engine.Graph, c *engine.Camera) {
		err = h.rend.Render(g, c)
	})
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	return nil
}

// Quit makes Run return after the current frame.
func (h *Host) Quit() { h.quit = true }

// Resize updates the camera aspect and the renderer
// size to match a window of the given dimensions.
func (h *Host) Resize(width, height int) error {
	if !h.Mounted() {
		return errNotMounted
	}
	if err := h.rend.Resize(width, height); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	h.adapter.View(func(_ *engine.Graph, c *engine.Camera) {
		c.SetAspect(float64(width) / float64(height))
	})
	greenspace.Logger().Debug("resized", "width", width, "height", height)
	return nil
}

// WindowClose implements wsi.WindowHandler.
func (h *Host) WindowClose(win wsi.Window) {
	if win == h.win {
		greenspace.Logger().Info("window closed")
		h.quit = true
	}
}

// WindowResize implements wsi.WindowHandler.
func (h *Host) WindowResize(win wsi.Window, width, height int) {
	if win != h.win {
		return
	}
	if err := h.Resize(width, height); err != nil {
		greenspace.Logger().Warn("resize failed", "err", err)
	}
}
