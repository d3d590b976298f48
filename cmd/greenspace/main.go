// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Command greenspace displays an interactive 3D scene
// in the terminal.
//
// Arrow keys orbit the camera, + and - change the field
// of view, a adds a box, x removes the newest box, r
// resets the camera and q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/host"
	"github.com/gviegas/greenspace/wsi"
)

func main() {
	var (
		fps      = flag.Int("fps", 30, "frames per second")
		fov      = flag.Float64("fov", 75, "vertical field of view in degrees")
		spin     = flag.Float64("spin", 0.5, "spin of the default box in radians per second")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		logFile  = flag.String("log-file", "", "log file (interactive mode logs nothing without it)")
		output   = flag.String("out", "", "render a single frame to this PNG file and exit")
		width    = flag.Int("width", 320, "image width of -out")
		height   = flag.Int("height", 240, "image height of -out")
	)
	flag.Parse()

	if err := run(*fps, *fov, *spin, *logLevel, *logFile, *output, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fps int, fov, spin float64, logLevel, logFile, output string, width, height int) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("greenspace: invalid -log-level: %w", err)
	}
	var w io.Writer
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("greenspace: %w", err)
		}
		defer f.Close()
		w = f
	case output != "":
		// The terminal is free when rendering offscreen.
		w = os.Stderr
	}
	if w != nil {
		greenspace.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	}

	cfg := host.DefaultConfig()
	cfg.FrameRate = fps
	cfg.Engine.FOV = fov
	cfg.Spin = greenspace.Vector3D{Y: spin}

	if output != "" {
		return host.RenderPNG(&cfg, width, height, output)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win, err := wsi.NewWindow(cfg.Title)
	if err != nil {
		return fmt.Errorf("greenspace: %w", err)
	}
	h := host.New(&cfg)
	if err := h.Mount(win); err != nil {
		win.Close()
		return err
	}
	defer h.Unmount()
	return h.Run(ctx)
}
