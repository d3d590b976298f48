// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package wsi provides window system integration (WSI)
// for renderers.
// Windows are terminal-backed: a window covers the whole
// terminal and every character cell holds two vertically
// stacked pixels. Because a process need not have a
// terminal, WSI is conditionally supported.
package wsi

import (
	"errors"
	"image"
)

// Window is the interface that defines a drawable window.
// The purpose of a window is to provide a surface onto
// which a renderer can present its images.
type Window interface {
	// Map makes the window visible.
	Map() error

	// Unmap hides the window.
	Unmap() error

	// Resize resizes the window.
	Resize(width, height int) error

	// SetTitle sets the window's title.
	SetTitle(title string) error

	// Present displays img, which should be
	// Width by Height pixels.
	Present(img image.Image) error

	// Close closes the window.
	Close()

	// Width returns the window's width in pixels.
	Width() int

	// Height returns the window's height in pixels.
	Height() int

	// Title returns the window's title.
	Title() string
}

var (
	errTooManyWindows = errors.New("wsi: too many windows")
	errClosed         = errors.New("wsi: window is closed")
)

// NewWindow creates a new window that covers the
// process' terminal.
func NewWindow(title string) (Window, error) {
	if windowCount >= MaxWindows {
		return nil, errTooManyWindows
	}
	win, err := newWindow(title)
	if err != nil {
		return nil, err
	}
	addWindow(win)
	return win, nil
}

var newWindow func(string) (Window, error)

// The maximum number of windows that can exist at any
// given time.
const MaxWindows = 16

// Windows returns all created windows.
// The returned value becomes out of date after calls to
// NewWindow and Window.Close.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

// addWindow inserts win into createdWindows and
// increments windowCount.
func addWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == nil {
			createdWindows[i] = win
			windowCount++
			return
		}
	}
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	windowCount    int
	createdWindows [MaxWindows]Window
)

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowClose is called when a window is closed
	// by the window system (e.g., the terminal went
	// away).
	WindowClose(win Window)

	// WindowResize is called when a window is resized.
	WindowResize(win Window, newWidth, newHeight int)
}

// SetWindowHandler sets the global WindowHandler.
// Passing nil stops the delivery of window events.
func SetWindowHandler(wh WindowHandler) {
	windowHandler = wh
}

var windowHandler WindowHandler

// KeyboardHandler is the interface that defines the methods
// for handling keyboard events.
type KeyboardHandler interface {
	// KeyboardKey is called when a key is pressed.
	// Terminals do not report key releases.
	KeyboardKey(key Key, modMask Modifier)
}

// SetKeyboardHandler sets the global KeyboardHandler.
// Passing nil stops the delivery of keyboard events.
func SetKeyboardHandler(kh KeyboardHandler) {
	keyboardHandler = kh
}

var keyboardHandler KeyboardHandler

// Dispatch dispatches queued events.
// Handlers are called on the calling goroutine.
func Dispatch() {
	for _, win := range createdWindows {
		if d, ok := win.(interface{ dispatch() }); ok {
			d.dispatch()
		}
	}
}

// Platform identifies an underlying platform used to
// implement wsi.
type Platform int

// Platforms.
const (
	// None means that wsi is not available.
	// In this case, calls to NewWindow will
	// always fail.
	None Platform = iota
	Terminal
)

// PlatformInUse identifies the underlying platform which
// wsi is using.
func PlatformInUse() Platform {
	return platform
}

var platform Platform
