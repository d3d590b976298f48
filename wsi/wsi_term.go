// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// upperHalf is drawn in every cell: the foreground color
// paints the upper pixel and the background color paints
// the lower one.
const upperHalf = '▀'

// Size of the event queue of a terminal window.
const eventQueueLen = 64

func initTerminal() {
	newWindow = newTermWindow
	platform = Terminal
}

// termWindow implements Window on a tcell.Screen.
type termWindow struct {
	screen tcell.Screen
	title  string
	width  int
	height int
	mapped bool

	events chan tcell.Event
	done   chan struct{}
	gone   chan struct{}
	once   sync.Once
}

func newTermWindow(title string) (Window, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreenWindow(screen, title)
}

// NewSimWindow creates a window backed by a simulated
// terminal of cols by rows cells. It is available
// regardless of the platform in use.
// The returned screen can be used to inject events and
// to inspect the presented contents.
func NewSimWindow(cols, rows int, title string) (Window, tcell.SimulationScreen, error) {
	if windowCount >= MaxWindows {
		return nil, nil, errTooManyWindows
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	win, err := newScreenWindow(screen, title)
	if err != nil {
		return nil, nil, err
	}
	screen.SetSize(cols, rows)
	w := win.(*termWindow)
	w.width, w.height = cols, rows*2
	addWindow(win)
	return win, screen, nil
}

func newScreenWindow(screen tcell.Screen, title string) (Window, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	cols, rows := screen.Size()
	w := &termWindow{
		screen: screen,
		title:  title,
		width:  cols,
		height: rows * 2,
		mapped: true,
		events: make(chan tcell.Event, eventQueueLen),
		done:   make(chan struct{}),
		gone:   make(chan struct{}),
	}
	go w.poll()
	return w, nil
}

// poll forwards screen events to w.events until the
// screen is finalized.
func (w *termWindow) poll() {
	defer close(w.gone)
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case w.events <- ev:
		case <-w.done:
			return
		}
	}
}

// dispatch drains w.events, calling the global handlers.
func (w *termWindow) dispatch() {
	for {
		select {
		case ev := <-w.events:
			w.handle(ev)
		case <-w.gone:
			// The screen went away without a call
			// to Close.
			w.drain()
			if windowHandler != nil {
				windowHandler.WindowClose(w)
			}
			w.Close()
			return
		default:
			return
		}
	}
}

// drain handles the events left in w.events.
func (w *termWindow) drain() {
	for {
		select {
		case ev := <-w.events:
			w.handle(ev)
		default:
			return
		}
	}
}

func (w *termWindow) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		// Resize events may be stale; the screen
		// knows the current size.
		cols, rows := w.screen.Size()
		if cols == w.width && rows*2 == w.height {
			return
		}
		w.width, w.height = cols, rows*2
		w.screen.Sync()
		if windowHandler != nil {
			windowHandler.WindowResize(w, w.width, w.height)
		}
	case *tcell.EventKey:
		if keyboardHandler != nil {
			key, mod := keyFrom(ev)
			keyboardHandler.KeyboardKey(key, mod)
		}
	}
}

// closed reports whether Close was called.
func (w *termWindow) closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

func (w *termWindow) Map() error {
	if w.closed() {
		return errClosed
	}
	w.mapped = true
	w.screen.Show()
	return nil
}

func (w *termWindow) Unmap() error {
	if w.closed() {
		return nil
	}
	w.mapped = false
	w.screen.Clear()
	w.screen.Show()
	return nil
}

// Resize requests a new terminal size.
// height is rounded up to an even number of pixels.
func (w *termWindow) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("wsi: invalid window size")
	}
	if w.closed() {
		return errClosed
	}
	rows := (height + 1) / 2
	w.screen.SetSize(width, rows)
	return w.screen.PostEvent(tcell.NewEventResize(width, rows))
}

func (w *termWindow) SetTitle(title string) error {
	w.title = title
	return nil
}

func (w *termWindow) Present(img image.Image) error {
	if w.closed() {
		return errClosed
	}
	if !w.mapped {
		return nil
	}
	b := img.Bounds()
	for y := 0; y < w.height/2; y++ {
		for x := 0; x < w.width; x++ {
			px, py := b.Min.X+x, b.Min.Y+y*2
			st := tcell.StyleDefault.
				Foreground(cellColor(img, px, py, b)).
				Background(cellColor(img, px, py+1, b))
			w.screen.SetContent(x, y, upperHalf, nil, st)
		}
	}
	w.screen.Show()
	return nil
}

// cellColor converts the color of img at (x, y).
// Points outside b are black.
func cellColor(img image.Image, x, y int, b image.Rectangle) tcell.Color {
	if !(image.Point{x, y}).In(b) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close finalizes the screen and restores the terminal.
// It is safe to call Close more than once.
func (w *termWindow) Close() {
	w.once.Do(func() {
		close(w.done)
		w.screen.Fini()
		closeWindow(w)
	})
}

func (w *termWindow) Width() int    { return w.width }
func (w *termWindow) Height() int   { return w.height }
func (w *termWindow) Title() string { return w.title }
