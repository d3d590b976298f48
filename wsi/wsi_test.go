// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"image"
	"image/color"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type recorder struct {
	resizes [][2]int
	closes  int
	keys    []Key
	mods    []Modifier
}

func (r *recorder) WindowClose(Window) { r.closes++ }

func (r *recorder) WindowResize(_ Window, w, h int) {
	r.resizes = append(r.resizes, [2]int{w, h})
}

func (r *recorder) KeyboardKey(key Key, mod Modifier) {
	r.keys = append(r.keys, key)
	r.mods = append(r.mods, mod)
}

// dispatchUntil calls Dispatch until cond holds or a
// second elapses.
func dispatchUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Dispatch: timed out waiting for events")
		}
		Dispatch()
		time.Sleep(time.Millisecond)
	}
}

func TestSimWindow(t *testing.T) {
	win, _, err := NewSimWindow(40, 12, "My window")
	if err != nil {
		t.Fatalf("NewSimWindow failed: %v", err)
	}
	if n := len(Windows()); n != 1 {
		t.Fatalf("len(Windows())\nhave %d\nwant 1", n)
	}
	if w, h := win.Width(), win.Height(); w != 40 || h != 24 {
		t.Fatalf("Window.Width/Height\nhave %d, %d\nwant 40, 24", w, h)
	}
	if s := win.Title(); s != "My window" {
		t.Fatalf("Window.Title\nhave %s\nwant My window", s)
	}
	win.SetTitle("Other")
	if s := win.Title(); s != "Other" {
		t.Fatalf("Window.Title\nhave %s\nwant Other", s)
	}
	win.Close()
	win.Close()
	if n := len(Windows()); n != 0 {
		t.Fatalf("len(Windows())\nhave %d\nwant 0", n)
	}
}

func TestPresent(t *testing.T) {
	win, scr, err := NewSimWindow(4, 2, "")
	if err != nil {
		t.Fatalf("NewSimWindow failed: %v", err)
	}
	defer win.Close()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	for x := 0; x < 4; x++ {
		img.Set(x, 0, red)
		img.Set(x, 1, blue)
	}
	if err := win.Present(img); err != nil {
		t.Fatalf("Window.Present failed: %v", err)
	}
	cells, w, _ := scr.GetContents()
	c := cells[0*w+0]
	if len(c.Runes) == 0 || c.Runes[0] != upperHalf {
		t.Fatalf("cell (0, 0): rune\nhave %q\nwant %q", c.Runes, upperHalf)
	}
	fg, bg, _ := c.Style.Decompose()
	if want := tcell.NewRGBColor(255, 0, 0); fg != want {
		t.Fatalf("cell (0, 0): foreground\nhave %v\nwant %v", fg, want)
	}
	if want := tcell.NewRGBColor(0, 0, 255); bg != want {
		t.Fatalf("cell (0, 0): background\nhave %v\nwant %v", bg, want)
	}
	_, bg, _ = cells[1*w+0].Style.Decompose()
	if want := tcell.NewRGBColor(0, 0, 0); bg != want {
		t.Fatalf("cell (0, 1): background\nhave %v\nwant %v", bg, want)
	}
}

func TestEvents(t *testing.T) {
	var r recorder
	SetWindowHandler(&r)
	SetKeyboardHandler(&r)
	defer SetWindowHandler(nil)
	defer SetKeyboardHandler(nil)

	win, scr, err := NewSimWindow(20, 10, "")
	if err != nil {
		t.Fatalf("NewSimWindow failed: %v", err)
	}
	defer win.Close()

	scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	scr.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	scr.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	scr.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	dispatchUntil(t, func() bool { return len(r.keys) == 4 })
	wantKeys := []Key{KeyQ, KeyEqual, KeyLeft, KeyC}
	for i := range wantKeys {
		if r.keys[i] != wantKeys[i] {
			t.Fatalf("KeyboardKey: [%d]\nhave %d\nwant %d", i, r.keys[i], wantKeys[i])
		}
	}
	if r.mods[1]&ModShift == 0 {
		t.Fatal("KeyboardKey: '+' should report ModShift")
	}
	if r.mods[3]&ModCtrl == 0 {
		t.Fatal("KeyboardKey: Ctrl+C should report ModCtrl")
	}

	if err := win.Resize(30, 16); err != nil {
		t.Fatalf("Window.Resize failed: %v", err)
	}
	dispatchUntil(t, func() bool { return len(r.resizes) > 0 })
	if x := r.resizes[len(r.resizes)-1]; x != [2]int{30, 16} {
		t.Fatalf("WindowResize\nhave %v\nwant [30 16]", x)
	}
	if w, h := win.Width(), win.Height(); w != 30 || h != 16 {
		t.Fatalf("Window.Width/Height\nhave %d, %d\nwant 30, 16", w, h)
	}
	if err := win.Resize(0, 10); err == nil {
		t.Fatal("Window.Resize(0, 10): unexpected success")
	}
}

func TestKeyFrom(t *testing.T) {
	for _, x := range [...]struct {
		key  tcell.Key
		r    rune
		want Key
		mod  Modifier
	}{
		{tcell.KeyRune, 'a', KeyA, 0},
		{tcell.KeyRune, 'A', KeyA, ModShift},
		{tcell.KeyRune, '-', KeyMinus, 0},
		{tcell.KeyRune, '_', KeyMinus, ModShift},
		{tcell.KeyRune, 'é', KeyUnknown, 0},
		{tcell.KeyEscape, 0, KeyEsc, 0},
		{tcell.KeyEnter, 0, KeyReturn, 0},
		{tcell.KeyUp, 0, KeyUp, 0},
		{tcell.KeyF1, 0, KeyUnknown, 0},
	} {
		key, mod := keyFrom(tcell.NewEventKey(x.key, x.r, tcell.ModNone))
		if key != x.want || mod != x.mod {
			t.Fatalf("keyFrom(%v, %q)\nhave %d, %d\nwant %d, %d", x.key, x.r, key, mod, x.want, x.mod)
		}
	}
}

func TestTooManyWindows(t *testing.T) {
	var wins []Window
	defer func() {
		for _, w := range wins {
			w.Close()
		}
	}()
	for i := 0; i < MaxWindows; i++ {
		w, _, err := NewSimWindow(8, 8, "")
		if err != nil {
			t.Fatalf("NewSimWindow failed: %v", err)
		}
		wins = append(wins, w)
	}
	if _, _, err := NewSimWindow(8, 8, ""); err != errTooManyWindows {
		t.Fatalf("NewSimWindow: err\nhave %v\nwant %v", err, errTooManyWindows)
	}
}

func TestClosedWindow(t *testing.T) {
	win, _, err := NewSimWindow(4, 2, "")
	if err != nil {
		t.Fatalf("NewSimWindow failed: %v", err)
	}
	n := len(Windows())
	win.Close()
	win.Close()
	if have := len(Windows()); have != n-1 {
		t.Fatalf("len(Windows())\nhave %d\nwant %d", have, n-1)
	}
	if err := win.Present(image.NewRGBA(image.Rect(0, 0, 4, 4))); err != errClosed {
		t.Fatalf("Window.Present: err\nhave %v\nwant %v", err, errClosed)
	}
	if err := win.Map(); err != errClosed {
		t.Fatalf("Window.Map: err\nhave %v\nwant %v", err, errClosed)
	}
	if err := win.Unmap(); err != nil {
		t.Fatalf("Window.Unmap: err\nhave %v\nwant nil", err)
	}
}

func TestPlatformFromTerm(t *testing.T) {
	want := None
	if term := os.Getenv("TERM"); term != "" && term != "dumb" {
		want = Terminal
	}
	if have := PlatformInUse(); have != want {
		t.Fatalf("PlatformInUse (TERM=%q)\nhave %d\nwant %d", os.Getenv("TERM"), have, want)
	}
	if want == None {
		if _, err := NewWindow(""); err != errMissing {
			t.Fatalf("NewWindow: err\nhave %v\nwant %v", err, errMissing)
		}
	}
}
