// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/gdamore/tcell/v2"
)

// Key is the type of keyboard keys.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyReturn
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeySpace
	KeyEsc
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Modifier is the type of modifier flags.
type Modifier int

// Modifier flags.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// keymap maps ASCII characters to Key values.
// Shifted characters map to the unshifted key; keyFrom
// reports ModShift for them.
var keymap = [128]Key{
	'1': Key1, '2': Key2, '3': Key3, '4': Key4, '5': Key5,
	'6': Key6, '7': Key7, '8': Key8, '9': Key9, '0': Key0,
	'-': KeyMinus, '_': KeyMinus, '=': KeyEqual, '+': KeyEqual,
	'\t': KeyTab, ' ': KeySpace,
	',': KeyComma, '<': KeyComma, '.': KeyDot, '>': KeyDot,
	'/': KeySlash, '?': KeySlash,
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE,
	'f': KeyF, 'g': KeyG, 'h': KeyH, 'i': KeyI, 'j': KeyJ,
	'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN, 'o': KeyO,
	'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT,
	'u': KeyU, 'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY,
	'z': KeyZ,
}

// isShifted reports whether r is typed with shift.
func isShifted(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r == '_', r == '+', r == '<', r == '>', r == '?':
		return true
	}
	return false
}

// keyFrom returns the Key and Modifier values that
// represent a terminal key event.
func keyFrom(ev *tcell.EventKey) (Key, Modifier) {
	var mod Modifier
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if isShifted(r) {
			mod |= ModShift
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r < 0 || int(r) >= len(keymap) {
			return KeyUnknown, mod
		}
		return keymap[r], mod
	case tcell.KeyCtrlC:
		return KeyC, mod | ModCtrl
	case tcell.KeyEscape:
		return KeyEsc, mod
	case tcell.KeyEnter:
		return KeyReturn, mod
	case tcell.KeyTab:
		return KeyTab, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, mod
	case tcell.KeyInsert:
		return KeyInsert, mod
	case tcell.KeyDelete:
		return KeyDelete, mod
	case tcell.KeyHome:
		return KeyHome, mod
	case tcell.KeyEnd:
		return KeyEnd, mod
	case tcell.KeyPgUp:
		return KeyPageUp, mod
	case tcell.KeyPgDn:
		return KeyPageDown, mod
	case tcell.KeyUp:
		return KeyUp, mod
	case tcell.KeyDown:
		return KeyDown, mod
	case tcell.KeyLeft:
		return KeyLeft, mod
	case tcell.KeyRight:
		return KeyRight, mod
	}
	return KeyUnknown, mod
}
