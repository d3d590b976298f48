// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitm defines a bitmap type useful for slot
// management (e.g., the node slots of a scene graph).
package bitm

import (
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bitmap.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bitm is a growable bitmap with custom granularity.
// The zero value is an empty bitmap ready for use.
type Bitm[T Uint] struct {
	m   []T
	rem int
}

// nbit returns the number of bits in T.
func (*Bitm[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits in the map.
func (m *Bitm[_]) Len() int { return len(m.m) * m.nbit() }

// Rem returns the number of unset bits in the map.
func (m *Bitm[_]) Rem() int { return m.rem }

// Grow appends n Uints worth of unset bits to the map.
// It returns the value of m.Len prior to growing, which
// is the index of the first new bit.
func (m *Bitm[T]) Grow(n int) (index int) {
	index = m.Len()
	if n > 0 {
		m.m = append(m.m, make([]T, n)...)
		m.rem += n * m.nbit()
	}
	return
}

// pos returns the word and the mask of bit index.
func (m *Bitm[T]) pos(index int) (int, T) {
	n := m.nbit()
	return index / n, T(1) << (index % n)
}

// Set sets the bit at index.
func (m *Bitm[T]) Set(index int) {
	i, b := m.pos(index)
	if m.m[i]&b == 0 {
		m.m[i] |= b
		m.rem--
	}
}

// Unset unsets the bit at index.
func (m *Bitm[T]) Unset(index int) {
	i, b := m.pos(index)
	if m.m[i]&b != 0 {
		m.m[i] &^= b
		m.rem++
	}
}

// IsSet reports whether the bit at index is set.
func (m *Bitm[T]) IsSet(index int) bool {
	i, b := m.pos(index)
	return m.m[i]&b != 0
}

// Search locates the lowest unset bit.
// It fails only when m.Rem() == 0.
func (m *Bitm[T]) Search() (index int, ok bool) {
	if m.rem == 0 {
		return
	}
	for i, x := range m.m {
		if x == ^T(0) {
			continue
		}
		return i*m.nbit() + bits.TrailingZeros64(uint64(^x)), true
	}
	return
}

// Clear unsets every bit in the map.
func (m *Bitm[T]) Clear() {
	clear(m.m)
	m.rem = m.Len()
}
