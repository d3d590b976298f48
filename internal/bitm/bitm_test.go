// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitm

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&Bitm[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&Bitm[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&Bitm[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&Bitm[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&Bitm[uint64]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("Bitm[T].nbit:\nhave %d\nwant %d", x[1], x[0])
		}
	}
}

func TestGrow(t *testing.T) {
	var m Bitm[uint32]
	if n := m.Len(); n != 0 {
		t.Fatalf("m.Len:\nhave %d\nwant 0", n)
	}
	if _, ok := m.Search(); ok {
		t.Fatal("m.Search: unexpected success on empty map")
	}
	for _, x := range [...]struct{ n, idx, len int }{
		{1, 0, 32},
		{2, 32, 96},
		{0, 96, 96},
		{-1, 96, 96},
		{3, 96, 192},
	} {
		if i := m.Grow(x.n); i != x.idx {
			t.Fatalf("m.Grow(%d):\nhave %d\nwant %d", x.n, i, x.idx)
		}
		if n := m.Len(); n != x.len {
			t.Fatalf("m.Len:\nhave %d\nwant %d", n, x.len)
		}
		if n := m.Rem(); n != x.len {
			t.Fatalf("m.Rem:\nhave %d\nwant %d", n, x.len)
		}
	}
}

func TestSetSearch(t *testing.T) {
	var m Bitm[uint8]
	m.Grow(2)
	for i := 0; i < 16; i++ {
		idx, ok := m.Search()
		if !ok || idx != i {
			t.Fatalf("m.Search:\nhave %d, %t\nwant %d, true", idx, ok, i)
		}
		m.Set(idx)
		if !m.IsSet(idx) {
			t.Fatalf("m.IsSet(%d):\nhave false\nwant true", idx)
		}
	}
	if n := m.Rem(); n != 0 {
		t.Fatalf("m.Rem:\nhave %d\nwant 0", n)
	}
	if _, ok := m.Search(); ok {
		t.Fatal("m.Search: unexpected success on full map")
	}

	m.Unset(11)
	m.Unset(11)
	if n := m.Rem(); n != 1 {
		t.Fatalf("m.Rem:\nhave %d\nwant 1", n)
	}
	if idx, ok := m.Search(); !ok || idx != 11 {
		t.Fatalf("m.Search:\nhave %d, %t\nwant 11, true", idx, ok)
	}
	m.Set(3)
	if n := m.Rem(); n != 1 {
		t.Fatalf("m.Rem: setting a set bit\nhave %d\nwant 1", n)
	}

	m.Clear()
	if n := m.Rem(); n != m.Len() {
		t.Fatalf("m.Clear: m.Rem\nhave %d\nwant %d", n, m.Len())
	}
	if m.IsSet(0) {
		t.Fatal("m.Clear: bit 0 is still set")
	}
}
