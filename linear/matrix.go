// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// M3 is a column-major 3x3 matrix of float64.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	t := *n
	for i := range m {
		for j := range m {
			m[i][j] = t[j][i]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	*m = M3{
		{
			s0 * idet,
			-(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet,
			(n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet,
		},
		{
			-s1 * idet,
			(n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet,
			-(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet,
		},
		{
			s2 * idet,
			-(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet,
			(n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet,
		},
	}
}

// FromM4 sets m to contain the upper-left 3x3 of n.
func (m *M3) FromM4(n *M4) {
	for i := range m {
		m[i] = V3{n[i][0], n[i][1], n[i][2]}
	}
}

// Normal sets m to contain the normal matrix of n
// (i.e., the inverse transpose of its upper-left 3x3).
func (m *M3) Normal(n *M4) {
	var u M3
	u.FromM4(n)
	u.Invert(&u)
	m.Transpose(&u)
}

// M4 is a column-major 4x4 matrix of float64.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	t := *n
	for i := range m {
		for j := range m {
			m[i][j] = t[j][i]
		}
	}
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float64) {
	*m = M4{{1}, {0, 1}, {0, 0, 1}, {x, y, z, 1}}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float64) {
	*m = M4{{x}, {0, y}, {0, 0, z}, {0, 0, 0, 1}}
}

// RotateQ sets m to contain the rotation described by
// the unit quaternion q.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// Euler sets m to contain the rotation described by
// the Euler angles e (in radians), applied in XYZ order
// (i.e., m = Rx ⋅ Ry ⋅ Rz).
func (m *M4) Euler(e *V3) {
	a, b := math.Cos(e[0]), math.Sin(e[0])
	c, d := math.Cos(e[1]), math.Sin(e[1])
	f, g := math.Cos(e[2]), math.Sin(e[2])
	af, ag, bf, bg := a*f, a*g, b*f, b*g
	*m = M4{
		{c * f, ag + bf*d, bg - af*d, 0},
		{-c * g, af - bg*d, bf + ag*d, 0},
		{d, -b * c, a * c, 0},
		{0, 0, 0, 1},
	}
}

// Compose sets m to contain T ⋅ R ⋅ S, where T is the
// translation t, R is the XYZ Euler rotation r and S is
// the scale s.
func (m *M4) Compose(t, r, s *V3) {
	var n M4
	n.Euler(r)
	for i := range s {
		n[i].Scale(s[i], &n[i])
	}
	n[3] = V4{t[0], t[1], t[2], 1}
	*m = n
}

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M4) Invert(n *M4) {
	s0 := n[0][0]*n[1][1] - n[0][1]*n[1][0]
	s1 := n[0][0]*n[1][2] - n[0][2]*n[1][0]
	s2 := n[0][0]*n[1][3] - n[0][3]*n[1][0]
	s3 := n[0][1]*n[1][2] - n[0][2]*n[1][1]
	s4 := n[0][1]*n[1][3] - n[0][3]*n[1][1]
	s5 := n[0][2]*n[1][3] - n[0][3]*n[1][2]
	c0 := n[2][0]*n[3][1] - n[2][1]*n[3][0]
	c1 := n[2][0]*n[3][2] - n[2][2]*n[3][0]
	c2 := n[2][0]*n[3][3] - n[2][3]*n[3][0]
	c3 := n[2][1]*n[3][2] - n[2][2]*n[3][1]
	c4 := n[2][1]*n[3][3] - n[2][3]*n[3][1]
	c5 := n[2][2]*n[3][3] - n[2][3]*n[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	*m = M4{
		{
			(c5*n[1][1] - c4*n[1][2] + c3*n[1][3]) * idet,
			(-c5*n[0][1] + c4*n[0][2] - c3*n[0][3]) * idet,
			(s5*n[3][1] - s4*n[3][2] + s3*n[3][3]) * idet,
			(-s5*n[2][1] + s4*n[2][2] - s3*n[2][3]) * idet,
		},
		{
			(-c5*n[1][0] + c2*n[1][2] - c1*n[1][3]) * idet,
			(c5*n[0][0] - c2*n[0][2] + c1*n[0][3]) * idet,
			(-s5*n[3][0] + s2*n[3][2] - s1*n[3][3]) * idet,
			(s5*n[2][0] - s2*n[2][2] + s1*n[2][3]) * idet,
		},
		{
			(c4*n[1][0] - c2*n[1][1] + c0*n[1][3]) * idet,
			(-c4*n[0][0] + c2*n[0][1] - c0*n[0][3]) * idet,
			(s4*n[3][0] - s2*n[3][1] + s0*n[3][3]) * idet,
			(-s4*n[2][0] + s2*n[2][1] - s0*n[2][3]) * idet,
		},
		{
			(-c3*n[1][0] + c1*n[1][1] - c0*n[1][2]) * idet,
			(c3*n[0][0] - c1*n[0][1] + c0*n[0][2]) * idet,
			(-s3*n[3][0] + s1*n[3][1] - s0*n[3][2]) * idet,
			(s3*n[2][0] - s1*n[2][1] + s0*n[2][2]) * idet,
		},
	}
}

// Array returns m as a flat column-major array.
func (m *M4) Array() (a [16]float64) {
	for i := range m {
		copy(a[i*4:], m[i][:])
	}
	return
}
