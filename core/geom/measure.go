// core/geom/measure.go
package geom

import "math"

const radToDeg = 180 / math.Pi

// Length returns the distance between two atom positions.
func Length(a, b Vec3) Value {
	return Some(a.Dist(b))
}

// Angle returns the bond angle at vertex b, in degrees within [0, 180].
// Near-zero arms make the angle undefined.
func Angle(a, b, c Vec3) Value {
	u := a.Sub(b)
	w := c.Sub(b)
	nu := u.Norm()
	nw := w.Norm()
	if nu < Eps || nw < Eps {
		return Missing
	}
	cos := u.Dot(w) / (nu * nw)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return Some(math.Acos(cos) * radToDeg)
}

// Dihedral returns the torsion angle over four sequential atoms, in degrees
// within (-180, 180]. Collinear triples (degenerate plane normals) make the
// torsion undefined.
func Dihedral(a, b, c, d Vec3) Value {
	b1 := b.Sub(a)
	b2 := c.Sub(b)
	b3 := d.Sub(c)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	nb2 := b2.Norm()
	if n1.Norm() < Eps || n2.Norm() < Eps || nb2 < Eps {
		return Missing
	}

	m1 := n1.Cross(b2.Scale(1 / nb2))
	x := n1.Dot(n2)
	y := m1.Dot(n2)
	deg := math.Atan2(y, x) * radToDeg
	if deg <= -180 {
		deg += 360
	}
	return Some(deg)
}
