// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"hlbsp/math/vec"
)

// Distance returns the signed distance of p to the plane. Axial planes use
// the coordinate directly.
func (p *Plane) Distance(v vec.Vec3) float32 {
	if p.Type < 3 {
		return v[p.Type] - p.Dist
	}
	return float32(vec.DoublePrecDot(p.Normal, v)) - p.Dist
}

// Flip returns the plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{
		Normal: p.Normal.Neg(),
		Dist:   -p.Dist,
		Type:   p.Type,
	}
}
