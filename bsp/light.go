// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"hlbsp/math/vec"
)

type color struct {
	R, G, B int
}

func (m *Map) recursiveLight(r NodeRef, start, end vec.Vec3, c *vec.Vec3) bool {
	nextChild := func(f float32) int {
		if f < 0 {
			return 1
		}
		return 0
	}
	var n *Node
	var front, back float32
	for {
		if r.Kind != RefNode {
			return false
		}
		n = m.node(r.Index)
		plane := m.plane(n.Plane)
		front = plane.Distance(start)
		back = plane.Distance(end)
		if (back < 0) != (front < 0) {
			break
		}
		// both on one side
		r = n.Children[nextChild(front)]
	}
	frac := front / (front - back)
	mid := vec.Lerp(start, end, frac)

	// front side
	if m.recursiveLight(n.Children[nextChild(front)], start, mid, c) {
		return true
	}

	for fi := int(n.FirstFace); fi < int(n.FirstFace)+int(n.FaceCount); fi++ {
		f := m.face(fi)
		ti := m.texInfo(f)
		if ti.Flags&TexSpecial != 0 || f.Skip() {
			continue
		}
		lm := m.LightmapCoords(fi)
		u, v := project(ti, mid)
		ds, dt := int(u), int(v)
		if ds < lm.Mins[0] || dt < lm.Mins[1] {
			continue
		}
		ds -= lm.Mins[0]
		dt -= lm.Mins[1]
		if ds > lm.Extents[0] || dt > lm.Extents[1] {
			continue
		}
		if samples := m.samples(&lm); len(samples) > 0 {
			at := func(x, y int) color {
				x = min(x, lm.Width-1)
				y = min(y, lm.Height-1)
				i := (y*lm.Width + x) * 3
				return color{int(samples[i]), int(samples[i+1]), int(samples[i+2])}
			}
			dsfrac := ds & 15
			dtfrac := dt & 15
			x, y := ds>>4, dt>>4
			c00, c01 := at(x, y), at(x+1, y)
			c10, c11 := at(x, y+1), at(x+1, y+1)
			blend := func(a00, a01, a10, a11 int) float32 {
				top := (((a01 - a00) * dsfrac) >> 4) + a00
				bottom := (((a11 - a10) * dsfrac) >> 4) + a10
				return float32((((bottom - top) * dtfrac) >> 4) + top)
			}
			(*c)[0] += blend(c00.R, c01.R, c10.R, c11.R)
			(*c)[1] += blend(c00.G, c01.G, c10.G, c11.G)
			(*c)[2] += blend(c00.B, c01.B, c10.B, c11.B)
		}
		return true
	}
	// back side
	return m.recursiveLight(n.Children[nextChild(-front)], mid, end, c)
}

// LightAt returns the light color below p, sampled from the first lit
// surface within 8192 units straight down.
func (m *Map) LightAt(p vec.Vec3) vec.Vec3 {
	if len(m.Lighting) == 0 || len(m.Models) == 0 {
		return vec.Vec3{255, 255, 255}
	}

	end := p
	end[2] -= 8192

	color := vec.Vec3{0, 0, 0}
	m.recursiveLight(headRef(m.Models[0].HeadNodes[0]), p, end, &color)
	return color
}
