// SPDX-License-Identifier: GPL-2.0-or-later

// Package rand is a small deterministic generator. The same seed gives
// the same sequence on every platform, so probe runs can be repeated.
package rand

import (
	"hlbsp/math/vec"
)

const (
	noise1 = 0xB5297A4D
	noise2 = 0x68E31DA4
	noise3 = 0x1B56C4E9
)

type Generator struct {
	idx  uint32
	seed uint32
}

func New(seed uint32) *Generator {
	return &Generator{seed: seed}
}

// noise hashes position p, the generator walks p upwards.
func noise(p, seed uint32) uint32 {
	m := p * noise1
	m += seed
	m ^= m >> 8
	m *= noise2
	m ^= m << 8
	m *= noise3
	m ^= m >> 8
	return m
}

func (g *Generator) Uint32() uint32 {
	g.idx++
	return noise(g.idx, g.seed)
}

func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic("rand: invalid argument to Intn")
	}
	return int(g.Uint32() % uint32(n))
}

// Float32 returns a value in [0,1).
func (g *Generator) Float32() float32 {
	return float32(g.Uint32()>>8) / (1 << 24)
}

// InBox returns a point inside the box mins, maxs.
func (g *Generator) InBox(mins, maxs vec.Vec3) vec.Vec3 {
	var p vec.Vec3
	for i := range p {
		p[i] = mins[i] + g.Float32()*(maxs[i]-mins[i])
	}
	return p
}
