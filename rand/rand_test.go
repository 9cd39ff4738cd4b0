// SPDX-License-Identifier: GPL-2.0-or-later

package rand

import (
	"testing"

	"hlbsp/math/vec"
)

func TestSameSeed(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
	}
	if New(7).Uint32() == New(8).Uint32() {
		t.Errorf("seeds 7 and 8 start equal")
	}
}

func TestRanges(t *testing.T) {
	g := New(1)
	mins, maxs := vec.Vec3{-64, 0, 10}, vec.Vec3{64, 1, 10}
	for i := 0; i < 1000; i++ {
		if f := g.Float32(); f < 0 || f >= 1 {
			t.Fatalf("Float32() = %v", f)
		}
		if n := g.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %v", n)
		}
		if p := g.InBox(mins, maxs); !vec.InBox(p, mins, maxs) {
			t.Fatalf("InBox() = %v", p)
		}
	}
}
