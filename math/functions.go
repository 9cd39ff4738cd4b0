// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

// Lerp returns a + (b-a)*frac.
func Lerp(a, b, frac float32) float32 {
	return a + (b-a)*frac
}

// FloorDiv returns floor(v/d) as int.
func FloorDiv(v, d float32) int {
	return int(math32.Floor(v / d))
}

// CeilDiv returns ceil(v/d) as int.
func CeilDiv(v, d float32) int {
	return int(math32.Ceil(v / d))
}
