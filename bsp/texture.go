// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"strings"
)

// MipTexture is a texture header from the texture lump. Textures stored in
// external WAD files have all Offsets zero and no Data.
type MipTexture struct {
	Name    string
	Width   uint32
	Height  uint32
	Offsets [MipLevels]uint32
	// Data is the lump content starting at the header, Offsets are
	// relative to it.
	Data []byte
}

// Embedded reports whether the pixels live inside the bsp.
func (t *MipTexture) Embedded() bool {
	return t.Offsets[0] != 0 && len(t.Data) > 0
}

// Transparent textures use palette index 255 as the see-through color.
func (t *MipTexture) Transparent() bool {
	return strings.HasPrefix(t.Name, "{")
}

func (t *MipTexture) Sky() bool {
	return strings.HasPrefix(strings.ToLower(t.Name), "sky")
}

// Liquid textures are prefixed with '!' (or '*' in quake maps).
func (t *MipTexture) Liquid() bool {
	return strings.HasPrefix(t.Name, "!") || strings.HasPrefix(t.Name, "*")
}
