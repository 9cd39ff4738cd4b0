// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

// Size is the size of a palette on disk: 256 rgb triplets.
const Size = 256 * 3

// Transparent is the palette index drawn see-through in '{' textures.
const Transparent = 255

var ErrSize = errors.New("palette has wrong size")

type Palette [256]color.RGBA

// FromRGB builds a palette from 256 packed rgb triplets.
func FromRGB(b []byte) (*Palette, error) {
	if len(b) < Size {
		return nil, errors.Wrapf(ErrSize, "%d bytes", len(b))
	}
	var p Palette
	bi := 0
	for i := range p {
		p[i] = color.RGBA{R: b[bi], G: b[bi+1], B: b[bi+2], A: 255}
		bi += 3
	}
	return &p, nil
}

// Load reads a palette.lmp style file.
func Load(r io.Reader) (*Palette, error) {
	b := make([]byte, Size)
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrSize, "short palette")
		}
		return nil, errors.Wrap(err, "palette")
	}
	return FromRGB(b)
}

// Image converts w*h palette indices to rgba. With transparent set index
// 255 gets alpha 0 and the color of its opaque neighbours.
func (p *Palette) Image(w, h int, indices []byte, transparent bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range indices[:w*h] {
		col := p[c]
		if transparent && c == Transparent {
			col = color.RGBA{}
		}
		img.Pix[i*4] = col.R
		img.Pix[i*4+1] = col.G
		img.Pix[i*4+2] = col.B
		img.Pix[i*4+3] = col.A
	}
	if transparent {
		AlphaEdgeFix(w, h, img.Pix)
	}
	return img
}

// Grey is used when no palette is available.
func Grey() *Palette {
	var p Palette
	for i := range p {
		p[i] = color.RGBA{R: uint8(i), G: uint8(i), B: uint8(i), A: 255}
	}
	return &p
}
