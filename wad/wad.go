// SPDX-License-Identifier: GPL-2.0-or-later

// Package wad reads texture archives. WAD2 is used by Quake, WAD3 by
// Half-Life whose textures carry their own palette.
package wad

import (
	"image"
	"strings"

	"github.com/pkg/errors"

	"hlbsp/binfile"
	"hlbsp/palette"
)

var (
	ErrBadMagic   = errors.New("wad file doesn't have WAD2 or WAD3 id")
	ErrNotFound   = errors.New("lump not found")
	ErrCompressed = errors.New("compressed lumps are not supported")
	ErrBadTexture = errors.New("bad mip texture")
)

const (
	typPalette = 0x40
	typMipTex3 = 0x43 // half-life
	typMipTex  = 0x44

	entrySize  = 32
	nameLength = 16
	mipHeader  = 40
	// limits the allocation for broken headers
	maxTextureSize = 4096
)

type lump struct {
	Offset      int32
	DiskSize    int32
	Size        int32
	Typ         byte
	Compression byte
	Name        string
}

// Wad is a parsed archive. It keeps the file content.
type Wad struct {
	Name    string
	Version int
	// Palette is used for WAD2 textures, which have none of their own.
	Palette *palette.Palette
	data    []byte
	lumps   []lump
	byName  map[string]int
}

// Parse reads the header and directory of a WAD2 or WAD3 file.
func Parse(name string, data []byte) (*Wad, error) {
	r := binfile.New(data)
	s := binfile.NewSticky(r)
	var magic [4]byte
	for i := range magic {
		magic[i] = s.Uint8()
	}
	count := s.Uint32()
	dirOffset := s.Uint32()
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "wad %s: header", name)
	}
	w := &Wad{Name: name, data: data, byName: make(map[string]int)}
	switch magic {
	case [4]byte{'W', 'A', 'D', '2'}:
		w.Version = 2
	case [4]byte{'W', 'A', 'D', '3'}:
		w.Version = 3
	default:
		return nil, errors.Wrapf(ErrBadMagic, "wad %s: %q", name, magic[:])
	}
	if uint64(dirOffset)+uint64(count)*entrySize > uint64(len(data)) {
		return nil, errors.Wrapf(binfile.ErrTruncated, "wad %s: %d entries at %d", name, count, dirOffset)
	}
	r.Seek(int(dirOffset))
	w.lumps = make([]lump, count)
	for i := range w.lumps {
		l := &w.lumps[i]
		l.Offset = s.Int32()
		l.DiskSize = s.Int32()
		l.Size = s.Int32()
		l.Typ = s.Uint8()
		l.Compression = s.Uint8()
		s.Int16() // padding
		l.Name = strings.ToLower(s.String(nameLength))
		if _, ok := w.byName[l.Name]; !ok {
			w.byName[l.Name] = i
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "wad %s: directory", name)
	}
	if i, ok := w.byName["palette"]; ok && w.lumps[i].Typ == typPalette {
		b, err := w.Lump("palette")
		if err != nil {
			return nil, err
		}
		if w.Palette, err = palette.FromRGB(b); err != nil {
			return nil, errors.Wrapf(err, "wad %s", name)
		}
	}
	return w, nil
}

// Names lists the textures of the archive in directory order.
func (w *Wad) Names() []string {
	var n []string
	for _, l := range w.lumps {
		if l.Typ == typMipTex || l.Typ == typMipTex3 {
			n = append(n, l.Name)
		}
	}
	return n
}

// Has reports whether a lump of that name exists. Names are case
// insensitive.
func (w *Wad) Has(name string) bool {
	_, ok := w.byName[strings.ToLower(name)]
	return ok
}

// Lump returns the raw content of the named lump.
func (w *Wad) Lump(name string) ([]byte, error) {
	i, ok := w.byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "wad %s: %s", w.Name, name)
	}
	l := w.lumps[i]
	if l.Compression != 0 {
		return nil, errors.Wrapf(ErrCompressed, "wad %s: %s", w.Name, name)
	}
	if l.Offset < 0 || l.DiskSize < 0 || int(l.Offset)+int(l.DiskSize) > len(w.data) {
		return nil, errors.Wrapf(binfile.ErrTruncated, "wad %s: %s", w.Name, name)
	}
	return w.data[l.Offset : l.Offset+l.DiskSize], nil
}

// Texture decodes the first mip level of the named texture.
func (w *Wad) Texture(name string) (*Texture, error) {
	b, err := w.Lump(name)
	if err != nil {
		return nil, err
	}
	i := w.byName[strings.ToLower(name)]
	switch w.lumps[i].Typ {
	case typMipTex3:
		return DecodeMipTexture(b, nil)
	case typMipTex:
		pal := w.Palette
		if pal == nil {
			pal = palette.Grey()
		}
		return DecodeMipTexture(b, pal)
	}
	return nil, errors.Wrapf(ErrBadTexture, "wad %s: %s has type %#x", w.Name, name, w.lumps[i].Typ)
}

// Texture is a decoded mip texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	Image  *image.RGBA
}

// DecodeMipTexture decodes a mip texture starting at its header, as stored
// in WAD files and the bsp texture lump. With a nil palette the palette
// stored after the last mip level is used.
func DecodeMipTexture(data []byte, pal *palette.Palette) (*Texture, error) {
	s := binfile.NewSticky(binfile.New(data))
	name := s.String(nameLength)
	w := s.Uint32()
	h := s.Uint32()
	var offsets [4]uint32
	for i := range offsets {
		offsets[i] = s.Uint32()
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "mip texture header")
	}
	if w == 0 || h == 0 || w > maxTextureSize || h > maxTextureSize {
		return nil, errors.Wrapf(ErrBadTexture, "%s: size %dx%d", name, w, h)
	}
	size := int(w) * int(h)
	if offsets[0] < mipHeader || int(offsets[0])+size > len(data) {
		return nil, errors.Wrapf(ErrBadTexture, "%s: pixels at %d", name, offsets[0])
	}
	if pal == nil {
		// mip 3, a short color count, then the palette
		po := int(offsets[3]) + int(w/8)*int(h/8) + 2
		if po+palette.Size > len(data) {
			return nil, errors.Wrapf(ErrBadTexture, "%s: palette at %d", name, po)
		}
		var err error
		if pal, err = palette.FromRGB(data[po : po+palette.Size]); err != nil {
			return nil, err
		}
	}
	transparent := strings.HasPrefix(name, "{")
	return &Texture{
		Name:   name,
		Width:  int(w),
		Height: int(h),
		Image:  pal.Image(int(w), int(h), data[offsets[0]:], transparent),
	}, nil
}
