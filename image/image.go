// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"

	"hlbsp/conlog"
	"hlbsp/filesystem"
)

type Format int

const (
	TGA Format = iota
	QOI
	PNG
)

var ErrFormat = errors.New("unknown image format")

func (f Format) String() string {
	switch f {
	case TGA:
		return "tga"
	case QOI:
		return "qoi"
	case PNG:
		return "png"
	}
	return "unknown"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "tga":
		return TGA, nil
	case "qoi":
		return QOI, nil
	case "png":
		return PNG, nil
	}
	return 0, errors.Wrapf(ErrFormat, "%q", s)
}

// FromRGB wraps packed 8bit RGB triplets, as found in the lighting lump.
func FromRGB(data []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(data) < width*height*3 {
		return nil, errors.Errorf("not enough data for a %dx%d image", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = data[i*3+0]
		img.Pix[i*4+1] = data[i*3+1]
		img.Pix[i*4+2] = data[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case TGA:
		return tga.Encode(w, img)
	case QOI:
		return qoi.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	}
	return errors.Wrapf(ErrFormat, "%d", int(f))
}

// Write stores img in name, the format is taken from the extension.
func Write(name string, img image.Image) error {
	f, err := ParseFormat(filesystem.Ext(name))
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := Encode(&b, img, f); err != nil {
		return errors.Wrapf(err, "%s", name)
	}
	if err := os.WriteFile(name, b.Bytes(), 0o644); err != nil {
		return err
	}
	conlog.DPrintf("wrote %s", name)
	return nil
}

// Load decodes name, looked up through the filesystem. The format is taken
// from the extension.
func Load(name string) (image.Image, error) {
	f, err := ParseFormat(filesystem.Ext(name))
	if err != nil {
		return nil, err
	}
	data, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data), f)
}

func Decode(r io.Reader, f Format) (image.Image, error) {
	switch f {
	case TGA:
		return tga.Decode(r)
	case QOI:
		return qoi.Decode(r)
	case PNG:
		return png.Decode(r)
	}
	return nil, errors.Wrapf(ErrFormat, "%d", int(f))
}
