// SPDX-License-Identifier: GPL-2.0-or-later

// Package binfile reads little endian c-style data from an in-memory file.
package binfile

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var ErrTruncated = errors.New("read past end of file")

// Reader is a cursor over a fixed byte buffer. All reads are little endian
// and advance the cursor by the width of the type read.
type Reader struct {
	data   []byte
	offset int
}

func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Seek moves the cursor to the absolute position pos. Bounds are checked on
// the next read only.
func (r *Reader) Seek(pos int) {
	r.offset = pos
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Len() int {
	return len(r.data)
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.offset < 0 || n < 0 || r.offset+n > len(r.data) {
		return nil, errors.Wrapf(ErrTruncated, "reading %d bytes at offset %d of %d", n, r.offset, len(r.data))
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFixedString reads a nul padded string stored in maxLen bytes. The
// cursor always advances by maxLen.
func (r *Reader) ReadFixedString(maxLen int) (string, error) {
	b, err := r.take(maxLen)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

// ReadBytes returns the next n bytes. The slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}
