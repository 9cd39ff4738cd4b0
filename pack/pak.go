// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"hlbsp/binfile"
)

const (
	headerSize = 12
	entrySize  = 64 // name[56], offset, size
	nameLength = 56
)

var ErrNotPack = errors.New("not a pack")

type Pack struct {
	r     io.ReaderAt
	c     io.Closer
	files map[string]qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a io.SectionReader of the named entry. Names are case
// insensitive and use forward slashes.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[normalize(name)]
	if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "%s: %s", p.name, name)
	}
	return io.NewSectionReader(p.r, q.offset, q.size), nil
}

// Names lists all entries, sorted.
func (p *Pack) Names() []string {
	n := make([]string, 0, len(p.files))
	for k := range p.files {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	if p.c == nil {
		return nil
	}
	return p.c.Close()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/"))
}

// New reads the directory of a pack of the given size.
func New(name string, r io.ReaderAt, size int64) (*Pack, error) {
	p := &Pack{r: r, name: name}
	hb := make([]byte, headerSize)
	if _, err := r.ReadAt(hb, 0); err != nil {
		return nil, errors.Wrapf(binfile.ErrTruncated, "%s: header", name)
	}
	if string(hb[:4]) != "PACK" {
		return nil, errors.Wrapf(ErrNotPack, "%s", name)
	}
	h := binfile.NewSticky(binfile.New(hb[4:]))
	dirOffset := int64(h.Int32())
	dirSize := int64(h.Int32())
	if dirOffset < 0 || dirSize < 0 || dirOffset+dirSize > size {
		return nil, errors.Wrapf(binfile.ErrTruncated, "%s: directory at %d size %d", name, dirOffset, dirSize)
	}
	dir := make([]byte, dirSize)
	if _, err := r.ReadAt(dir, dirOffset); err != nil {
		return nil, errors.Wrapf(err, "%s: directory", name)
	}
	filenum := len(dir) / entrySize
	p.files = make(map[string]qfile, filenum)
	s := binfile.NewSticky(binfile.New(dir))
	for i := 0; i < filenum; i++ {
		n := normalize(s.String(nameLength))
		q := qfile{offset: int64(s.Int32()), size: int64(s.Int32())}
		if q.offset < 0 || q.size < 0 || q.offset+q.size > size {
			return nil, errors.Wrapf(binfile.ErrTruncated, "%s: %s", name, n)
		}
		if _, ok := p.files[n]; ok {
			return nil, errors.Errorf("%s: files in pack are not unique: %s", name, n)
		}
		p.files[n] = q
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: directory", name)
	}
	return p, nil
}

// NewPackReader opens a pack file from disk.
func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	p, err := New(name, f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	p.c = f
	return p, nil
}
