// SPDX-License-Identifier: GPL-2.0-or-later

package binfile

// Sticky wraps a Reader and remembers the first error. Subsequent reads
// return zero values, so fixed size records can be decoded without checking
// every field.
type Sticky struct {
	*Reader
	err error
}

func NewSticky(r *Reader) *Sticky {
	return &Sticky{Reader: r}
}

func (s *Sticky) Err() error {
	return s.err
}

func (s *Sticky) keep(err error) bool {
	if s.err != nil {
		return false
	}
	s.err = err
	return err == nil
}

func (s *Sticky) Int16() int16 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadInt16()
	s.keep(err)
	return v
}

func (s *Sticky) Uint16() uint16 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadUint16()
	s.keep(err)
	return v
}

func (s *Sticky) Int32() int32 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadInt32()
	s.keep(err)
	return v
}

func (s *Sticky) Uint32() uint32 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadUint32()
	s.keep(err)
	return v
}

func (s *Sticky) Uint8() uint8 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadUint8()
	s.keep(err)
	return v
}

func (s *Sticky) Float32() float32 {
	if s.err != nil {
		return 0
	}
	v, err := s.ReadFloat32()
	s.keep(err)
	return v
}

func (s *Sticky) String(n int) string {
	if s.err != nil {
		return ""
	}
	v, err := s.ReadFixedString(n)
	s.keep(err)
	return v
}
