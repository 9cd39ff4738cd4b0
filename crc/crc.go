// SPDX-License-Identifier: GPL-2.0-or-later

package crc

import (
	"hash/crc32"
)

// Span is a byte range of a file.
type Span struct {
	Offset, Length int
}

// Spans returns the CRC-32 (IEEE) of the given ranges of data, taken in
// order. Ranges outside data are clipped.
func Spans(data []byte, spans []Span) uint32 {
	h := crc32.NewIEEE()
	for _, s := range spans {
		if s.Offset < 0 || s.Offset >= len(data) || s.Length <= 0 {
			continue
		}
		end := min(s.Offset+s.Length, len(data))
		h.Write(data[s.Offset:end])
	}
	return h.Sum32()
}
