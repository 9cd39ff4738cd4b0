// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hlbsp/binfile"
	"hlbsp/conlog"
	"hlbsp/crc"
	"hlbsp/math/vec"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported bsp version")
	ErrMalformedLump      = errors.New("malformed lump")
	ErrTruncated          = binfile.ErrTruncated
	ErrNoSuchHull         = errors.New("no such hull")
	ErrNoSuchModel        = errors.New("no such model")
	// ErrVisibilityUnsupported is returned by LeafPVS. The visibility lump
	// is kept raw and never decoded.
	ErrVisibilityUnsupported = errors.New("visibility data is not decoded")
)

// Parse decodes a complete Half-Life BSP file. The returned Map keeps
// sub-slices of data for the entity, lighting, visibility and texture lumps.
func Parse(data []byte) (*Map, error) {
	r := binfile.New(data)
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	m := &Map{
		LoadID:  uuid.Must(uuid.NewV7()),
		Version: h.Version,
		lumps:   h.Lumps,
	}
	p := parser{r: r, h: h}

	if m.Planes, err = readRecords(&p, LumpPlanes, readPlane); err != nil {
		return nil, err
	}
	if m.Vertices, err = readRecords(&p, LumpVertexes, readVertex); err != nil {
		return nil, err
	}
	if m.Edges, err = readRecords(&p, LumpEdges, readEdge); err != nil {
		return nil, err
	}
	if m.SurfEdges, err = readRecords(&p, LumpSurfaceEdges, func(s *binfile.Sticky) int32 { return s.Int32() }); err != nil {
		return nil, err
	}
	if m.Faces, err = readRecords(&p, LumpFaces, readFace); err != nil {
		return nil, err
	}
	if m.Nodes, err = readRecords(&p, LumpNodes, readNode); err != nil {
		return nil, err
	}
	if m.Leaves, err = readRecords(&p, LumpLeafs, readLeaf); err != nil {
		return nil, err
	}
	if m.MarkSurfaces, err = readRecords(&p, LumpMarkSurfaces, func(s *binfile.Sticky) uint16 { return s.Uint16() }); err != nil {
		return nil, err
	}
	if m.Models, err = readRecords(&p, LumpModels, readModel); err != nil {
		return nil, err
	}
	if m.ClipNodes, err = readRecords(&p, LumpClipNodes, readClipNode); err != nil {
		return nil, err
	}
	if m.TexInfos, err = readRecords(&p, LumpTexInfo, readTexInfo); err != nil {
		return nil, err
	}
	if m.MipTextures, err = p.readTextures(); err != nil {
		return nil, err
	}
	ents, err := p.raw(LumpEntities)
	if err != nil {
		return nil, err
	}
	m.Entities = ParseEntities(ents)
	if m.Lighting, err = p.raw(LumpLighting); err != nil {
		return nil, err
	}
	if m.Visibility, err = p.raw(LumpVisibility); err != nil {
		return nil, err
	}
	if m.hull0, err = m.makeHull0(); err != nil {
		return nil, err
	}
	m.Checksum = crc.Spans(data, checksumSpans(h))

	conlog.Debug("bsp loaded",
		"id", m.LoadID,
		"planes", len(m.Planes),
		"vertices", len(m.Vertices),
		"faces", len(m.Faces),
		"nodes", len(m.Nodes),
		"leaves", len(m.Leaves),
		"clipnodes", len(m.ClipNodes),
		"models", len(m.Models),
		"textures", len(m.MipTextures),
		"entities", len(m.Entities))
	return m, nil
}

func readHeader(r *binfile.Reader) (header, error) {
	var h header
	s := binfile.NewSticky(r)
	h.Version = s.Int32()
	if err := s.Err(); err != nil {
		return h, errors.Wrap(err, "header")
	}
	if h.Version != Version {
		return h, errors.Wrapf(ErrUnsupportedVersion, "got %d, want %d", h.Version, Version)
	}
	for i := range h.Lumps {
		h.Lumps[i].Offset = s.Int32()
		h.Lumps[i].Length = s.Int32()
	}
	if err := s.Err(); err != nil {
		return h, errors.Wrap(err, "lump directory")
	}
	return h, nil
}

func checksumSpans(h header) []crc.Span {
	spans := make([]crc.Span, 0, NumLumps-1)
	for l, d := range h.Lumps {
		if Lump(l) == LumpEntities {
			continue
		}
		spans = append(spans, crc.Span{Offset: int(d.Offset), Length: int(d.Length)})
	}
	return spans
}

type parser struct {
	r *binfile.Reader
	h header
}

// span checks the directory entry of l against the buffer.
func (p *parser) span(l Lump) (int, int, error) {
	d := p.h.Lumps[l]
	off, n := int(d.Offset), int(d.Length)
	if off < 0 || n < 0 || off+n > p.r.Len() {
		return 0, 0, errors.Wrapf(ErrTruncated, "lump %v: offset %d length %d, file size %d", l, off, n, p.r.Len())
	}
	return off, n, nil
}

func (p *parser) raw(l Lump) ([]byte, error) {
	off, n, err := p.span(l)
	if err != nil {
		return nil, err
	}
	p.r.Seek(off)
	b, err := p.r.ReadBytes(n)
	if err != nil {
		return nil, errors.Wrapf(err, "lump %v", l)
	}
	return b, nil
}

func readRecords[T any](p *parser, l Lump, read func(*binfile.Sticky) T) ([]T, error) {
	off, n, err := p.span(l)
	if err != nil {
		return nil, err
	}
	size := l.recordSize()
	if n%size != 0 {
		return nil, errors.Wrapf(ErrMalformedLump, "lump %v: length %d is not a multiple of %d", l, n, size)
	}
	count := n / size
	out := make([]T, count)
	p.r.Seek(off)
	s := binfile.NewSticky(p.r)
	for i := range out {
		out[i] = read(s)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "lump %v", l)
	}
	conlog.DPrintf("lump %v: %d records", l, count)
	return out, nil
}

func readVec(s *binfile.Sticky) vec.Vec3 {
	return vec.Vec3{s.Float32(), s.Float32(), s.Float32()}
}

func readShorts(s *binfile.Sticky) [3]int16 {
	return [3]int16{s.Int16(), s.Int16(), s.Int16()}
}

func readPlane(s *binfile.Sticky) Plane {
	return Plane{
		Normal: readVec(s),
		Dist:   s.Float32(),
		Type:   s.Int32(),
	}
}

func readVertex(s *binfile.Sticky) vec.Vec3 {
	return readVec(s)
}

func readEdge(s *binfile.Sticky) Edge {
	return Edge{V: [2]uint16{s.Uint16(), s.Uint16()}}
}

func readFace(s *binfile.Sticky) Face {
	return Face{
		Plane:          s.Uint16(),
		Side:           s.Uint16(),
		FirstEdge:      s.Int32(),
		EdgeCount:      s.Uint16(),
		TexInfo:        s.Uint16(),
		Styles:         [4]uint8{s.Uint8(), s.Uint8(), s.Uint8(), s.Uint8()},
		LightmapOffset: s.Int32(),
	}
}

func readNode(s *binfile.Sticky) Node {
	return Node{
		Plane:     s.Int32(),
		Children:  [2]NodeRef{nodeRef(s.Int16()), nodeRef(s.Int16())},
		Mins:      readShorts(s),
		Maxs:      readShorts(s),
		FirstFace: s.Uint16(),
		FaceCount: s.Uint16(),
	}
}

func readLeaf(s *binfile.Sticky) Leaf {
	return Leaf{
		Contents:         Contents(s.Int32()),
		VisOffset:        s.Int32(),
		Mins:             readShorts(s),
		Maxs:             readShorts(s),
		FirstMarkSurface: s.Uint16(),
		MarkSurfaceCount: s.Uint16(),
		AmbientLevels:    [4]uint8{s.Uint8(), s.Uint8(), s.Uint8(), s.Uint8()},
	}
}

func readModel(s *binfile.Sticky) Model {
	return Model{
		Mins:      readVec(s),
		Maxs:      readVec(s),
		Origin:    readVec(s),
		HeadNodes: [MaxMapHulls]int32{s.Int32(), s.Int32(), s.Int32(), s.Int32()},
		VisLeafs:  s.Int32(),
		FirstFace: s.Int32(),
		FaceCount: s.Int32(),
	}
}

func readClipNode(s *binfile.Sticky) ClipNode {
	return ClipNode{
		Plane:    s.Int32(),
		Children: [2]ClipRef{clipRef(s.Int16()), clipRef(s.Int16())},
	}
}

func readTexInfo(s *binfile.Sticky) TexInfo {
	return TexInfo{
		S:      readVec(s),
		SShift: s.Float32(),
		T:      readVec(s),
		TShift: s.Float32(),
		MipTex: s.Uint32(),
		Flags:  s.Uint32(),
	}
}

// readTextures decodes the texture lump: a count, count offsets relative to
// the lump start and a mip texture header at each offset.
func (p *parser) readTextures() ([]MipTexture, error) {
	lump, err := p.raw(LumpTextures)
	if err != nil || len(lump) == 0 {
		return nil, err
	}
	r := binfile.New(lump)
	s := binfile.NewSticky(r)
	count := s.Uint32()
	if s.Err() == nil && uint64(count)*4 > uint64(r.Len()-r.Offset()) {
		return nil, errors.Wrapf(ErrTruncated, "lump %v: %d offsets", LumpTextures, count)
	}
	offsets := make([]int32, count)
	for i := range offsets {
		offsets[i] = s.Int32()
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "lump %v", LumpTextures)
	}
	textures := make([]MipTexture, count)
	for i, off := range offsets {
		if off == -1 {
			// missing texture
			continue
		}
		r.Seek(int(off))
		t := &textures[i]
		t.Name = s.String(MaxTextureLen)
		t.Width = s.Uint32()
		t.Height = s.Uint32()
		for j := range t.Offsets {
			t.Offsets[j] = s.Uint32()
		}
		if err := s.Err(); err != nil {
			return nil, errors.Wrapf(err, "lump %v: texture %d", LumpTextures, i)
		}
		t.Data = lump[off:]
	}
	conlog.DPrintf("lump %v: %d records", LumpTextures, count)
	return textures, nil
}
