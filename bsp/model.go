// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"github.com/google/uuid"

	"hlbsp/math/vec"
)

// Contents is the volume classification stored in leaves and terminal
// clip node children.
type Contents int32

const (
	ContentsEmpty       Contents = -1
	ContentsSolid       Contents = -2
	ContentsWater       Contents = -3
	ContentsSlime       Contents = -4
	ContentsLava        Contents = -5
	ContentsSky         Contents = -6
	ContentsOrigin      Contents = -7 // removed at csg time
	ContentsClip        Contents = -8 // changed to contents_solid
	ContentsCurrent0    Contents = -9
	ContentsCurrent90   Contents = -10
	ContentsCurrent180  Contents = -11
	ContentsCurrent270  Contents = -12
	ContentsCurrentUp   Contents = -13
	ContentsCurrentDown Contents = -14
	ContentsTranslucent Contents = -15
)

func (c Contents) String() string {
	switch c {
	case ContentsEmpty:
		return "empty"
	case ContentsSolid:
		return "solid"
	case ContentsWater:
		return "water"
	case ContentsSlime:
		return "slime"
	case ContentsLava:
		return "lava"
	case ContentsSky:
		return "sky"
	case ContentsOrigin:
		return "origin"
	case ContentsClip:
		return "clip"
	case ContentsCurrent0:
		return "current_0"
	case ContentsCurrent90:
		return "current_90"
	case ContentsCurrent180:
		return "current_180"
	case ContentsCurrent270:
		return "current_270"
	case ContentsCurrentUp:
		return "current_up"
	case ContentsCurrentDown:
		return "current_down"
	case ContentsTranslucent:
		return "translucent"
	}
	return fmt.Sprintf("contents(%d)", int32(c))
}

// Liquid reports water, slime and lava.
func (c Contents) Liquid() bool {
	return c == ContentsWater || c == ContentsSlime || c == ContentsLava
}

// Plane types 0-2 are axial, the normal points along that axis.
const (
	PlaneX = iota
	PlaneY
	PlaneZ
	PlaneAnyX
	PlaneAnyY
	PlaneAnyZ
)

type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   int32
}

type Edge struct {
	V [2]uint16
}

type Face struct {
	Plane          uint16
	Side           uint16
	FirstEdge      int32
	EdgeCount      uint16
	TexInfo        uint16
	Styles         [4]uint8
	LightmapOffset int32
}

// Skip reports faces which are never drawn (sky and similar).
func (f *Face) Skip() bool {
	return f.Styles[0] == 0xFF
}

type Node struct {
	Plane     int32
	Children  [2]NodeRef
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace uint16
	FaceCount uint16
}

type Leaf struct {
	Contents         Contents
	VisOffset        int32
	Mins             [3]int16
	Maxs             [3]int16
	FirstMarkSurface uint16
	MarkSurfaceCount uint16
	AmbientLevels    [4]uint8
}

// Model is a submodel, index 0 is the world.
type Model struct {
	Mins      vec.Vec3
	Maxs      vec.Vec3
	Origin    vec.Vec3
	HeadNodes [MaxMapHulls]int32
	VisLeafs  int32
	FirstFace int32
	FaceCount int32
}

type ClipNode struct {
	Plane    int32
	Children [2]ClipRef
}

// TexInfo maps world positions to texture space:
// s = dot(p, S) + SShift, t = dot(p, T) + TShift.
type TexInfo struct {
	S      vec.Vec3
	SShift float32
	T      vec.Vec3
	TShift float32
	MipTex uint32
	Flags  uint32
}

// TexSpecial marks sky and liquid texinfos.
const TexSpecial = 1

func boxOf(mins, maxs [3]int16) (vec.Vec3, vec.Vec3) {
	return vec.Vec3{float32(mins[0]), float32(mins[1]), float32(mins[2])},
		vec.Vec3{float32(maxs[0]), float32(maxs[1]), float32(maxs[2])}
}

// Bounds returns the bounding box as floats.
func (n *Node) Bounds() (vec.Vec3, vec.Vec3) {
	return boxOf(n.Mins, n.Maxs)
}

func (l *Leaf) Bounds() (vec.Vec3, vec.Vec3) {
	return boxOf(l.Mins, l.Maxs)
}

// Map is a fully decoded BSP file. It is not modified after Parse returns
// and may be shared between goroutines.
type Map struct {
	// LoadID distinguishes loads of the same file, e.g. in cache keys.
	LoadID  uuid.UUID
	Version int32
	// Checksum is the CRC-32 of all lumps but the entities. Entity edits
	// keep it, geometry changes do not.
	Checksum uint32

	Entities     []*Entity
	Planes       []Plane
	MipTextures  []MipTexture
	Vertices     []vec.Vec3
	Visibility   []byte
	Nodes        []Node
	TexInfos     []TexInfo
	Faces        []Face
	Lighting     []byte
	ClipNodes    []ClipNode
	Leaves       []Leaf
	MarkSurfaces []uint16
	Edges        []Edge
	SurfEdges    []int32
	Models       []Model

	lumps [NumLumps]directory
	// hull0 is generated from the render tree, hulls 1-3 share ClipNodes.
	hull0 []ClipNode
}

// LumpInfo returns the offset and length of lump l in the source file.
func (m *Map) LumpInfo(l Lump) (offset, length int) {
	d := m.lumps[l]
	return int(d.Offset), int(d.Length)
}

// Stats holds record counts of a map.
type Stats struct {
	Entities, Planes, Textures, Vertices, Nodes, TexInfos, Faces int
	ClipNodes, Leaves, MarkSurfaces, Edges, SurfEdges, Models    int
	LightingBytes, VisibilityBytes                               int
}

func (m *Map) Stats() Stats {
	return Stats{
		Entities:        len(m.Entities),
		Planes:          len(m.Planes),
		Textures:        len(m.MipTextures),
		Vertices:        len(m.Vertices),
		Nodes:           len(m.Nodes),
		TexInfos:        len(m.TexInfos),
		Faces:           len(m.Faces),
		ClipNodes:       len(m.ClipNodes),
		Leaves:          len(m.Leaves),
		MarkSurfaces:    len(m.MarkSurfaces),
		Edges:           len(m.Edges),
		SurfEdges:       len(m.SurfEdges),
		Models:          len(m.Models),
		LightingBytes:   len(m.Lighting),
		VisibilityBytes: len(m.Visibility),
	}
}
