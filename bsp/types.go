// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "fmt"

// Version is the only BSP version understood by this package (Half-Life).
const Version = 30

// Lump indexes the directory of a BSP file.
type Lump int

const (
	LumpEntities Lump = iota
	LumpPlanes
	LumpTextures
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexInfo
	LumpFaces
	LumpLighting
	LumpClipNodes
	LumpLeafs
	LumpMarkSurfaces
	LumpEdges
	LumpSurfaceEdges
	LumpModels
	NumLumps
)

var lumpNames = [NumLumps]string{
	"entities", "planes", "textures", "vertexes", "visibility", "nodes",
	"texinfo", "faces", "lighting", "clipnodes", "leafs", "marksurfaces",
	"edges", "surfedges", "models",
}

func (l Lump) String() string {
	if l < 0 || l >= NumLumps {
		return fmt.Sprintf("lump(%d)", int(l))
	}
	return lumpNames[l]
}

// Size of the on disk records in bytes.
const (
	headerSize      = 4 + NumLumps*8
	planeSize       = 20 // normal[3], dist, type
	vertexSize      = 12
	edgeSize        = 4  // uint16 v[2]
	faceSize        = 20 // plane, side, firstedge, numedges, texinfo, styles[4], lightofs
	surfEdgeSize    = 4
	nodeSize        = 24 // plane, children int16[2], mins int16[3], maxs int16[3], firstface, numfaces
	leafSize        = 28 // contents, visofs, mins int16[3], maxs int16[3], firstmarksurface, nummarksurfaces, ambient[4]
	markSurfaceSize = 2
	modelSize       = 64 // mins[3], maxs[3], origin[3], headnode[4], visleafs, firstface, numfaces
	clipNodeSize    = 8  // plane, children int16[2]
	texInfoSize     = 40 // s[3], sshift, t[3], tshift, miptex, flags
	mipTexSize      = 40 // name[16], width, height, offsets[4]
)

const (
	MaxMapHulls   = 4
	MipLevels     = 4
	MaxTextureLen = 16
	// LightmapScale is the number of world units covered by one luxel.
	LightmapScale = 16
)

// called lump_t in c
type directory struct {
	Offset int32
	Length int32
}

type header struct {
	Version int32
	Lumps   [NumLumps]directory
}

func (l Lump) recordSize() int {
	switch l {
	case LumpPlanes:
		return planeSize
	case LumpVertexes:
		return vertexSize
	case LumpNodes:
		return nodeSize
	case LumpTexInfo:
		return texInfoSize
	case LumpFaces:
		return faceSize
	case LumpClipNodes:
		return clipNodeSize
	case LumpLeafs:
		return leafSize
	case LumpMarkSurfaces:
		return markSurfaceSize
	case LumpEdges:
		return edgeSize
	case LumpSurfaceEdges:
		return surfEdgeSize
	case LumpModels:
		return modelSize
	}
	return 1
}
