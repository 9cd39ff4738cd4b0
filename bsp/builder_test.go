// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// On disk records as written by the map compiler.
type diskPlane struct {
	Normal [3]float32
	Dist   float32
	Type   int32
}

type diskNode struct {
	Plane     int32
	Children  [2]int16
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace uint16
	NumFaces  uint16
}

type diskLeaf struct {
	Contents  int32
	VisOfs    int32
	Mins      [3]int16
	Maxs      [3]int16
	FirstMark uint16
	NumMark   uint16
	Ambient   [4]uint8
}

type diskFace struct {
	Plane    uint16
	Side     uint16
	First    int32
	NumEdges uint16
	TexInfo  uint16
	Styles   [4]uint8
	LightOfs int32
}

type diskClipNode struct {
	Plane    int32
	Children [2]int16
}

type diskTexInfo struct {
	S      [3]float32
	SShift float32
	T      [3]float32
	TShift float32
	MipTex uint32
	Flags  uint32
}

type diskModel struct {
	Mins      [3]float32
	Maxs      [3]float32
	Origin    [3]float32
	HeadNodes [4]int32
	VisLeafs  int32
	FirstFace int32
	NumFaces  int32
}

type diskMipTex struct {
	Name    [16]byte
	Width   uint32
	Height  uint32
	Offsets [4]uint32
}

func enc(t testing.TB, vs ...any) []byte {
	t.Helper()
	var b bytes.Buffer
	for _, v := range vs {
		require.NoError(t, binary.Write(&b, binary.LittleEndian, v))
	}
	return b.Bytes()
}

type builder struct {
	version int32
	lumps   [NumLumps][]byte
}

func (b *builder) bytes() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, b.version)
	off := int32(headerSize)
	for _, l := range b.lumps {
		binary.Write(&buf, binary.LittleEndian, [2]int32{off, int32(len(l))})
		off += int32(len(l))
	}
	for _, l := range b.lumps {
		buf.Write(l)
	}
	return buf.Bytes()
}

func mipName(s string) [16]byte {
	var n [16]byte
	copy(n[:], s)
	return n
}

// textureLump writes a count, offsets and headers. Names starting with
// '-' are written as missing (offset -1).
func textureLump(t testing.TB, texs ...diskMipTex) []byte {
	offsets := make([]int32, len(texs))
	off := int32(4 + 4*len(texs))
	var body []byte
	for i, tx := range texs {
		if tx.Name[0] == '-' {
			offsets[i] = -1
			continue
		}
		offsets[i] = off
		b := enc(t, tx)
		body = append(body, b...)
		off += int32(len(b))
	}
	return append(enc(t, uint32(len(texs)), offsets), body...)
}

const testEntities = `{
"classname" "worldspawn"
"wad" "\half-life\valve\halflife.wad;decals.wad"
}
{
"classname" "func_door"
"model" "*1"
"origin" "1 2 3"
}
{
"classname" "func_wall"
"model" "*9"
}
`

// newTestBuilder returns a map with a 32x32 square on z=0 and a tree split
// by plane 0 (z=0): child 0 is leaf 1 above the floor, child 1 is solid.
//
// Faces: 0 the square, 1 the square walked backwards, 2 a sky face.
func newTestBuilder(t testing.TB) *builder {
	b := &builder{version: Version}
	b.lumps[LumpEntities] = []byte(testEntities)
	b.lumps[LumpPlanes] = enc(t, []diskPlane{
		{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: PlaneZ},
		{Normal: [3]float32{1, 0, 0}, Dist: 0, Type: PlaneX},
		{Normal: [3]float32{0.6, 0.8, 0}, Dist: 0, Type: PlaneAnyY},
	})
	b.lumps[LumpVertexes] = enc(t, [][3]float32{
		{0, 0, 0}, {32, 0, 0}, {32, 32, 0}, {0, 32, 0},
	})
	b.lumps[LumpEdges] = enc(t, [][2]uint16{
		{0, 0}, {0, 1}, {1, 2}, {2, 3}, {3, 0},
	})
	b.lumps[LumpSurfaceEdges] = enc(t, []int32{1, 2, 3, 4, -4, -3, -2, -1})
	b.lumps[LumpTexInfo] = enc(t, []diskTexInfo{
		{S: [3]float32{1, 0, 0}, T: [3]float32{0, 1, 0}, MipTex: 0},
		{S: [3]float32{1, 0, 0}, T: [3]float32{0, 1, 0}, MipTex: 1, Flags: TexSpecial},
	})
	b.lumps[LumpFaces] = enc(t, []diskFace{
		{Plane: 0, First: 0, NumEdges: 4, TexInfo: 0, Styles: [4]uint8{0, 255, 255, 255}, LightOfs: 0},
		{Plane: 0, Side: 1, First: 4, NumEdges: 4, TexInfo: 0, Styles: [4]uint8{0, 255, 255, 255}, LightOfs: 0},
		{Plane: 0, First: 0, NumEdges: 4, TexInfo: 1, Styles: [4]uint8{255, 255, 255, 255}, LightOfs: -1},
	})
	b.lumps[LumpNodes] = enc(t, []diskNode{
		{Plane: 0, Children: [2]int16{^1, ^0}, Mins: [3]int16{-64, -64, -64}, Maxs: [3]int16{64, 64, 64}, FirstFace: 0, NumFaces: 1},
	})
	b.lumps[LumpLeafs] = enc(t, []diskLeaf{
		{Contents: int32(ContentsSolid)},
		{Contents: int32(ContentsEmpty), Mins: [3]int16{-64, -64, 0}, Maxs: [3]int16{64, 64, 64}, FirstMark: 0, NumMark: 3},
	})
	b.lumps[LumpMarkSurfaces] = enc(t, []uint16{0, 2, 1})
	b.lumps[LumpClipNodes] = enc(t, []diskClipNode{
		{Plane: 0, Children: [2]int16{int16(ContentsEmpty), int16(ContentsSolid)}},
	})
	b.lumps[LumpModels] = enc(t, []diskModel{
		{Mins: [3]float32{-64, -64, -64}, Maxs: [3]float32{64, 64, 64}, NumFaces: 3},
		{Mins: [3]float32{0, 0, 0}, Maxs: [3]float32{32, 32, 0}, FirstFace: 0, NumFaces: 1},
	})
	light := make([]byte, 27)
	for i := 0; i < len(light); i += 3 {
		light[i], light[i+1], light[i+2] = 100, 50, 25
	}
	b.lumps[LumpLighting] = light
	b.lumps[LumpTextures] = textureLump(t,
		diskMipTex{Name: mipName("wall"), Width: 32, Height: 32},
		diskMipTex{Name: mipName("sky"), Width: 0, Height: 0},
	)
	return b
}

// withSplitTree replaces the tree by one node on plane p whose children
// are the leaves 1 and 2.
func (b *builder) withSplitTree(t testing.TB, plane int32) *builder {
	b.lumps[LumpNodes] = enc(t, []diskNode{
		{Plane: plane, Children: [2]int16{^1, ^2}, Mins: [3]int16{-64, -64, -64}, Maxs: [3]int16{64, 64, 64}},
	})
	b.lumps[LumpLeafs] = enc(t, []diskLeaf{
		{Contents: int32(ContentsSolid)},
		{Contents: int32(ContentsEmpty), Mins: [3]int16{0, -64, -64}, Maxs: [3]int16{64, 64, 64}, FirstMark: 0, NumMark: 2},
		{Contents: int32(ContentsWater), Mins: [3]int16{-64, -64, -64}, Maxs: [3]int16{0, 64, 64}, FirstMark: 2, NumMark: 2},
	})
	b.lumps[LumpMarkSurfaces] = enc(t, []uint16{0, 2, 1, 0})
	return b
}

func parseTest(t testing.TB, b *builder) *Map {
	t.Helper()
	m, err := Parse(b.bytes())
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}
