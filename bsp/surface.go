// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"github.com/chewxy/math32"

	"hlbsp/math"
	"hlbsp/math/vec"
)

type TexCoord struct {
	S, T float32
}

// Lightmap describes the luxel grid of a face.
type Lightmap struct {
	Width, Height int
	// Coords has one entry per face vertex in [0,1].
	Coords      []TexCoord
	HasLightmap bool
	// Offset into Map.Lighting, -1 if there is none.
	Offset int
	// Mins and Extents are in texture space, snapped to LightmapScale.
	Mins    [2]int
	Extents [2]int
}

func (m *Map) face(i int) *Face {
	if i < 0 || i >= len(m.Faces) {
		panic(fmt.Sprintf("bsp: bad face index %d (have %d)", i, len(m.Faces)))
	}
	return &m.Faces[i]
}

func (m *Map) texInfo(f *Face) *TexInfo {
	if int(f.TexInfo) >= len(m.TexInfos) {
		panic(fmt.Sprintf("bsp: bad texinfo index %d (have %d)", f.TexInfo, len(m.TexInfos)))
	}
	return &m.TexInfos[f.TexInfo]
}

// FaceVertices returns the polygon of face i. A negative surfedge walks
// its edge backwards.
func (m *Map) FaceVertices(i int) []vec.Vec3 {
	f := m.face(i)
	vs := make([]vec.Vec3, f.EdgeCount)
	for j := range vs {
		se := int(f.FirstEdge) + j
		if se < 0 || se >= len(m.SurfEdges) {
			panic(fmt.Sprintf("bsp: face %d: bad surfedge %d (have %d)", i, se, len(m.SurfEdges)))
		}
		e := int(m.SurfEdges[se])
		v := 0
		if e < 0 {
			e, v = -e, 1
		}
		if e >= len(m.Edges) {
			panic(fmt.Sprintf("bsp: face %d: bad edge %d (have %d)", i, e, len(m.Edges)))
		}
		vi := int(m.Edges[e].V[v])
		if vi >= len(m.Vertices) {
			panic(fmt.Sprintf("bsp: face %d: bad vertex %d (have %d)", i, vi, len(m.Vertices)))
		}
		vs[j] = m.Vertices[vi]
	}
	return vs
}

func project(ti *TexInfo, v vec.Vec3) (float32, float32) {
	return vec.Dot(v, ti.S) + ti.SShift, vec.Dot(v, ti.T) + ti.TShift
}

// MipTexture returns the texture of face i, nil if the texinfo points
// past the texture lump.
func (m *Map) MipTexture(i int) *MipTexture {
	ti := m.texInfo(m.face(i))
	if int(ti.MipTex) >= len(m.MipTextures) {
		return nil
	}
	return &m.MipTextures[ti.MipTex]
}

// TexCoords returns the texture coordinates of the vertices of face i,
// divided by the texture size. Textures without size stay in texels.
func (m *Map) TexCoords(i int) []TexCoord {
	ti := m.texInfo(m.face(i))
	w, h := float32(1), float32(1)
	if t := m.MipTexture(i); t != nil && t.Width != 0 && t.Height != 0 {
		w, h = float32(t.Width), float32(t.Height)
	}
	vs := m.FaceVertices(i)
	tc := make([]TexCoord, len(vs))
	for j, v := range vs {
		s, t := project(ti, v)
		tc[j] = TexCoord{S: s / w, T: t / h}
	}
	return tc
}

// LightmapCoords computes the lightmap size of face i and the position of
// each vertex in it.
func (m *Map) LightmapCoords(i int) Lightmap {
	f := m.face(i)
	ti := m.texInfo(f)
	vs := m.FaceVertices(i)
	lm := Lightmap{
		Offset: int(f.LightmapOffset),
		Coords: make([]TexCoord, len(vs)),
	}
	if len(vs) == 0 {
		return lm
	}
	minU, minV := math32.Inf(1), math32.Inf(1)
	maxU, maxV := math32.Inf(-1), math32.Inf(-1)
	us := make([]TexCoord, len(vs))
	for j, v := range vs {
		u, w := project(ti, v)
		us[j] = TexCoord{S: u, T: w}
		minU, maxU = math32.Min(minU, u), math32.Max(maxU, u)
		minV, maxV = math32.Min(minV, w), math32.Max(maxV, w)
	}
	floorU, floorV := math.FloorDiv(minU, LightmapScale), math.FloorDiv(minV, LightmapScale)
	ceilU, ceilV := math.CeilDiv(maxU, LightmapScale), math.CeilDiv(maxV, LightmapScale)
	lm.Width = ceilU - floorU + 1
	lm.Height = ceilV - floorV + 1
	lm.Mins = [2]int{floorU * LightmapScale, floorV * LightmapScale}
	lm.Extents = [2]int{(ceilU - floorU) * LightmapScale, (ceilV - floorV) * LightmapScale}

	if f.Styles[0] != 0 || f.LightmapOffset == -1 {
		lm.Offset = -1
		return lm
	}
	lm.HasLightmap = true
	midU, midV := (minU+maxU)/2, (minV+maxV)/2
	w, h := float32(lm.Width), float32(lm.Height)
	for j, c := range us {
		lm.Coords[j] = TexCoord{
			S: (w/2 + (c.S-midU)/LightmapScale) / w,
			T: (h/2 + (c.T-midV)/LightmapScale) / h,
		}
	}
	return lm
}

// LightmapSamples returns the RGB luxels of the first light style of
// face i, nil if the face is unlit or the lighting lump is too short.
func (m *Map) LightmapSamples(i int) []byte {
	lm := m.LightmapCoords(i)
	return m.samples(&lm)
}

func (m *Map) samples(lm *Lightmap) []byte {
	if !lm.HasLightmap || lm.Offset < 0 {
		return nil
	}
	n := lm.Width * lm.Height * 3
	if lm.Offset+n > len(m.Lighting) {
		return nil
	}
	return m.Lighting[lm.Offset : lm.Offset+n]
}

// Surface bundles everything needed to draw a face.
type Surface struct {
	Face      int
	Plane     Plane
	Vertices  []vec.Vec3
	TexCoords []TexCoord
	Lightmap  Lightmap
	// MipTexture indexes Map.MipTextures.
	MipTexture int
	Sky        bool
}

func (m *Map) Surface(i int) Surface {
	f := m.face(i)
	pl := *m.plane(int32(f.Plane))
	if f.Side != 0 {
		pl = pl.Flip()
	}
	ti := m.texInfo(f)
	s := Surface{
		Face:       i,
		Plane:      pl,
		Vertices:   m.FaceVertices(i),
		TexCoords:  m.TexCoords(i),
		Lightmap:   m.LightmapCoords(i),
		MipTexture: int(ti.MipTex),
	}
	if t := m.MipTexture(i); t != nil {
		s.Sky = t.Sky()
	}
	return s
}
