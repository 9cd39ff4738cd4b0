// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"hlbsp/cvars"
	"hlbsp/math/vec"
)

type RefKind uint8

const (
	RefNode RefKind = iota
	RefLeaf
	// RefSolid is leaf 0, shared by all solid space.
	RefSolid
)

// NodeRef is a decoded node child.
type NodeRef struct {
	Kind  RefKind
	Index int
}

// nodeRef decodes a raw child: >= 0 is a node, otherwise leaf ^v.
func nodeRef(v int16) NodeRef {
	if v >= 0 {
		return NodeRef{Kind: RefNode, Index: int(v)}
	}
	l := int(^v)
	if l == 0 {
		return NodeRef{Kind: RefSolid}
	}
	return NodeRef{Kind: RefLeaf, Index: l}
}

// headRef decodes a model head node, which is stored as int32.
func headRef(v int32) NodeRef {
	if v >= 0 {
		return NodeRef{Kind: RefNode, Index: int(v)}
	}
	return nodeRef(int16(v))
}

func (r NodeRef) String() string {
	switch r.Kind {
	case RefNode:
		return fmt.Sprintf("node %d", r.Index)
	case RefLeaf:
		return fmt.Sprintf("leaf %d", r.Index)
	}
	return "solid"
}

func (m *Map) node(i int) *Node {
	if i < 0 || i >= len(m.Nodes) {
		panic(fmt.Sprintf("bsp: bad node index %d (have %d)", i, len(m.Nodes)))
	}
	return &m.Nodes[i]
}

func (m *Map) leaf(i int) *Leaf {
	if i < 0 || i >= len(m.Leaves) {
		panic(fmt.Sprintf("bsp: bad leaf index %d (have %d)", i, len(m.Leaves)))
	}
	return &m.Leaves[i]
}

func (m *Map) plane(i int32) *Plane {
	if i < 0 || int(i) >= len(m.Planes) {
		panic(fmt.Sprintf("bsp: bad plane index %d (have %d)", i, len(m.Planes)))
	}
	return &m.Planes[i]
}

// refBounds of the solid sentinel are those of leaf 0.
func (m *Map) refBounds(r NodeRef) (vec.Vec3, vec.Vec3) {
	switch r.Kind {
	case RefNode:
		return m.node(r.Index).Bounds()
	case RefSolid:
		return m.leaf(0).Bounds()
	}
	return m.leaf(r.Index).Bounds()
}

// LocateLeaf returns the leaf of the world tree containing p.
func (m *Map) LocateLeaf(p vec.Vec3) (int, bool) {
	if len(m.Nodes) == 0 {
		return 0, false
	}
	return m.LocateLeafFrom(0, p)
}

// LocateLeafFrom walks down from node root using the child bounding boxes.
// The first child whose box contains p (boundary included) is taken. When
// that child is the solid leaf, p is in no leaf.
func (m *Map) LocateLeafFrom(root int, p vec.Vec3) (int, bool) {
	n := m.node(root)
	for {
		next, ok := NodeRef{}, false
		for _, c := range n.Children {
			mins, maxs := m.refBounds(c)
			if vec.InBox(p, mins, maxs) {
				next, ok = c, true
				break
			}
		}
		if !ok || next.Kind == RefSolid {
			return 0, false
		}
		if next.Kind == RefLeaf {
			return next.Index, true
		}
		n = m.node(next.Index)
	}
}

// RenderOrder visits the leaves below root back to front as seen from
// camera: the side of each plane holding the camera comes last. The solid
// leaf is never visited.
func (m *Map) RenderOrder(root int, camera vec.Vec3, visit func(leaf int)) {
	m.renderOrder(NodeRef{Kind: RefNode, Index: root}, camera, visit)
}

func (m *Map) renderOrder(r NodeRef, camera vec.Vec3, visit func(int)) {
	switch r.Kind {
	case RefSolid:
		return
	case RefLeaf:
		m.leaf(r.Index)
		visit(r.Index)
		return
	}
	n := m.node(r.Index)
	pl := m.plane(n.Plane)
	var d float32
	if pl.Type < 3 {
		d = camera[pl.Type] - pl.Dist
	} else {
		d = vec.Dot(camera, pl.Normal) - pl.Dist
	}
	if d > 0 {
		m.renderOrder(n.Children[1], camera, visit)
		m.renderOrder(n.Children[0], camera, visit)
	} else {
		m.renderOrder(n.Children[0], camera, visit)
		m.renderOrder(n.Children[1], camera, visit)
	}
}

// LeafFaces visits the faces of a leaf in marksurface order, skipping
// faces which are never drawn.
func (m *Map) LeafFaces(leaf int, visit func(face int)) {
	l := m.leaf(leaf)
	first := int(l.FirstMarkSurface)
	last := first + int(l.MarkSurfaceCount)
	if last > len(m.MarkSurfaces) {
		panic(fmt.Sprintf("bsp: leaf %d marksurfaces %d..%d out of range (have %d)", leaf, first, last, len(m.MarkSurfaces)))
	}
	for _, ms := range m.MarkSurfaces[first:last] {
		f := int(ms)
		if f >= len(m.Faces) {
			panic(fmt.Sprintf("bsp: bad face index %d in leaf %d", f, leaf))
		}
		if m.Faces[f].Skip() {
			continue
		}
		visit(f)
	}
}

// LeafVisible always reports true. PVS data is not decoded.
func (m *Map) LeafVisible(leaf int) bool {
	return true
}

// LeafPVS would return the decompressed visibility row of a leaf. Maps
// without a visibility lump see everything and get nil. Otherwise
// ErrVisibilityUnsupported is returned.
func (m *Map) LeafPVS(leaf int) ([]byte, error) {
	m.leaf(leaf)
	if len(m.Visibility) == 0 {
		return nil, nil
	}
	return nil, ErrVisibilityUnsupported
}

// DrawList returns the faces of the world and of every brush entity in
// back to front order. With r_dedupfaces a face reachable from several
// leaves is listed once, at its first position. r_skipsky drops faces with
// a sky texture.
func (m *Map) DrawList(camera vec.Vec3) []int {
	if len(m.Models) == 0 || len(m.Nodes) == 0 {
		return nil
	}
	dedup := cvars.RDedupFaces.Bool()
	skipSky := cvars.RSkipSky.Bool()
	seen := make(map[int]bool)
	var faces []int
	emit := func(f int) {
		if dedup && seen[f] {
			return
		}
		if skipSky {
			if t := m.MipTexture(f); t != nil && t.Sky() {
				return
			}
		}
		seen[f] = true
		faces = append(faces, f)
	}
	collect := func(head int32, cam vec.Vec3) {
		m.renderOrder(headRef(head), cam, func(leaf int) {
			if m.LeafVisible(leaf) {
				m.LeafFaces(leaf, emit)
			}
		})
	}
	collect(m.Models[0].HeadNodes[0], camera)
	for _, be := range m.BrushEntities() {
		origin, _ := be.Entity.Origin()
		collect(m.Models[be.Model].HeadNodes[0], vec.Sub(camera, origin))
	}
	return faces
}
