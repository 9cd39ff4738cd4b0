// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"github.com/pkg/errors"

	"hlbsp/conlog"
	"hlbsp/cvars"
	"hlbsp/math"
	"hlbsp/math/vec"
)

// ClipRef is a decoded clip node child. Terminal children carry the
// contents of the volume directly.
type ClipRef struct {
	Terminal bool
	Index    int
	Contents Contents
}

func clipRef(v int16) ClipRef {
	if v < 0 {
		return ClipRef{Terminal: true, Contents: Contents(v)}
	}
	return ClipRef{Index: int(v)}
}

func (r ClipRef) String() string {
	if r.Terminal {
		return r.Contents.String()
	}
	return fmt.Sprintf("clipnode %d", r.Index)
}

type Hull struct {
	ClipNodes []ClipNode
	Planes    []Plane
	Root      ClipRef
	ClipMins  vec.Vec3
	ClipMaxs  vec.Vec3
}

// Player sized boxes of the clip hulls. Hull 0 is a point.
var hullSizes = [MaxMapHulls][2]vec.Vec3{
	{},
	{{-16, -16, -36}, {16, 16, 36}}, // standing
	{{-32, -32, -32}, {32, 32, 32}}, // large
	{{-16, -16, -18}, {16, 16, 18}}, // crouching
}

type TracePlane struct {
	Normal   vec.Vec3
	Distance float32
}

type Trace struct {
	AllSolid   bool
	StartSolid bool
	InOpen     bool
	InWater    bool
	Fraction   float32
	EndPos     vec.Vec3
	Plane      TracePlane
	// Hit is set when the sweep stopped at a plane.
	Hit bool
}

// makeHull0 turns the render nodes into clip nodes. Leaf children become
// the contents of their leaf, the solid leaf becomes ContentsSolid.
func (m *Map) makeHull0() ([]ClipNode, error) {
	out := make([]ClipNode, len(m.Nodes))
	for i, n := range m.Nodes {
		out[i].Plane = n.Plane
		for j, c := range n.Children {
			switch c.Kind {
			case RefNode:
				out[i].Children[j] = ClipRef{Index: c.Index}
			case RefSolid:
				out[i].Children[j] = ClipRef{Terminal: true, Contents: ContentsSolid}
			case RefLeaf:
				if c.Index >= len(m.Leaves) {
					return nil, errors.Wrapf(ErrMalformedLump, "lump %v: node %d references leaf %d of %d", LumpNodes, i, c.Index, len(m.Leaves))
				}
				out[i].Children[j] = ClipRef{Terminal: true, Contents: m.Leaves[c.Index].Contents}
			}
		}
	}
	return out, nil
}

// Hull returns collision hull h (0-3) of model.
func (m *Map) Hull(model, h int) (*Hull, error) {
	if model < 0 || model >= len(m.Models) {
		return nil, errors.Wrapf(ErrNoSuchModel, "model %d of %d", model, len(m.Models))
	}
	if h < 0 || h >= MaxMapHulls {
		return nil, errors.Wrapf(ErrNoSuchHull, "hull %d", h)
	}
	head := m.Models[model].HeadNodes[h]
	hull := &Hull{
		Planes:   m.Planes,
		ClipMins: hullSizes[h][0],
		ClipMaxs: hullSizes[h][1],
	}
	if h == 0 {
		hull.ClipNodes = m.hull0
		r := headRef(head)
		switch r.Kind {
		case RefNode:
			hull.Root = ClipRef{Index: r.Index}
		case RefSolid:
			hull.Root = ClipRef{Terminal: true, Contents: ContentsSolid}
		case RefLeaf:
			hull.Root = ClipRef{Terminal: true, Contents: m.leaf(r.Index).Contents}
		}
	} else {
		hull.ClipNodes = m.ClipNodes
		if head < 0 {
			hull.Root = ClipRef{Terminal: true, Contents: Contents(head)}
		} else {
			hull.Root = ClipRef{Index: int(head)}
		}
	}
	if !hull.Root.Terminal && hull.Root.Index >= len(hull.ClipNodes) {
		return nil, errors.Wrapf(ErrNoSuchHull, "hull %d of model %d: head node %d of %d", h, model, hull.Root.Index, len(hull.ClipNodes))
	}
	return hull, nil
}

func (h *Hull) clipNode(r ClipRef) (*ClipNode, *Plane) {
	if r.Index < 0 || r.Index >= len(h.ClipNodes) {
		panic(fmt.Sprintf("bsp: bad clip node number %d (have %d)", r.Index, len(h.ClipNodes)))
	}
	node := &h.ClipNodes[r.Index]
	if node.Plane < 0 || int(node.Plane) >= len(h.Planes) {
		panic(fmt.Sprintf("bsp: clip node %d: bad plane %d (have %d)", r.Index, node.Plane, len(h.Planes)))
	}
	return node, &h.Planes[node.Plane]
}

// PointContents returns the contents of the volume containing p.
func (h *Hull) PointContents(r ClipRef, p vec.Vec3) Contents {
	for !r.Terminal {
		node, plane := h.clipNode(r)
		if plane.Distance(p) < 0 {
			r = node.Children[1]
		} else {
			r = node.Children[0]
		}
	}
	return r.Contents
}

// RecursiveCheck sweeps the segment p1-p2, which spans the fractions
// p1f-p2f of the whole move, through the subtree r. It returns false once
// the sweep is blocked.
func (h *Hull) RecursiveCheck(r ClipRef, p1f, p2f float32, p1, p2 vec.Vec3, trace *Trace) bool {
	const epsilon = 0.03125 // (1/32) to keep floating point happy
	if r.Terminal {
		if r.Contents != ContentsSolid {
			trace.AllSolid = false
			if r.Contents == ContentsEmpty {
				trace.InOpen = true
			} else {
				trace.InWater = true
			}
		} else {
			trace.StartSolid = true
		}
		return true
	}
	node, plane := h.clipNode(r)
	t1 := plane.Distance(p1)
	t2 := plane.Distance(p2)
	if t1 >= 0 && t2 >= 0 {
		return h.RecursiveCheck(node.Children[0], p1f, p2f, p1, p2, trace)
	}
	if t1 < 0 && t2 < 0 {
		return h.RecursiveCheck(node.Children[1], p1f, p2f, p1, p2, trace)
	}

	// put the crosspoint epsilon pixels on the near side
	frac := func() float32 {
		d := t1 - t2
		if t1 < 0 {
			return (t1 + epsilon) / d
		}
		return (t1 - epsilon) / d
	}()
	frac = math.Clamp(0, frac, 1)
	midf := math.Lerp(p1f, p2f, frac)
	mid := vec.Lerp(p1, p2, frac)
	side := 0
	if t1 < 0 {
		side = 1
	}
	// move up to the node
	if !h.RecursiveCheck(node.Children[side], p1f, midf, p1, mid, trace) {
		return false
	}
	if h.PointContents(node.Children[side^1], mid) != ContentsSolid {
		return h.RecursiveCheck(node.Children[side^1], midf, p2f, mid, p2, trace)
	}
	if trace.AllSolid {
		return false // never got out of the solid area
	}
	// the other side of the node is solid, this is the impact point
	trace.Hit = true
	if side == 0 {
		trace.Plane.Normal = plane.Normal
		trace.Plane.Distance = plane.Dist
	} else {
		trace.Plane.Normal = plane.Normal.Neg()
		trace.Plane.Distance = -plane.Dist
	}
	for h.PointContents(h.Root, mid) == ContentsSolid {
		// shouldn't really happen, but does occasionally
		frac -= 0.1
		if frac < 0 {
			trace.Fraction = midf
			trace.EndPos = mid
			conlog.Debug("backup past 0", "fraction", midf, "pos", mid)
			return false
		}
		midf = math.Lerp(p1f, p2f, frac)
		mid = vec.Lerp(p1, p2, frac)
	}
	trace.Fraction = midf
	trace.EndPos = mid

	return false
}

// Trace sweeps a point from start to end once.
func (h *Hull) Trace(start, end vec.Vec3) Trace {
	t := Trace{
		AllSolid: true,
		Fraction: 1,
		EndPos:   end,
	}
	h.RecursiveCheck(h.Root, 0, 1, start, end, &t)
	return t
}

// MaxSlides returns the slide limit of TraceLine.
func MaxSlides() int {
	return math.Clamp(1, int(cvars.TraceMaxSlides.Value()), 16)
}

// TraceLine moves from start towards end and slides along every plane it
// hits, at most MaxSlides times. It returns the final position.
func (h *Hull) TraceLine(start, end vec.Vec3) vec.Vec3 {
	return h.TraceLineN(start, end, MaxSlides())
}

// TraceLineN is TraceLine with an explicit slide limit.
func (h *Hull) TraceLineN(start, end vec.Vec3, slides int) vec.Vec3 {
	for i := 0; i < slides; i++ {
		if start == end {
			return end
		}
		t := h.Trace(start, end)
		if t.Fraction == 1 {
			return end
		}
		pos := vec.Lerp(start, end, t.Fraction)
		remaining := vec.Sub(end, pos)
		d := vec.Dot(remaining, t.Plane.Normal)
		end = vec.Sub(end, vec.Scale(d, t.Plane.Normal))
		start = pos
	}
	return start
}
