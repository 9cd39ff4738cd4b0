// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlbsp/cvars"
	"hlbsp/math/vec"
)

func testHull(t *testing.T, model, h int) *Hull {
	t.Helper()
	m := parseTest(t, newTestBuilder(t))
	hull, err := m.Hull(model, h)
	require.NoError(t, err)
	return hull
}

func TestHullLookup(t *testing.T) {
	m := parseTest(t, newTestBuilder(t))
	_, err := m.Hull(0, 4)
	assert.ErrorIs(t, err, ErrNoSuchHull)
	_, err = m.Hull(0, -1)
	assert.ErrorIs(t, err, ErrNoSuchHull)
	_, err = m.Hull(2, 0)
	assert.ErrorIs(t, err, ErrNoSuchModel)

	h1, err := m.Hull(0, 1)
	require.NoError(t, err)
	assert.Equal(t, vec.Vec3{-16, -16, -36}, h1.ClipMins)
	assert.Equal(t, ClipRef{Index: 0}, h1.Root)
}

func TestHull0FromNodes(t *testing.T) {
	h := testHull(t, 0, 0)
	require.Len(t, h.ClipNodes, 1)
	assert.Equal(t, [2]ClipRef{
		{Terminal: true, Contents: ContentsEmpty},
		{Terminal: true, Contents: ContentsSolid},
	}, h.ClipNodes[0].Children)
}

func TestPointContents(t *testing.T) {
	for hull := 0; hull < MaxMapHulls; hull++ {
		h := testHull(t, 0, hull)
		assert.Equal(t, ContentsEmpty, h.PointContents(h.Root, vec.Vec3{0, 0, 5}), "hull %d", hull)
		assert.Equal(t, ContentsEmpty, h.PointContents(h.Root, vec.Vec3{0, 0, 0}), "hull %d", hull)
		assert.Equal(t, ContentsSolid, h.PointContents(h.Root, vec.Vec3{0, 0, -5}), "hull %d", hull)
	}
}

func TestPointContentsBadNode(t *testing.T) {
	h := testHull(t, 0, 1)
	assert.Panics(t, func() { h.PointContents(ClipRef{Index: 3}, vec.Vec3{}) })
}

func TestTraceBlocked(t *testing.T) {
	h := testHull(t, 0, 0)
	tr := h.Trace(vec.Vec3{0, 0, 10}, vec.Vec3{0, 0, -10})
	assert.False(t, tr.AllSolid)
	assert.True(t, tr.InOpen)
	assert.True(t, tr.Hit)
	assert.Less(t, tr.Fraction, float32(1))
	assert.InDelta(t, 0.4984375, tr.Fraction, 1e-6)
	assert.InDelta(t, 1.0/32, tr.EndPos[2], 1e-5)
	assert.Equal(t, vec.Vec3{0, 0, 1}, tr.Plane.Normal)
	assert.Equal(t, float32(0), tr.Plane.Distance)
}

func TestTraceFromBelow(t *testing.T) {
	h := testHull(t, 0, 1)
	// starting in solid never leaves it
	tr := h.Trace(vec.Vec3{0, 0, -5}, vec.Vec3{0, 0, -10})
	assert.True(t, tr.AllSolid)
	assert.True(t, tr.StartSolid)
	assert.False(t, tr.Hit)
	assert.Equal(t, float32(1), tr.Fraction)
}

func TestTraceFree(t *testing.T) {
	h := testHull(t, 0, 0)
	tr := h.Trace(vec.Vec3{0, 0, 10}, vec.Vec3{5, 5, 20})
	assert.False(t, tr.AllSolid)
	assert.False(t, tr.Hit)
	assert.Equal(t, float32(1), tr.Fraction)
	assert.Equal(t, vec.Vec3{5, 5, 20}, tr.EndPos)
}

func TestTraceLineNoMove(t *testing.T) {
	h := testHull(t, 0, 0)
	p := vec.Vec3{1, 2, 3}
	assert.Equal(t, p, h.TraceLine(p, p))
	// even inside solid
	p = vec.Vec3{1, 2, -3}
	assert.Equal(t, p, h.TraceLine(p, p))
}

func TestTraceLineFree(t *testing.T) {
	h := testHull(t, 0, 0)
	end := vec.Vec3{5, 5, 20}
	assert.Equal(t, end, h.TraceLine(vec.Vec3{0, 0, 10}, end))
}

func TestTraceLineBlocked(t *testing.T) {
	for _, hull := range []int{0, 1} {
		h := testHull(t, 0, hull)
		got := h.TraceLine(vec.Vec3{0, 0, 10}, vec.Vec3{0, 0, -10})
		assert.Greater(t, got[2], float32(0), "hull %d", hull)
		assert.LessOrEqual(t, got[2], float32(1.0/32+1e-5), "hull %d", hull)
		assert.Equal(t, float32(0), got[0])
		assert.Equal(t, float32(0), got[1])
	}
}

func TestTraceLineSlide(t *testing.T) {
	h := testHull(t, 0, 0)
	got := h.TraceLine(vec.Vec3{0, 0, 10}, vec.Vec3{10, 0, -10})
	assert.InDelta(t, 10, got[0], 1e-4)
	assert.Equal(t, float32(0), got[1])
	assert.InDelta(t, 1.0/32, got[2], 1e-4)
}

func TestTraceLineSlideLimit(t *testing.T) {
	h := testHull(t, 0, 0)
	// a single step stops at the impact point without sliding
	got := h.TraceLineN(vec.Vec3{0, 0, 10}, vec.Vec3{10, 0, -10}, 1)
	assert.InDelta(t, 4.984375, got[0], 1e-4)
	assert.InDelta(t, 1.0/32, got[2], 1e-4)
}

func TestMaxSlides(t *testing.T) {
	assert.Equal(t, 4, MaxSlides())
	t.Cleanup(cvars.TraceMaxSlides.Reset)
	cvars.TraceMaxSlides.SetByString("100")
	assert.Equal(t, 16, MaxSlides())
	cvars.TraceMaxSlides.SetByString("0")
	assert.Equal(t, 1, MaxSlides())
}

func TestClipRef(t *testing.T) {
	assert.Equal(t, ClipRef{Index: 3}, clipRef(3))
	assert.Equal(t, ClipRef{Terminal: true, Contents: ContentsWater}, clipRef(-3))
	assert.Equal(t, "water", clipRef(-3).String())
	assert.Equal(t, "clipnode 3", clipRef(3).String())
}
