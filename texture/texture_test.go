// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlbsp/bsp"
	"hlbsp/wad"
)

// mipTex builds an 8x8 half-life texture of palette index 1 (red).
func mipTex(name string) []byte {
	var b bytes.Buffer
	var n [16]byte
	copy(n[:], name)
	binary.Write(&b, binary.LittleEndian, n)
	binary.Write(&b, binary.LittleEndian, [6]uint32{8, 8, 40, 104, 120, 124})
	b.Write(bytes.Repeat([]byte{1}, 64+16+4+1))
	binary.Write(&b, binary.LittleEndian, uint16(256))
	pal := make([]byte, 768)
	pal[3] = 255
	b.Write(pal)
	return b.Bytes()
}

func testWad(t *testing.T, names ...string) *wad.Wad {
	var body bytes.Buffer
	var dir bytes.Buffer
	for _, name := range names {
		data := mipTex(name)
		var n [16]byte
		copy(n[:], name)
		binary.Write(&dir, binary.LittleEndian, [3]int32{int32(12 + body.Len()), int32(len(data)), int32(len(data))})
		dir.Write([]byte{0x43, 0, 0, 0})
		dir.Write(n[:])
		body.Write(data)
	}
	var b bytes.Buffer
	b.WriteString("WAD3")
	binary.Write(&b, binary.LittleEndian, [2]uint32{uint32(len(names)), uint32(12 + body.Len())})
	b.Write(body.Bytes())
	b.Write(dir.Bytes())
	w, err := wad.Parse("test.wad", b.Bytes())
	require.NoError(t, err)
	return w
}

func testMap() *bsp.Map {
	embedded := mipTex("lab1")
	return &bsp.Map{
		MipTextures: []bsp.MipTexture{
			{Name: "lab1", Width: 8, Height: 8, Offsets: [4]uint32{40, 104, 120, 124}, Data: embedded},
			{Name: "BRICK", Width: 32, Height: 32},
			{Name: "stone", Width: 8, Height: 8},
			{},
		},
	}
}

var red = color.RGBA{255, 0, 0, 255}

func TestResolve(t *testing.T) {
	tm := NewManager()
	hs := tm.Resolve(testMap())
	require.Len(t, hs, 4)

	assert.Equal(t, SourceEmbedded, hs[0].Source)
	assert.Equal(t, red, hs[0].Image.RGBAAt(2, 2))
	assert.Equal(t, 8, hs[0].Width)

	assert.True(t, hs[1].Placeholder())
	assert.Equal(t, 32, hs[1].Width)
	assert.True(t, hs[3].Placeholder())
	assert.Equal(t, 16, hs[3].Width)
	assert.Equal(t, []string{"BRICK", "stone"}, tm.Missing())

	seen := map[uuid.UUID]bool{}
	for _, h := range hs {
		assert.False(t, seen[h.ID], "duplicate id")
		seen[h.ID] = true
		assert.EqualValues(t, 7, h.ID.Version())
	}
}

func TestAddWadRetriesMissing(t *testing.T) {
	tm := NewManager()
	tm.Resolve(testMap())

	assert.Equal(t, 0, tm.AddWad(testWad(t, "other")))
	assert.Equal(t, 1, tm.AddWad(testWad(t, "brick")))
	assert.Equal(t, []string{"stone"}, tm.Missing())

	h, ok := tm.Handle(1)
	require.True(t, ok)
	assert.Equal(t, SourceWad, h.Source)
	assert.Equal(t, "test.wad", h.Wad)
	assert.Equal(t, "BRICK", h.Name)
	assert.Equal(t, 8, h.Width)
	assert.Equal(t, red, h.Image.RGBAAt(0, 0))

	byName, ok := tm.Lookup("brick")
	require.True(t, ok)
	assert.Same(t, h, byName)

	_, ok = tm.Handle(10)
	assert.False(t, ok)
}

func TestResolveFromWad(t *testing.T) {
	tm := NewManager()
	tm.AddWad(testWad(t, "stone", "brick"))
	hs := tm.Resolve(testMap())
	assert.Equal(t, SourceWad, hs[1].Source)
	assert.Equal(t, SourceWad, hs[2].Source)
	assert.Empty(t, tm.Missing())
}

func TestConcurrentAddWad(t *testing.T) {
	tm := NewManager()
	tm.Resolve(testMap())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tm.AddWad(testWad(t, "brick"))
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			h, ok := tm.Handle(1)
			assert.True(t, ok)
			assert.NotNil(t, h)
		}
	}()
	wg.Wait()
	assert.Equal(t, []string{"stone"}, tm.Missing())
}

func TestPlaceholder(t *testing.T) {
	h := Placeholder("x", 4, 2)
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, white, h.Image.RGBAAt(0, 0))
	assert.Equal(t, white, h.Image.RGBAAt(3, 1))
	assert.Equal(t, 4, h.Width)
	assert.Equal(t, "placeholder", h.Source.String())
}
