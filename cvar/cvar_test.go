// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	cv := MustRegister("test_register", "2.5", ARCHIVE)
	assert.Equal(t, float32(2.5), cv.Value())
	assert.True(t, cv.Archive())
	assert.False(t, cv.UserDefined())

	_, err := Register("test_register", "1", NONE)
	assert.Error(t, err)

	got, ok := Get("test_register")
	require.True(t, ok)
	assert.Same(t, cv, got)
	byID, err := GetByID(cv.ID())
	require.NoError(t, err)
	assert.Same(t, cv, byID)
	_, err = GetByID(-1)
	assert.Error(t, err)
}

func TestSetValue(t *testing.T) {
	cv := MustRegister("test_setvalue", "0", NONE)
	calls := 0
	cv.SetCallback(func(*Cvar) { calls++ })
	cv.SetValue(3)
	assert.Equal(t, "3", cv.String())
	cv.SetValue(0.25)
	assert.Equal(t, "0.25", cv.String())
	cv.Toggle()
	assert.Equal(t, "1", cv.String())
	assert.True(t, cv.Bool())
	cv.Reset()
	assert.False(t, cv.Bool())
	assert.Equal(t, 4, calls)

	rom := MustRegister("test_rom", "1", ROM)
	rom.SetByString("2")
	assert.Equal(t, "1", rom.String())
}

func TestSetCreatesUserCvar(t *testing.T) {
	cv := Set("test_user", "abc")
	assert.True(t, cv.UserDefined())
	assert.Equal(t, "abc", cv.String())
	assert.Same(t, cv, Set("test_user", "def"))
	assert.Equal(t, "def", cv.String())
}

func TestLoadYAML(t *testing.T) {
	slides := MustRegister("test_slides", "4", ARCHIVE)
	err := LoadYAML(strings.NewReader(`
test_slides: 8
test_wads:
  - halflife.wad
  - decals.wad
`))
	require.NoError(t, err)
	assert.Equal(t, float32(8), slides.Value())
	wads, ok := Get("test_wads")
	require.True(t, ok)
	assert.Equal(t, "halflife.wad;decals.wad", wads.String())

	assert.NoError(t, LoadYAML(strings.NewReader("")))
	assert.Error(t, LoadYAML(strings.NewReader("test_slides: {a: 1}")))
	assert.Error(t, LoadYAML(strings.NewReader("test_slides: [[1]]")))
	assert.Error(t, LoadYAML(strings.NewReader("- a")))
}

func TestList(t *testing.T) {
	MustRegister("test_list", "x", ARCHIVE)
	var b bytes.Buffer
	require.NoError(t, List(&b))
	assert.Contains(t, b.String(), "* test_list \"x\"\n")
	assert.True(t, strings.HasSuffix(b.String(), " cvars\n"))
}
