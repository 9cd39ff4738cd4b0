// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"path"
	"strings"
)

// WorldSpawn returns the first entity if it is the worldspawn.
func (m *Map) WorldSpawn() (*Entity, bool) {
	if len(m.Entities) == 0 {
		return nil, false
	}
	e := m.Entities[0]
	if n, _ := e.Name(); n != "worldspawn" {
		return nil, false
	}
	return e, true
}

// WadFiles lists the WAD archives named by the worldspawn "wad" key as
// lower case base names, e.g. "halflife.wad".
func (m *Map) WadFiles() []string {
	ws, ok := m.WorldSpawn()
	if !ok {
		return nil
	}
	v, ok := ws.Property("wad")
	if !ok {
		return nil
	}
	var wads []string
	for _, w := range strings.Split(v, ";") {
		w = strings.TrimSpace(strings.ReplaceAll(w, "\\", "/"))
		if w == "" {
			continue
		}
		wads = append(wads, strings.ToLower(path.Base(w)))
	}
	return wads
}

type BrushEntity struct {
	Entity *Entity
	Model  int
}

// BrushEntities returns the entities using a sub-model of this map.
// References past the model lump are dropped.
func (m *Map) BrushEntities() []BrushEntity {
	var r []BrushEntity
	for _, e := range m.Entities {
		if !e.IsBrushEntity() {
			continue
		}
		n, _ := e.Model()
		if n >= len(m.Models) {
			continue
		}
		r = append(r, BrushEntity{Entity: e, Model: n})
	}
	return r
}
