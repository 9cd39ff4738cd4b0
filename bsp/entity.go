// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"strconv"
	"strings"

	"hlbsp/math/vec"
)

type Entity struct {
	properties map[string]string
	keys       []string
}

// NewEntity parses the "key" "value" pairs of one entity block. A key seen
// twice keeps its first position and its last value.
func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]string)}
	var pair []string
	r := p
	for {
		q := bytes.IndexByte(r, '"')
		if q == -1 {
			break
		}
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			// unterminated string
			break
		}
		pair = append(pair, string(r[:q]))
		r = r[q+1:]
		if len(pair) == 2 {
			e.set(pair[0], pair[1])
			pair = pair[:0]
		}
	}
	return e
}

func (e *Entity) set(key, value string) {
	if _, ok := e.properties[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.properties[key] = value
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.properties[name]
	return v, ok
}

func (e *Entity) Name() (string, bool) {
	v, ok := e.properties["classname"]
	return v, ok
}

// PropertyNames returns the keys in the order they appear in the map file.
func (e *Entity) PropertyNames() []string {
	return append([]string(nil), e.keys...)
}

// Model returns N of a "model" "*N" property.
func (e *Entity) Model() (int, bool) {
	v, ok := e.properties["model"]
	if !ok || !strings.HasPrefix(v, "*") {
		return 0, false
	}
	n, err := strconv.Atoi(v[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsBrushEntity reports entities drawn with a sub-model of the map.
func (e *Entity) IsBrushEntity() bool {
	n, ok := e.Model()
	return ok && n > 0
}

// Origin parses the "origin" property, "x y z".
func (e *Entity) Origin() (vec.Vec3, bool) {
	v, ok := e.properties["origin"]
	if !ok {
		return vec.Vec3{}, false
	}
	f := strings.Fields(v)
	if len(f) != 3 {
		return vec.Vec3{}, false
	}
	var o vec.Vec3
	for i, s := range f {
		x, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return vec.Vec3{}, false
		}
		o[i] = float32(x)
	}
	return o, true
}

func ParseEntities(data []byte) []*Entity {
	/*
		The data looks like:
		{
		  "name" "value"
		  "name2" "value2"
		}
		{
		  "name3" "value"
		  {
		    ()()()...
		  }
		}
		But I have not seen the nested stuff
	*/
	// First split the entities
	es := []*Entity{}
	var ess [][]byte
	var ob int
	inQuote := false
	start := -1
	for i, b := range data {
		switch b {
		case '{':
			if inQuote {
				break
			}
			if start == -1 {
				start = i
			} else {
				ob++
			}
		case '}':
			if inQuote {
				break
			}
			if start == -1 {
				// Bad input
				return es
			}
			if ob == 0 {
				ess = append(ess, data[start:i+1])
				start = -1
			} else {
				ob--
			}
		case '"':
			inQuote = !inQuote
		}
	}
	if start != -1 {
		// unbalanced
		return es
	}
	for _, e := range ess {
		es = append(es, NewEntity(e))
	}
	return es
}
