// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture resolves the textures of a map, either from the bsp
// itself or from WAD archives.
package texture

import (
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hlbsp/bsp"
	"hlbsp/conlog"
	"hlbsp/wad"
)

type Source int

const (
	SourcePlaceholder Source = iota
	SourceEmbedded
	SourceWad
)

func (s Source) String() string {
	switch s {
	case SourceEmbedded:
		return "embedded"
	case SourceWad:
		return "wad"
	}
	return "placeholder"
}

// Handle is a resolved texture.
type Handle struct {
	ID     uuid.UUID
	Name   string
	Width  int
	Height int
	Image  *image.RGBA
	Source Source
	// Wad names the archive the texture came from.
	Wad string
}

func (h *Handle) Placeholder() bool {
	return h.Source == SourcePlaceholder
}

// Manager owns the texture handles of one map. WADs may be added while
// handles are read from other goroutines.
type Manager struct {
	mu      sync.RWMutex
	wads    []*wad.Wad
	handles []*Handle
	byName  map[string]*Handle
	// missing maps lower case names to handle indexes
	missing map[string][]int
}

func NewManager() *Manager {
	return &Manager{
		byName:  make(map[string]*Handle),
		missing: make(map[string][]int),
	}
}

func newHandle(name string, w, h int, img *image.RGBA, src Source) *Handle {
	return &Handle{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   name,
		Width:  w,
		Height: h,
		Image:  img,
		Source: src,
	}
}

// Resolve creates one handle per mip texture of m, in texture lump order.
// Textures found nowhere get a white placeholder and are retried
// by AddWad.
func (tm *Manager) Resolve(m *bsp.Map) []*Handle {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.handles = make([]*Handle, len(m.MipTextures))
	tm.byName = make(map[string]*Handle)
	tm.missing = make(map[string][]int)
	for i := range m.MipTextures {
		mt := &m.MipTextures[i]
		h := tm.resolve(mt)
		tm.handles[i] = h
		if h.Placeholder() && mt.Name != "" {
			key := strings.ToLower(mt.Name)
			tm.missing[key] = append(tm.missing[key], i)
			conlog.Warnf("texture %q not found", mt.Name)
		}
		if mt.Name != "" {
			tm.byName[strings.ToLower(mt.Name)] = h
		}
	}
	return append([]*Handle(nil), tm.handles...)
}

func (tm *Manager) resolve(mt *bsp.MipTexture) *Handle {
	if mt.Embedded() {
		t, err := wad.DecodeMipTexture(mt.Data, nil)
		if err == nil {
			return newHandle(mt.Name, t.Width, t.Height, t.Image, SourceEmbedded)
		}
		conlog.Warnf("texture %q: %v", mt.Name, err)
	}
	if h := tm.fromWads(mt.Name); h != nil {
		return h
	}
	return Placeholder(mt.Name, int(mt.Width), int(mt.Height))
}

// fromWads expects tm.mu to be held.
func (tm *Manager) fromWads(name string) *Handle {
	if name == "" {
		return nil
	}
	for _, w := range tm.wads {
		if !w.Has(name) {
			continue
		}
		t, err := w.Texture(name)
		if err != nil {
			conlog.Warnf("texture %q: %v", name, err)
			continue
		}
		h := newHandle(name, t.Width, t.Height, t.Image, SourceWad)
		h.Wad = w.Name
		return h
	}
	return nil
}

// AddWad appends a texture archive to the search list and retries all
// missing textures. It returns the number of textures found.
func (tm *Manager) AddWad(w *wad.Wad) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.wads = append(tm.wads, w)
	found := 0
	for name, idx := range tm.missing {
		h := tm.fromWads(name)
		if h == nil {
			continue
		}
		h.Name = tm.handles[idx[0]].Name
		for _, i := range idx {
			tm.handles[i] = h
		}
		tm.byName[name] = h
		delete(tm.missing, name)
		found++
	}
	conlog.DPrintf("wad %s: %d textures found, %d missing", w.Name, found, len(tm.missing))
	return found
}

// Handle returns the texture of mip texture index i.
func (tm *Manager) Handle(i int) (*Handle, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if i < 0 || i >= len(tm.handles) {
		return nil, false
	}
	return tm.handles[i], true
}

// Lookup finds a texture by name, case insensitive.
func (tm *Manager) Lookup(name string) (*Handle, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	h, ok := tm.byName[strings.ToLower(name)]
	return h, ok
}

// Missing lists the names still drawn with a placeholder, sorted.
func (tm *Manager) Missing() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	var n []string
	for _, idx := range tm.missing {
		n = append(n, tm.handles[idx[0]].Name)
	}
	sort.Strings(n)
	return n
}

// Placeholder returns a flat white texture, drawn until the real one is
// found. Missing sizes default to 16x16.
func Placeholder(name string, w, h int) *Handle {
	if w <= 0 || h <= 0 {
		w, h = 16, 16
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return newHandle(name, w, h, img, SourcePlaceholder)
}
