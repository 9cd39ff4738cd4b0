// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"hlbsp/conlog"
	"hlbsp/pack"
)

// BaseGame is always searched, mods are searched before it.
const BaseGame = "valve"

var (
	baseDir string
	gameDir string
	// search is in lookup order
	search []searchPath
	mutex  sync.RWMutex
)

type searchPath interface {
	open(name string) (io.ReadCloser, error)
	String() string
}

type dirPath string

func (d dirPath) open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
}

func (d dirPath) String() string {
	return string(d)
}

type packPath struct {
	p *pack.Pack
}

func (p packPath) open(name string) (io.ReadCloser, error) {
	f, err := p.p.Open(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(f), nil
}

func (p packPath) String() string {
	return p.p.String()
}

func GameDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return gameDir
}

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// UseBaseDir resets the search path to dir/valve.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
	reset()
	gameDir = filepath.Join(baseDir, BaseGame)
	useDir(gameDir)
}

// UseGameDir searches the mod directory game before the base game.
func UseGameDir(game string) {
	mutex.Lock()
	defer mutex.Unlock()
	reset()
	gameDir = filepath.Join(baseDir, BaseGame)
	useDir(gameDir)
	if game == "" || game == BaseGame {
		return
	}
	gameDir = filepath.Join(baseDir, game)
	useDir(gameDir)
}

// reset expects mutex to be held.
func reset() {
	for _, s := range search {
		if p, ok := s.(packPath); ok {
			p.p.Close()
		}
	}
	search = nil
}

// useDir puts dir and then its pak files, highest number first, in front
// of the search path.
func useDir(dir string) {
	search = append([]searchPath{dirPath(dir)}, search...)
	for i := 0; ; i++ {
		pfp := filepath.Join(dir, fmt.Sprintf("pak%d.pak", i))
		p, err := pack.NewPackReader(pfp)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				conlog.Warnf("%v", err)
			}
			break
		}
		conlog.DPrintf("added pack %s", pfp)
		search = append([]searchPath{packPath{p}}, search...)
	}
}

// SearchPath lists the directories and packs in lookup order.
func SearchPath() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	r := make([]string, len(search))
	for i, s := range search {
		r[i] = s.String()
	}
	return r
}

// Open looks name up as a plain path first, then along the search path.
func Open(name string) (io.ReadCloser, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return os.Open(name)
	}
	mutex.RLock()
	defer mutex.RUnlock()
	for _, s := range search {
		f, err := s.open(name)
		if err == nil {
			return f, nil
		}
	}
	return nil, errors.Wrapf(os.ErrNotExist, "%s", name)
}

// ReadFile returns the content of name. Files ending in .gz or .zst are
// decompressed; a missing name is also tried with these suffixes.
func ReadFile(name string) ([]byte, error) {
	var firstErr error
	for _, n := range candidates(name) {
		b, err := readFile(n)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func candidates(name string) []string {
	switch Ext(name) {
	case ".gz", ".zst":
		return []string{name}
	}
	return []string{name, name + ".gz", name + ".zst"}
}

func readFile(name string) ([]byte, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	switch Ext(name) {
	case ".gz":
		return gunzip(name, b)
	case ".zst":
		return unzstd(name, b)
	}
	return b, nil
}

func gunzip(name string, b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return out, nil
}

func unzstd(name string, b []byte) ([]byte, error) {
	d, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	defer d.Close()
	out, err := d.DecodeAll(b, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return out, nil
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

// Base returns the file name of a path using either separator.
func Base(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if isSep(path[i]) {
			return path[i+1:]
		}
	}
	return path
}

